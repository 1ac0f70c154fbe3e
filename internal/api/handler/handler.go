package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"timesheet.service/internal/core"
	"timesheet.service/internal/core/model"
	"timesheet.service/internal/holiday"
	"timesheet.service/pkg/logger"
	"timesheet.service/pkg/telemetry"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// Headers set by the session gateway in front of the API.
const (
	HeaderUserID  = "X-User-ID"
	HeaderIsAdmin = "X-User-Admin"
)

// TimesheetService is what the handler needs from the core service.
type TimesheetService interface {
	LogEntry(ctx context.Context, user model.Principal, req core.LogEntryRequest) (*model.TimesheetEntry, error)
	History(ctx context.Context, user model.Principal) ([]model.TimesheetEntry, error)
	DeleteEntry(ctx context.Context, user model.Principal, id string) error
	NationalHolidays(ctx context.Context, year int) ([]holiday.Holiday, error)
}

type TimesheetHandler struct {
	Service TimesheetService
}

type principalKey struct{}

// RequirePrincipal rejects requests the gateway did not authenticate and
// stores the caller in the request context.
func RequirePrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if userID == "" {
			writeMessage(w, http.StatusUnauthorized, "session not found")
			return
		}
		isAdmin, _ := strconv.ParseBool(r.Header.Get(HeaderIsAdmin))
		p := model.Principal{UserID: userID, IsAdmin: isAdmin}

		ctx := context.WithValue(r.Context(), principalKey{}, p)
		ctx = telemetry.WithUserID(ctx, userID)
		ctx = logger.WithUser(ctx, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func principal(r *http.Request) model.Principal {
	p, _ := r.Context().Value(principalKey{}).(model.Principal)
	return p
}

func (h *TimesheetHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req core.LogEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.EntryID = ""

	entry, err := h.Service.LogEntry(r.Context(), principal(r), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *TimesheetHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	var req core.LogEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.EntryID = mux.Vars(r)["id"]

	entry, err := h.Service.LogEntry(r.Context(), principal(r), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *TimesheetHandler) History(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.History(r.Context(), principal(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *TimesheetHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteEntry(r.Context(), principal(r), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Entry deleted.")
}

func (h *TimesheetHandler) Holidays(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(mux.Vars(r)["year"])
	if err != nil || year < 1900 || year > 2199 {
		writeMessage(w, http.StatusBadRequest, "Invalid year")
		return
	}

	holidays, err := h.Service.NationalHolidays(r.Context(), year)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, holidays)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case core.IsValidationError(err):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, core.ErrPermissionDenied):
		writeMessage(w, http.StatusForbidden, err.Error())
	case errors.Is(err, core.ErrEntryNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	default:
		log.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
		writeMessage(w, http.StatusInternalServerError, "Service error processing request")
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"message": message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
