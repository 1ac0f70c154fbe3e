package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"timesheet.service/internal/api"
	"timesheet.service/internal/api/handler"
	"timesheet.service/internal/core"
	"timesheet.service/internal/core/model"
	"timesheet.service/internal/core/timesheet"
	"timesheet.service/internal/holiday"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	lastUser    model.Principal
	lastRequest core.LogEntryRequest
	lastDelete  string
	err         error
}

func (f *fakeService) LogEntry(_ context.Context, user model.Principal, req core.LogEntryRequest) (*model.TimesheetEntry, error) {
	f.lastUser, f.lastRequest = user, req
	if f.err != nil {
		return nil, f.err
	}
	checkIn, err := timesheet.ResolveString(req.Date, req.StartTime, req.TimeZone)
	if err != nil {
		return nil, err
	}
	checkOut, err := timesheet.ResolveString(req.Date, req.EndTime, req.TimeZone)
	if err != nil {
		return nil, err
	}
	id := req.EntryID
	if id == "" {
		id = "new-id"
	}
	return &model.TimesheetEntry{
		ID: id, UserID: user.UserID, CheckIn: checkIn, CheckOut: checkOut,
		Hours: timesheet.Classify(checkIn, checkOut, req.IsHoliday),
	}, nil
}

func (f *fakeService) History(_ context.Context, user model.Principal) ([]model.TimesheetEntry, error) {
	f.lastUser = user
	return []model.TimesheetEntry{{ID: "e2", UserID: user.UserID}, {ID: "e1", UserID: user.UserID}}, f.err
}

func (f *fakeService) DeleteEntry(_ context.Context, user model.Principal, id string) error {
	f.lastUser, f.lastDelete = user, id
	return f.err
}

func (f *fakeService) NationalHolidays(context.Context, int) ([]holiday.Holiday, error) {
	return []holiday.Holiday{{Date: "2024-12-25", Name: "Natal"}}, f.err
}

func do(t *testing.T, svc *fakeService, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	api.NewRouter(svc).ServeHTTP(rec, req)
	return rec
}

var asAlice = map[string]string{handler.HeaderUserID: "alice"}

func TestHealthNeedsNoSession(t *testing.T) {
	rec := do(t, &fakeService{}, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMissingSessionIsUnauthorized(t *testing.T) {
	rec := do(t, &fakeService{}, http.MethodGet, "/api/v1/entries", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateEntry(t *testing.T) {
	svc := &fakeService{}
	body := `{"date":"2024-03-04","startTime":"09:00","endTime":"18:00","timeZone":"America/Sao_Paulo","entryId":"ignored"}`

	rec := do(t, svc, http.MethodPost, "/api/v1/entries", body, asAlice)
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, "", svc.lastRequest.EntryID)
	assert.Equal(t, model.Principal{UserID: "alice"}, svc.lastUser)

	var got struct {
		ID            string    `json:"id"`
		CheckIn       time.Time `json:"checkIn"`
		TotalHours    float64   `json:"totalHours"`
		NormalHours   float64   `json:"normalHours"`
		OvertimeHours float64   `json:"overtimeHours"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "new-id", got.ID)
	assert.True(t, got.CheckIn.Equal(time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, 9.0, got.TotalHours)
	assert.Equal(t, 8.0, got.NormalHours)
}

func TestUpdateEntryUsesPathID(t *testing.T) {
	svc := &fakeService{}
	body := `{"date":"2024-03-04","startTime":"09:00","endTime":"13:00","timeZone":"UTC"}`

	rec := do(t, svc, http.MethodPut, "/api/v1/entries/e42", body, map[string]string{
		handler.HeaderUserID:  "root",
		handler.HeaderIsAdmin: "true",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "e42", svc.lastRequest.EntryID)
	assert.True(t, svc.lastUser.IsAdmin)
	assert.Contains(t, rec.Body.String(), `"bankHours":-4`)
}

func TestEntryErrorsMapToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"ordering", core.ErrInvalidOrdering, http.StatusBadRequest},
		{"zone", timesheet.ErrInvalidZoneID, http.StatusBadRequest},
		{"permission", core.ErrPermissionDenied, http.StatusForbidden},
		{"not found", core.ErrEntryNotFound, http.StatusNotFound},
		{"internal", errors.New("failed to create timesheet entry"), http.StatusInternalServerError},
	}
	body := `{"date":"2024-03-04","startTime":"09:00","endTime":"18:00","timeZone":"UTC"}`

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, &fakeService{err: tt.err}, http.MethodPost, "/api/v1/entries", body, asAlice)
			assert.Equal(t, tt.want, rec.Code)

			var msg map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
			assert.NotEmpty(t, msg["message"])
		})
	}
}

func TestOrderingMessageIsUserFacing(t *testing.T) {
	rec := do(t, &fakeService{err: core.ErrInvalidOrdering}, http.MethodPost, "/api/v1/entries", `{}`, asAlice)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"check-out must be after check-in"}`, rec.Body.String())
}

func TestCreateEntryBadBody(t *testing.T) {
	rec := do(t, &fakeService{}, http.MethodPost, "/api/v1/entries", `{`, asAlice)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistory(t *testing.T) {
	rec := do(t, &fakeService{}, http.MethodGet, "/api/v1/entries", "", asAlice)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []model.TimesheetEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "e2", got[0].ID)
}

func TestDeleteEntry(t *testing.T) {
	svc := &fakeService{}
	rec := do(t, svc, http.MethodDelete, "/api/v1/entries/e7", "", asAlice)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "e7", svc.lastDelete)

	rec = do(t, &fakeService{err: core.ErrPermissionDenied}, http.MethodDelete, "/api/v1/entries/e7", "", asAlice)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHolidays(t *testing.T) {
	rec := do(t, &fakeService{}, http.MethodGet, "/api/v1/holidays/2024", "", asAlice)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"date":"2024-12-25","name":"Natal"}]`, rec.Body.String())

	rec = do(t, &fakeService{}, http.MethodGet, "/api/v1/holidays/24", "", asAlice)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
