package api

import (
	"net/http"

	"timesheet.service/internal/api/handler"

	"github.com/gorilla/mux"
)

// NewRouter sets up the gorilla/mux router and defines all API routes.
func NewRouter(service handler.TimesheetService) *mux.Router {
	h := handler.TimesheetHandler{
		Service: service,
	}

	r := mux.NewRouter()

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Service is operational."))
	}).Methods(http.MethodGet)

	authed := api.NewRoute().Subrouter()
	authed.Use(handler.RequirePrincipal)

	authed.HandleFunc("/entries", h.CreateEntry).Methods(http.MethodPost)
	authed.HandleFunc("/entries", h.History).Methods(http.MethodGet)
	authed.HandleFunc("/entries/{id}", h.UpdateEntry).Methods(http.MethodPut)
	authed.HandleFunc("/entries/{id}", h.DeleteEntry).Methods(http.MethodDelete)
	authed.HandleFunc("/holidays/{year:[0-9]{4}}", h.Holidays).Methods(http.MethodGet)

	return r
}
