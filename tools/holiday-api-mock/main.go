package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"timesheet.service/internal/holiday"
	"timesheet.service/pkg/logger"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// fixedHolidays are the national holidays with a fixed calendar date.
var fixedHolidays = []struct {
	monthDay string
	name     string
}{
	{"01-01", "Confraternização mundial"},
	{"04-21", "Tiradentes"},
	{"05-01", "Dia do trabalho"},
	{"09-07", "Independência do Brasil"},
	{"10-12", "Nossa Senhora Aparecida"},
	{"11-02", "Finados"},
	{"11-15", "Proclamação da República"},
	{"11-20", "Dia da consciência negra"},
	{"12-25", "Natal"},
}

func holidaysHandler(w http.ResponseWriter, r *http.Request) {
	year := mux.Vars(r)["year"]

	holidays := make([]holiday.Holiday, 0, len(fixedHolidays))
	for _, h := range fixedHolidays {
		holidays = append(holidays, holiday.Holiday{
			Date: fmt.Sprintf("%s-%s", year, h.monthDay),
			Name: h.name,
			Type: "national",
		})
	}

	log.Info().Str("year", year).Int("count", len(holidays)).Msg("Serving holidays")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(holidays)
}

func main() {
	logger.Setup(true)

	r := mux.NewRouter()
	r.HandleFunc("/api/feriados/v1/{year:[0-9]{4}}", holidaysHandler).Methods(http.MethodGet)

	log.Info().Msg("Holiday API mock server starting on port 8081...")
	if err := http.ListenAndServe(":8081", r); err != nil {
		log.Fatal().Err(err).Msg("listen")
	}
}
