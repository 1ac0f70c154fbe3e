package database

import (
	"database/sql"
	"fmt"

	"timesheet.service/internal/config"

	"github.com/XSAM/otelsql"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// NewInstrumentedConnection creates a database connection with OpenTelemetry instrumentation.
// otelsql wraps the pgx driver so every query gets its own span.
func NewInstrumentedConnection(cfg config.Config) (*sql.DB, error) {
	db, err := otelsql.Open("pgx", DSN(cfg),
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithSQLCommenter(true),
	)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	return db, nil
}
