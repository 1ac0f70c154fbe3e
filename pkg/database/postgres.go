package database

import (
	"database/sql"
	"fmt"

	"timesheet.service/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib" // Register pgx driver
)

// DSN builds the PostgreSQL connection URL from config.
func DSN(cfg config.Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
}

// NewConnection creates and verifies a new database connection pool.
func NewConnection(cfg config.Config) (*sql.DB, error) {
	db, err := sql.Open("pgx", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Ping the database to verify the connection is alive
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}
	return db, nil
}
