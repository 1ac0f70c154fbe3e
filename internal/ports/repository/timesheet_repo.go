package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"timesheet.service/internal/core/model"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Schema creates the timesheet_entries table on PostgreSQL.
const Schema = `
CREATE TABLE IF NOT EXISTS timesheet_entries (
    id                TEXT PRIMARY KEY,
    user_id           TEXT NOT NULL,
    check_in          TIMESTAMPTZ NOT NULL,
    check_out         TIMESTAMPTZ NOT NULL,
    is_holiday        BOOLEAN NOT NULL DEFAULT FALSE,
    total_hours       DOUBLE PRECISION NOT NULL DEFAULT 0,
    lunch_hours       DOUBLE PRECISION NOT NULL DEFAULT 0,
    normal_hours      DOUBLE PRECISION NOT NULL DEFAULT 0,
    overtime_hours    DOUBLE PRECISION NOT NULL DEFAULT 0,
    bank_hours        DOUBLE PRECISION NOT NULL DEFAULT 0,
    email_status      TEXT NOT NULL DEFAULT 'PENDING',
    email_retry_count INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS timesheet_entries_user_check_in ON timesheet_entries (user_id, check_in DESC);
`

const entryColumns = `id, user_id, check_in, check_out, is_holiday,
       total_hours, lunch_hours, normal_hours, overtime_hours, bank_hours,
       email_status, email_retry_count`

// TimesheetRepository is the concrete implementation for a PostgreSQL database.
type TimesheetRepository struct {
	DB *sql.DB
}

// NewTimesheetRepository create new instance
func NewTimesheetRepository(db *sql.DB) *TimesheetRepository {
	return &TimesheetRepository{DB: db}
}

// Migrate applies Schema.
func (r *TimesheetRepository) Migrate(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, Schema)
	return err
}

// CreateEntry inserts a new entry. The caller assigns the id.
func (r *TimesheetRepository) CreateEntry(ctx context.Context, e *model.TimesheetEntry) error {
	tagUser(ctx, e.UserID)

	query := `INSERT INTO timesheet_entries (` + entryColumns + `)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 0)`

	_, err := r.DB.ExecContext(ctx, query,
		e.ID, e.UserID, e.CheckIn.UTC(), e.CheckOut.UTC(), e.IsHoliday,
		e.TotalHours, e.LunchHours, e.NormalHours, e.OvertimeHours, e.BankHours,
		model.StatusEmailPending,
	)
	return err
}

// UpdateEntry replaces the punches and every derived field of an entry, and
// queues a fresh summary email.
func (r *TimesheetRepository) UpdateEntry(ctx context.Context, e *model.TimesheetEntry) error {
	tagUser(ctx, e.UserID)

	query := `UPDATE timesheet_entries
              SET check_in = $1,
                  check_out = $2,
                  is_holiday = $3,
                  total_hours = $4,
                  lunch_hours = $5,
                  normal_hours = $6,
                  overtime_hours = $7,
                  bank_hours = $8,
                  email_status = $9,
                  email_retry_count = 0
              WHERE id = $10`

	res, err := r.DB.ExecContext(ctx, query,
		e.CheckIn.UTC(), e.CheckOut.UTC(), e.IsHoliday,
		e.TotalHours, e.LunchHours, e.NormalHours, e.OvertimeHours, e.BankHours,
		model.StatusEmailPending, e.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// GetEntry fetches a complete entry by its ID.
func (r *TimesheetRepository) GetEntry(ctx context.Context, id string) (*model.TimesheetEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM timesheet_entries WHERE id = $1`

	e, err := scanEntry(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ListEntriesByUser returns the user's entries, newest check-in first.
func (r *TimesheetRepository) ListEntriesByUser(ctx context.Context, userID string) ([]model.TimesheetEntry, error) {
	tagUser(ctx, userID)

	query := `SELECT ` + entryColumns + `
              FROM timesheet_entries
              WHERE user_id = $1
              ORDER BY check_in DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []model.TimesheetEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// DeleteEntry removes an entry. Deleting a missing id is not an error.
func (r *TimesheetRepository) DeleteEntry(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM timesheet_entries WHERE id = $1`, id)
	return err
}

// UpdateEmailStatus updates the status and retry count for the summary email job.
func (r *TimesheetRepository) UpdateEmailStatus(ctx context.Context, id string, status model.EmailStatus, retryCount int) error {
	query := `UPDATE timesheet_entries SET email_status = $1, email_retry_count = $2 WHERE id = $3`
	_, err := r.DB.ExecContext(ctx, query, status, retryCount, id)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*model.TimesheetEntry, error) {
	var (
		e                 model.TimesheetEntry
		checkIn, checkOut time.Time
	)
	err := s.Scan(
		&e.ID, &e.UserID, &checkIn, &checkOut, &e.IsHoliday,
		&e.TotalHours, &e.LunchHours, &e.NormalHours, &e.OvertimeHours, &e.BankHours,
		&e.EmailStatus, &e.EmailRetryCount,
	)
	if err != nil {
		return nil, err
	}

	// Drivers hand timestamps back in the session zone.
	e.CheckIn = checkIn.UTC()
	e.CheckOut = checkOut.UTC()
	return &e, nil
}

func tagUser(ctx context.Context, userID string) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.user_id", userID))
}
