package repository

import (
	"context"
	"errors"

	"timesheet.service/internal/core/model"
)

// ErrEntryNotFound is returned by writes that matched no row.
var ErrEntryNotFound = errors.New("timesheet entry not found")

// Repository contract
type Repository interface {
	CreateEntry(ctx context.Context, entry *model.TimesheetEntry) error
	// UpdateEntry returns ErrEntryNotFound when no entry has entry.ID.
	UpdateEntry(ctx context.Context, entry *model.TimesheetEntry) error
	// GetEntry returns nil, nil when no entry has the given id.
	GetEntry(ctx context.Context, id string) (*model.TimesheetEntry, error)
	ListEntriesByUser(ctx context.Context, userID string) ([]model.TimesheetEntry, error)
	DeleteEntry(ctx context.Context, id string) error
	UpdateEmailStatus(ctx context.Context, id string, status model.EmailStatus, retryCount int) error
}
