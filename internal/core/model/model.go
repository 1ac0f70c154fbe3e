package model

import (
	"time"

	"timesheet.service/internal/core/timesheet"
)

// EmailStatus defines the state of the summary email for an entry.
type EmailStatus string

const (
	StatusEmailPending    EmailStatus = "PENDING"
	StatusEmailProcessing EmailStatus = "PROCESSING"
	StatusEmailCompleted  EmailStatus = "COMPLETED"
	StatusEmailFailed     EmailStatus = "FAILED"
)

// Principal is the authenticated caller, as established by the session gateway.
type Principal struct {
	UserID  string
	IsAdmin bool
}

// CanModify reports whether p may change or delete an entry owned by ownerID.
func (p Principal) CanModify(ownerID string) bool {
	return p.IsAdmin || p.UserID == ownerID
}

// TimesheetEntry is one check-in/check-out pair with its derived hours.
// Derived fields are always recomputed as a whole, never patched.
type TimesheetEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CheckIn   time.Time `json:"checkIn"`
	CheckOut  time.Time `json:"checkOut"`
	IsHoliday bool      `json:"isHoliday"`
	timesheet.Hours
	EmailStatus     EmailStatus `json:"emailStatus,omitempty"`
	EmailRetryCount int         `json:"emailRetryCount"`
}
