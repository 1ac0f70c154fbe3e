package core

import (
	"context"
	"errors"
	"slices"
	"time"

	"timesheet.service/internal/core/model"
	"timesheet.service/internal/core/timesheet"
	"timesheet.service/internal/holiday"
	"timesheet.service/internal/ports/messaging"
	"timesheet.service/internal/ports/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	// ErrInvalidOrdering is a user-facing validation failure: the punches are
	// not in order.
	ErrInvalidOrdering  = errors.New("check-out must be after check-in")
	ErrPermissionDenied = errors.New("permission denied")
	ErrEntryNotFound    = errors.New("entry not found")
)

// IsValidationError reports whether err is caused by bad caller input and
// should be shown to the user rather than treated as a failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidOrdering) ||
		errors.Is(err, timesheet.ErrInvalidZoneID) ||
		errors.Is(err, timesheet.ErrInvalidDate) ||
		errors.Is(err, timesheet.ErrInvalidTime)
}

// LogEntryRequest is a create (empty EntryID) or update of one punch pair.
type LogEntryRequest struct {
	EntryID   string `json:"entryId,omitempty"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsHoliday bool   `json:"isHoliday"`
	TimeZone  string `json:"timeZone"`
}

type TimesheetService struct {
	repo        repository.Repository
	publisher   messaging.EventPublisher
	holidays    holiday.Calendar
	policy      timesheet.Policy
	defaultZone string
	now         func() time.Time
}

// NewTimesheetService wires the repository, the summary event publisher and
// the holiday calendar. defaultZone is used when a request carries no zone.
func NewTimesheetService(repo repository.Repository, p messaging.EventPublisher, h holiday.Calendar, policy timesheet.Policy, defaultZone string) *TimesheetService {
	return &TimesheetService{
		repo:        repo,
		publisher:   p,
		holidays:    h,
		policy:      policy,
		defaultZone: defaultZone,
		now:         time.Now,
	}
}

// LogEntry resolves the submitted civil times, classifies the hours and
// stores the result, creating a new entry or replacing an existing one.
func (s *TimesheetService) LogEntry(ctx context.Context, user model.Principal, req LogEntryRequest) (*model.TimesheetEntry, error) {
	zone := req.TimeZone
	if zone == "" {
		zone = s.defaultZone
	}

	checkIn, err := timesheet.ResolveString(req.Date, req.StartTime, zone)
	if err != nil {
		return nil, err
	}
	checkOut, err := timesheet.ResolveString(req.Date, req.EndTime, zone)
	if err != nil {
		return nil, err
	}
	if !checkIn.Before(checkOut) {
		return nil, ErrInvalidOrdering
	}

	entry := &model.TimesheetEntry{
		ID:          req.EntryID,
		UserID:      user.UserID,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		IsHoliday:   req.IsHoliday,
		Hours:       s.policy.Classify(checkIn, checkOut, req.IsHoliday),
		EmailStatus: model.StatusEmailPending,
	}

	if req.EntryID == "" {
		entry.ID = uuid.New().String()
		if err := s.repo.CreateEntry(ctx, entry); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("Failed to create timesheet entry")
			return nil, errors.New("failed to create timesheet entry")
		}
	} else {
		existing, err := s.repo.GetEntry(ctx, req.EntryID)
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Str("entry_id", req.EntryID).Msg("Failed to load timesheet entry")
			return nil, errors.New("failed to load timesheet entry")
		}
		if existing == nil {
			return nil, ErrEntryNotFound
		}
		if !user.CanModify(existing.UserID) {
			return nil, ErrPermissionDenied
		}
		// An admin editing someone else's entry keeps the owner.
		entry.UserID = existing.UserID
		if err := s.repo.UpdateEntry(ctx, entry); err != nil {
			if errors.Is(err, repository.ErrEntryNotFound) {
				return nil, ErrEntryNotFound
			}
			log.Ctx(ctx).Error().Err(err).Str("entry_id", req.EntryID).Msg("Failed to update timesheet entry")
			return nil, errors.New("failed to update timesheet entry")
		}
	}

	event := messaging.EntryRecordedEvent{
		EntryID:       entry.ID,
		UserID:        entry.UserID,
		TotalHours:    entry.TotalHours,
		OvertimeHours: entry.OvertimeHours,
		BankHours:     entry.BankHours,
		OccurredAt:    s.now().UTC(),
	}
	if err := s.publisher.PublishEntryRecorded(ctx, event); err != nil {
		// The entry is stored; the summary email is best effort.
		log.Ctx(ctx).Warn().Err(err).Str("entry_id", entry.ID).Msg("Failed to publish entry recorded event")
	}

	return entry, nil
}

// History returns the user's entries, most recent check-in first.
func (s *TimesheetService) History(ctx context.Context, user model.Principal) ([]model.TimesheetEntry, error) {
	entries, err := s.repo.ListEntriesByUser(ctx, user.UserID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to list timesheet entries")
		return nil, errors.New("failed to list timesheet entries")
	}

	slices.SortStableFunc(entries, func(a, b model.TimesheetEntry) int {
		return b.CheckIn.Compare(a.CheckIn)
	})
	return entries, nil
}

// DeleteEntry removes an entry owned by the user, or any entry for admins.
// A missing entry is reported as ErrPermissionDenied.
func (s *TimesheetService) DeleteEntry(ctx context.Context, user model.Principal, id string) error {
	existing, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("entry_id", id).Msg("Failed to load timesheet entry")
		return errors.New("failed to load timesheet entry")
	}
	if existing == nil || !user.CanModify(existing.UserID) {
		return ErrPermissionDenied
	}

	if err := s.repo.DeleteEntry(ctx, id); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("entry_id", id).Msg("Failed to delete timesheet entry")
		return errors.New("failed to delete timesheet entry")
	}
	return nil
}

// NationalHolidays lists the year's national holidays. Upstream failures
// yield an empty list.
func (s *TimesheetService) NationalHolidays(ctx context.Context, year int) ([]holiday.Holiday, error) {
	holidays, err := s.holidays.NationalHolidays(ctx, year)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Int("year", year).Msg("Holiday lookup failed")
		return []holiday.Holiday{}, nil
	}
	return holidays, nil
}
