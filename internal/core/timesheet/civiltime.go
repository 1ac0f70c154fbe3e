// Package timesheet turns civil check-in/check-out times into UTC instants
// and classifies the worked minutes into payroll buckets.
package timesheet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // zone data must not depend on the host
)

var (
	ErrInvalidZoneID = errors.New("invalid time zone")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidTime   = errors.New("invalid time of day")
)

// Date is a calendar date without a zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// TimeOfDay is a wall-clock time with minute precision.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (d Date) validate() error {
	if d.Month < time.January || d.Month > time.December {
		return fmt.Errorf("%w: month %d out of range", ErrInvalidDate, d.Month)
	}
	// Day 0 of the following month is the last day of this one.
	last := time.Date(d.Year, d.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if d.Day < 1 || d.Day > last {
		return fmt.Errorf("%w: day %d out of range for %04d-%02d", ErrInvalidDate, d.Day, d.Year, d.Month)
	}
	return nil
}

func (t TimeOfDay) validate() error {
	if t.Hour < 0 || t.Hour > 23 {
		return fmt.Errorf("%w: hour %d out of range", ErrInvalidTime, t.Hour)
	}
	if t.Minute < 0 || t.Minute > 59 {
		return fmt.Errorf("%w: minute %d out of range", ErrInvalidTime, t.Minute)
	}
	return nil
}

// LoadZone looks up an IANA zone. The empty name and "Local" are rejected
// because their meaning depends on the host.
func LoadZone(zoneID string) (*time.Location, error) {
	if zoneID == "" || zoneID == "Local" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidZoneID, zoneID)
	}
	loc, err := time.LoadLocation(zoneID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidZoneID, zoneID)
	}
	return loc, nil
}

// Resolve converts a civil date and time in zoneID into a UTC instant.
//
// The wall clock is first read as if it were UTC (the naive instant) and the
// zone offset is taken at that naive instant, then subtracted. The offset is
// not refined against the corrected instant, so inside the few hours around
// a DST transition the result can be off by the DST delta.
func Resolve(date Date, clock TimeOfDay, zoneID string) (time.Time, error) {
	if err := date.validate(); err != nil {
		return time.Time{}, err
	}
	if err := clock.validate(); err != nil {
		return time.Time{}, err
	}
	loc, err := LoadZone(zoneID)
	if err != nil {
		return time.Time{}, err
	}

	naive := time.Date(date.Year, date.Month, date.Day, clock.Hour, clock.Minute, 0, 0, time.UTC)
	_, offset := naive.In(loc).Zone()

	return naive.Add(-time.Duration(offset) * time.Second), nil
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return Date{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDate, s)
	}
	n, err := atoiAll(parts)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDate, s)
	}
	d := Date{Year: n[0], Month: time.Month(n[1]), Day: n[2]}
	return d, d.validate()
}

// ParseTimeOfDay parses an HH:mm string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return TimeOfDay{}, fmt.Errorf("%w: %q is not HH:mm", ErrInvalidTime, s)
	}
	n, err := atoiAll(parts)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q is not HH:mm", ErrInvalidTime, s)
	}
	t := TimeOfDay{Hour: n[0], Minute: n[1]}
	return t, t.validate()
}

// ResolveString is Resolve over the YYYY-MM-DD and HH:mm strings submitted
// by the create/update workflow.
func ResolveString(date, clock, zoneID string) (time.Time, error) {
	d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	c, err := ParseTimeOfDay(clock)
	if err != nil {
		return time.Time{}, err
	}
	return Resolve(d, c, zoneID)
}

func atoiAll(parts []string) ([]int, error) {
	out := make([]int, len(parts))
	for i, p := range parts {
		// Atoi accepts a leading sign; the formats here never carry one.
		if p == "" || p[0] == '+' || p[0] == '-' {
			return nil, strconv.ErrSyntax
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
