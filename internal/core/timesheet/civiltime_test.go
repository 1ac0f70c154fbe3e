package timesheet_test

import (
	"testing"
	"time"

	"timesheet.service/internal/core/timesheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		date  timesheet.Date
		clock timesheet.TimeOfDay
		zone  string
		want  time.Time
	}{
		{
			name:  "sao paulo fixed offset",
			date:  timesheet.Date{Year: 2024, Month: time.March, Day: 4},
			clock: timesheet.TimeOfDay{Hour: 9, Minute: 0},
			zone:  "America/Sao_Paulo",
			want:  time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC),
		},
		{
			name:  "berlin winter",
			date:  timesheet.Date{Year: 2024, Month: time.January, Day: 15},
			clock: timesheet.TimeOfDay{Hour: 9, Minute: 0},
			zone:  "Europe/Berlin",
			want:  time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC),
		},
		{
			name:  "berlin summer",
			date:  timesheet.Date{Year: 2024, Month: time.July, Day: 15},
			clock: timesheet.TimeOfDay{Hour: 9, Minute: 0},
			zone:  "Europe/Berlin",
			want:  time.Date(2024, 7, 15, 7, 0, 0, 0, time.UTC),
		},
		{
			name:  "half hour offset",
			date:  timesheet.Date{Year: 2024, Month: time.March, Day: 4},
			clock: timesheet.TimeOfDay{Hour: 9, Minute: 15},
			zone:  "Asia/Kolkata",
			want:  time.Date(2024, 3, 4, 3, 45, 0, 0, time.UTC),
		},
		{
			name:  "utc",
			date:  timesheet.Date{Year: 2024, Month: time.February, Day: 29},
			clock: timesheet.TimeOfDay{Hour: 23, Minute: 59},
			zone:  "UTC",
			want:  time.Date(2024, 2, 29, 23, 59, 0, 0, time.UTC),
		},
		{
			name:  "local evening crosses into next utc day",
			date:  timesheet.Date{Year: 2024, Month: time.March, Day: 8},
			clock: timesheet.TimeOfDay{Hour: 22, Minute: 0},
			zone:  "America/Sao_Paulo",
			want:  time.Date(2024, 3, 9, 1, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := timesheet.Resolve(tt.date, tt.clock, tt.zone)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

// The offset is read at the naive instant. On the morning New York springs
// forward, 03:00 EDT (07:00Z) resolves with the EST offset to 08:00Z.
func TestResolveUsesOffsetAtNaiveInstant(t *testing.T) {
	got, err := timesheet.Resolve(
		timesheet.Date{Year: 2024, Month: time.March, Day: 10},
		timesheet.TimeOfDay{Hour: 3, Minute: 0},
		"America/New_York",
	)
	require.NoError(t, err)

	assert.True(t, got.Equal(time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)), "got %s", got)

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	assert.False(t, got.Equal(time.Date(2024, 3, 10, 3, 0, 0, 0, ny)))
}

func TestResolveRoundTrip(t *testing.T) {
	zones := []string{"UTC", "America/Sao_Paulo", "Europe/Lisbon", "Asia/Tokyo", "Asia/Kolkata", "America/Los_Angeles"}
	clocks := []string{"00:00", "07:30", "09:00", "12:45", "18:00", "23:59"}

	for _, zone := range zones {
		loc, err := time.LoadLocation(zone)
		require.NoError(t, err)

		for _, clock := range clocks {
			got, err := timesheet.ResolveString("2024-05-14", clock, zone)
			require.NoError(t, err)
			assert.Equal(t, clock, got.In(loc).Format("15:04"), "zone %s", zone)
			assert.Equal(t, "2024-05-14", got.In(loc).Format("2006-01-02"), "zone %s", zone)
		}
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name  string
		date  timesheet.Date
		clock timesheet.TimeOfDay
		zone  string
		want  error
	}{
		{"unknown zone", timesheet.Date{Year: 2024, Month: 3, Day: 4}, timesheet.TimeOfDay{Hour: 9}, "Mars/Olympus_Mons", timesheet.ErrInvalidZoneID},
		{"empty zone", timesheet.Date{Year: 2024, Month: 3, Day: 4}, timesheet.TimeOfDay{Hour: 9}, "", timesheet.ErrInvalidZoneID},
		{"local zone", timesheet.Date{Year: 2024, Month: 3, Day: 4}, timesheet.TimeOfDay{Hour: 9}, "Local", timesheet.ErrInvalidZoneID},
		{"month 13", timesheet.Date{Year: 2024, Month: 13, Day: 1}, timesheet.TimeOfDay{Hour: 9}, "UTC", timesheet.ErrInvalidDate},
		{"month 0", timesheet.Date{Year: 2024, Month: 0, Day: 1}, timesheet.TimeOfDay{Hour: 9}, "UTC", timesheet.ErrInvalidDate},
		{"feb 29 non leap", timesheet.Date{Year: 2023, Month: 2, Day: 29}, timesheet.TimeOfDay{Hour: 9}, "UTC", timesheet.ErrInvalidDate},
		{"april 31", timesheet.Date{Year: 2024, Month: 4, Day: 31}, timesheet.TimeOfDay{Hour: 9}, "UTC", timesheet.ErrInvalidDate},
		{"day 0", timesheet.Date{Year: 2024, Month: 4, Day: 0}, timesheet.TimeOfDay{Hour: 9}, "UTC", timesheet.ErrInvalidDate},
		{"hour 24", timesheet.Date{Year: 2024, Month: 3, Day: 4}, timesheet.TimeOfDay{Hour: 24}, "UTC", timesheet.ErrInvalidTime},
		{"minute 60", timesheet.Date{Year: 2024, Month: 3, Day: 4}, timesheet.TimeOfDay{Hour: 9, Minute: 60}, "UTC", timesheet.ErrInvalidTime},
		{"negative minute", timesheet.Date{Year: 2024, Month: 3, Day: 4}, timesheet.TimeOfDay{Hour: 9, Minute: -1}, "UTC", timesheet.ErrInvalidTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := timesheet.Resolve(tt.date, tt.clock, tt.zone)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := timesheet.ParseDate("2024-03-04")
	require.NoError(t, err)
	assert.Equal(t, timesheet.Date{Year: 2024, Month: time.March, Day: 4}, d)

	for _, in := range []string{"", "2024-3-4", "2024/03/04", "04-03-2024", "2024-02-30", "2024-13-01", "abcd-ef-gh", "2024-+3-04"} {
		_, err := timesheet.ParseDate(in)
		assert.ErrorIs(t, err, timesheet.ErrInvalidDate, "input %q", in)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	c, err := timesheet.ParseTimeOfDay("07:05")
	require.NoError(t, err)
	assert.Equal(t, timesheet.TimeOfDay{Hour: 7, Minute: 5}, c)

	for _, in := range []string{"", "7:05", "07:5", "0705", "24:00", "12:60", "ab:cd", "07:05:00", "-1:30"} {
		_, err := timesheet.ParseTimeOfDay(in)
		assert.ErrorIs(t, err, timesheet.ErrInvalidTime, "input %q", in)
	}
}

func TestResolveStringPropagatesTypedErrors(t *testing.T) {
	_, err := timesheet.ResolveString("2024-03-04", "09:00", "Nowhere/City")
	assert.ErrorIs(t, err, timesheet.ErrInvalidZoneID)

	_, err = timesheet.ResolveString("2024-03-32", "09:00", "UTC")
	assert.ErrorIs(t, err, timesheet.ErrInvalidDate)

	_, err = timesheet.ResolveString("2024-03-04", "9h", "UTC")
	assert.ErrorIs(t, err, timesheet.ErrInvalidTime)
}
