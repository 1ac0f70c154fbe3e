package timesheet

import (
	"math"
	"time"
)

const (
	LunchThresholdMinutes = 240
	LunchDeductionMinutes = 60
	StandardShiftMinutes  = 480
)

// Policy holds the payroll thresholds used by Classify.
type Policy struct {
	// A shift strictly longer than this loses LunchDeductionMinutes.
	LunchThresholdMinutes int
	LunchDeductionMinutes int
	// Weekday minutes below this are banked as a deficit.
	StandardShiftMinutes int
}

func DefaultPolicy() Policy {
	return Policy{
		LunchThresholdMinutes: LunchThresholdMinutes,
		LunchDeductionMinutes: LunchDeductionMinutes,
		StandardShiftMinutes:  StandardShiftMinutes,
	}
}

// Hours is the classification of one check-in/check-out pair, every field
// in centesimal hours (see MinutesToCentesimal).
type Hours struct {
	TotalHours    float64 `json:"totalHours"`
	LunchHours    float64 `json:"lunchHours"`
	NormalHours   float64 `json:"normalHours"`
	OvertimeHours float64 `json:"overtimeHours"`
	BankHours     float64 `json:"bankHours"`
}

// IsPremiumDay reports whether a shift starting at checkIn is paid entirely
// as overtime: holidays and UTC Saturdays/Sundays.
func IsPremiumDay(checkIn time.Time, isHoliday bool) bool {
	wd := checkIn.UTC().Weekday()
	return isHoliday || wd == time.Saturday || wd == time.Sunday
}

// Classify classifies with DefaultPolicy.
func Classify(checkIn, checkOut time.Time, isHoliday bool) Hours {
	return DefaultPolicy().Classify(checkIn, checkOut, isHoliday)
}

// Classify splits the worked time between checkIn and checkOut into lunch,
// normal, overtime and time-bank minutes.
//
// On premium days only whole hours count: checkOut is truncated to the top
// of its UTC hour. On weekdays overtime is credited in whole hours and the
// leftover minutes are dropped. Callers must ensure checkIn < checkOut;
// negative durations are clamped to zero.
func (p Policy) Classify(checkIn, checkOut time.Time, isHoliday bool) Hours {
	premium := IsPremiumDay(checkIn, isHoliday)

	out := checkOut.UTC()
	if premium {
		out = out.Truncate(time.Hour)
	}

	total := out.Sub(checkIn).Minutes()
	if total < 0 {
		total = 0
	}

	var lunch float64
	if total > float64(p.LunchThresholdMinutes) {
		lunch = float64(p.LunchDeductionMinutes)
	}
	net := total - lunch

	var normal, extra, bank float64
	switch {
	case premium:
		extra = net
	default:
		standard := float64(p.StandardShiftMinutes)
		diff := net - standard
		if diff < 0 {
			normal = math.Max(net, 0)
			bank = diff
		} else {
			normal = standard
			extra = math.Floor(diff/60) * 60
		}
	}

	return Hours{
		TotalHours:    MinutesToCentesimal(total),
		LunchHours:    MinutesToCentesimal(lunch),
		NormalHours:   MinutesToCentesimal(normal),
		OvertimeHours: MinutesToCentesimal(extra),
		BankHours:     MinutesToCentesimal(bank),
	}
}
