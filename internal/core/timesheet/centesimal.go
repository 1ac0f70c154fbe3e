package timesheet

import (
	"fmt"
	"math"
)

// MinutesToCentesimal encodes a minute count as hours with the minutes
// written as the two digits after the point: 90 -> 1.30, -240 -> -4.00.
// This is not a decimal-hour value.
func MinutesToCentesimal(minutes float64) float64 {
	sign := 1.0
	if minutes < 0 {
		sign = -1
	}
	abs := math.Abs(minutes)
	hours := math.Floor(abs / 60)
	rem := math.Mod(abs, 60)

	v := math.Round((hours+rem/100)*100) / 100
	if v == 0 {
		return 0
	}
	return sign * v
}

// FormatCentesimal renders a centesimal value with both minute digits.
func FormatCentesimal(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
