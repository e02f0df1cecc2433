package domain

import "time"

const day = 24 * time.Hour

// MarkupPercent returns the price multiplier, in percent, applied to a flight
// departing in the given number of whole days.
func MarkupPercent(days int) int64 {
	switch {
	case days <= 2:
		return 170
	case days <= 7:
		return 140
	case days <= 30:
		return 110
	default:
		return 100
	}
}

// DynamicPrice computes the price of a seat quoted on today for a flight
// with the given base price and departure date. Fractions of a cent are
// rounded half up.
func DynamicPrice(baseCents int64, departure, today time.Time) int64 {
	pct := MarkupPercent(DaysBetween(today, departure))
	return (baseCents*pct + 50) / 100
}

// DaysBetween returns the number of whole calendar days from one date to
// another. Clock time and location offsets are ignored.
func DaysBetween(from, to time.Time) int {
	return int(DateOf(to).Sub(DateOf(from)) / day)
}

// DateOf truncates t to midnight UTC of its calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
