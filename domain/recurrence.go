package domain

import (
	"math"
	"time"
)

// DaysUntilDue computes how many days remain until the protocol is due,
// relative to the supplied reference day. Zero or negative means due now;
// the magnitude of a negative result is how overdue the protocol is.
//
// The function is pure: it depends only on its arguments, never on the
// wall clock.
func DaysUntilDue(p *Protocol, today time.Time) int {
	if p == nil || len(p.History) == 0 {
		return 0
	}

	// Day keys sort chronologically, so the lexicographic max is the most
	// recent check-in day.
	last := ""
	for day := range p.History {
		if day > last {
			last = day
		}
	}

	lastDate, err := time.ParseInLocation(dayKeyLayout, last, today.Location())
	if err != nil {
		return 0
	}

	return p.Interval() - daysBetween(lastDate, today)
}

// daysBetween counts whole calendar days from a to b, comparing date-only
// values in b's location. Rounding absorbs DST-shortened or -lengthened days.
func daysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, b.Location())
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, b.Location())
	return int(math.Round(b.Sub(a).Hours() / 24))
}
