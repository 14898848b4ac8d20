package domain

import "time"

// Frequency describes how often a protocol is due.
type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyMonthly  Frequency = "monthly"
	FrequencyInterval Frequency = "interval"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyInterval:
		return true
	default:
		return false
	}
}

// dayKeyLayout is the calendar-day key format used by protocol and calorie
// history maps. It sorts chronologically under plain string comparison.
const dayKeyLayout = "2006-01-02"

// DayKey returns the local-time calendar-day key for t.
func DayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}

// Protocol represents a recurring habit with a frequency-driven due cycle.
type Protocol struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Frequency      Frequency      `json:"frequency"`
	FrequencyParam int            `json:"frequency_param,omitempty"`
	Streak         int            `json:"streak"`
	History        map[string]int `json:"history,omitempty"`
	IsActive       bool           `json:"is_active"`
	CreatedAt      time.Time      `json:"created_at"`
	IsToday        bool           `json:"is_today"`
}

// Interval resolves the due cycle length in days.
func (p *Protocol) Interval() int {
	switch p.Frequency {
	case FrequencyWeekly:
		return 7
	case FrequencyMonthly:
		return 30
	case FrequencyInterval:
		if p.FrequencyParam > 0 {
			return p.FrequencyParam
		}
		return 1
	default:
		return 1
	}
}

// CheckedInOn reports whether the protocol has a positive check-in count on
// the given calendar day.
func (p *Protocol) CheckedInOn(day string) bool {
	return p != nil && p.History[day] > 0
}
