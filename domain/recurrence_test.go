package domain

import (
	"testing"
	"time"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		t.Fatalf("parse day %q: %v", s, err)
	}
	return parsed
}

func TestDaysUntilDueEmptyHistory(t *testing.T) {
	for _, freq := range []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyInterval} {
		p := &Protocol{Frequency: freq, FrequencyParam: 5}
		if got := DaysUntilDue(p, time.Now()); got != 0 {
			t.Fatalf("empty history, freq %s: DaysUntilDue=%d, want 0", freq, got)
		}
	}
}

func TestDaysUntilDueIntervalScenario(t *testing.T) {
	p := &Protocol{
		Frequency:      FrequencyInterval,
		FrequencyParam: 3,
		History:        map[string]int{"2026-03-01": 1},
	}

	cases := []struct {
		today string
		want  int
	}{
		{"2026-03-03", 1},
		{"2026-03-04", 0},
		{"2026-03-05", -1},
	}
	for _, tc := range cases {
		if got := DaysUntilDue(p, day(t, tc.today)); got != tc.want {
			t.Fatalf("today=%s: DaysUntilDue=%d, want %d", tc.today, got, tc.want)
		}
	}
}

func TestDaysUntilDueDecreasesByOnePerDay(t *testing.T) {
	p := &Protocol{
		Frequency: FrequencyWeekly,
		History:   map[string]int{"2026-05-10": 1},
	}

	start := day(t, "2026-05-10")
	prev := DaysUntilDue(p, start)
	for i := 1; i <= 14; i++ {
		got := DaysUntilDue(p, start.AddDate(0, 0, i))
		if got != prev-1 {
			t.Fatalf("day +%d: DaysUntilDue=%d, want %d", i, got, prev-1)
		}
		prev = got
	}
}

func TestDaysUntilDueUsesMostRecentHistoryDay(t *testing.T) {
	p := &Protocol{
		Frequency: FrequencyDaily,
		History: map[string]int{
			"2026-01-05": 1,
			"2026-01-20": 1,
			"2026-01-11": 1,
		},
	}
	if got := DaysUntilDue(p, day(t, "2026-01-21")); got != 0 {
		t.Fatalf("DaysUntilDue=%d, want 0 (one day after most recent check-in)", got)
	}
}

func TestDaysUntilDueFrequencyIntervals(t *testing.T) {
	history := map[string]int{"2026-02-01": 1}
	today := day(t, "2026-02-02")

	cases := []struct {
		freq  Frequency
		param int
		want  int
	}{
		{FrequencyDaily, 0, 0},
		{FrequencyWeekly, 0, 6},
		{FrequencyMonthly, 0, 29},
		{FrequencyInterval, 10, 9},
		{FrequencyInterval, 0, 0}, // missing param falls back to 1
	}
	for _, tc := range cases {
		p := &Protocol{Frequency: tc.freq, FrequencyParam: tc.param, History: history}
		if got := DaysUntilDue(p, today); got != tc.want {
			t.Fatalf("freq=%s param=%d: DaysUntilDue=%d, want %d", tc.freq, tc.param, got, tc.want)
		}
	}
}
