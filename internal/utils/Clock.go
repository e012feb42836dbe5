package utils

import "time"

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (s SystemClock) Now() time.Time {
	return time.Now()
}

type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}

// Today returns the current calendar date at midnight UTC. Transaction dates carry no time of day.
func Today(clock Clock) time.Time {
	return DateOf(clock.Now())
}

// DateOf drops the time of day, keeping the calendar date in t's own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthRange returns the first and the last calendar day of the month.
func MonthRange(month time.Month, year int) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	// day 0 of the following month normalizes to the last day of this one
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	return first, last
}
