// Package clock is the single source of truth for "what day is it".
//
// All daily-gating logic routes through a Clock so that the debug day offset
// and the real wall clock stay interchangeable, and tests can pin time.
package clock

import "time"

// DayKeyLayout is the canonical calendar-day format used for gating.
const DayKeyLayout = "2006-01-02"

// Clock yields the current moment and its canonical day key.
type Clock interface {
	// Now returns the current time, shifted by any configured day offset.
	Now() time.Time
	// TodayKey returns Now() formatted as YYYY-MM-DD in UTC.
	TodayKey() string
}

// DayKey formats any timestamp into the canonical day key. Completion
// timestamps are compared via this helper, never via raw time equality.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayKeyLayout)
}

// SystemClock reads the wall clock, optionally shifted by a whole number of
// days. The offset exists for demo/debug time travel; it is applied uniformly
// to Now and TodayKey so the day-key semantics cannot drift apart.
type SystemClock struct {
	dayOffset int
}

// NewSystemClock returns a clock shifted by dayOffset days (0 in production).
func NewSystemClock(dayOffset int) *SystemClock {
	return &SystemClock{dayOffset: dayOffset}
}

func (c *SystemClock) Now() time.Time {
	return time.Now().AddDate(0, 0, c.dayOffset)
}

func (c *SystemClock) TodayKey() string {
	return DayKey(c.Now())
}

// Fixed is a test clock pinned to a single instant.
type Fixed struct {
	T time.Time
}

func (f *Fixed) Now() time.Time { return f.T }

func (f *Fixed) TodayKey() string { return DayKey(f.T) }

// AdvanceDays moves the fixed clock forward by whole days, mirroring the
// debug time-travel mode.
func (f *Fixed) AdvanceDays(n int) { f.T = f.T.AddDate(0, 0, n) }
