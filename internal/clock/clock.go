// Package clock centralizes "what day is it" so every reader of completion
// state agrees on today and tests can pin it.
package clock

import (
	"sync"
	"time"
)

// DateLayout is the calendar-date format used for completion dates.
const DateLayout = "2006-01-02"

type Clock interface {
	Now() time.Time
}

// System reads the local wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed reports a settable instant. It is safe for concurrent use.
type Fixed struct {
	mu sync.Mutex
	t  time.Time
}

func NewFixed(t time.Time) *Fixed {
	return &Fixed{t: t}
}

func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

// Set moves the clock to t.
func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	f.t = t
	f.mu.Unlock()
}

// AddDate advances the clock by the given number of calendar days.
func (f *Fixed) AddDate(days int) {
	f.mu.Lock()
	f.t = f.t.AddDate(0, 0, days)
	f.mu.Unlock()
}

// Today returns the clock's current local calendar date as YYYY-MM-DD.
func Today(c Clock) string {
	return DateString(c.Now())
}

// DateString formats t's calendar date in t's own location.
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}
