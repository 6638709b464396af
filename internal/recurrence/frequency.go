package recurrence

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

type Kind int

const (
	Daily Kind = iota
	Weekly
)

var kindNames = map[Kind]string{
	Daily:  "DAILY",
	Weekly: "WEEKLY",
}

var kindFromName = map[string]Kind{
	"DAILY":  Daily,
	"WEEKLY": Weekly,
}

var dayNames = map[string]time.Weekday{
	"SU": time.Sunday,
	"MO": time.Monday,
	"TU": time.Tuesday,
	"WE": time.Wednesday,
	"TH": time.Thursday,
	"FR": time.Friday,
	"SA": time.Saturday,
}

var dayAbbrev = map[time.Weekday]string{
	time.Sunday:    "SU",
	time.Monday:    "MO",
	time.Tuesday:   "TU",
	time.Wednesday: "WE",
	time.Thursday:  "TH",
	time.Friday:    "FR",
	time.Saturday:  "SA",
}

// ErrNoDays is returned by Validate for a weekly schedule without any day.
var ErrNoDays = errors.New("weekly frequency needs at least one day")

// Frequency is the schedule of a chore: every day, or on a fixed set of
// weekdays each week.
type Frequency struct {
	Kind Kind
	Days []time.Weekday // Weekly only, ascending, no duplicates
}

// EveryDay returns the Daily frequency.
func EveryDay() Frequency {
	return Frequency{Kind: Daily}
}

// OnDays returns a Weekly frequency active on the given weekdays.
func OnDays(days ...time.Weekday) Frequency {
	return Frequency{Kind: Weekly, Days: normalizeDays(days)}
}

func normalizeDays(days []time.Weekday) []time.Weekday {
	out := slices.Clone(days)
	slices.Sort(out)
	return slices.Compact(out)
}

// IsActiveOn reports whether a chore with frequency f is due on date.
// A nil frequency is legacy data and counts as Daily.
func IsActiveOn(f *Frequency, date time.Time) bool {
	if f == nil {
		return true
	}
	return f.IsActiveOn(date)
}

// IsActiveOn reports whether date falls on the schedule. Unknown kinds are
// active every day.
func (f Frequency) IsActiveOn(date time.Time) bool {
	switch f.Kind {
	case Daily:
		return true
	case Weekly:
		return slices.Contains(f.Days, date.Weekday())
	}
	return true
}

// Validate rejects weekly schedules with no days or with days outside 0..6.
func (f Frequency) Validate() error {
	switch f.Kind {
	case Daily:
		return nil
	case Weekly:
		if len(f.Days) == 0 {
			return ErrNoDays
		}
		for _, d := range f.Days {
			if d < time.Sunday || d > time.Saturday {
				return fmt.Errorf("invalid weekday %d", d)
			}
		}
		return nil
	}
	return fmt.Errorf("unknown frequency kind %d", f.Kind)
}

// Equal reports whether two frequencies describe the same schedule.
func (f Frequency) Equal(o Frequency) bool {
	if f.Kind != o.Kind {
		return false
	}
	if f.Kind == Daily {
		return true
	}
	return slices.Equal(normalizeDays(f.Days), normalizeDays(o.Days))
}

// Parse parses the stored form, e.g. "FREQ=DAILY" or "FREQ=WEEKLY;BYDAY=MO,WE".
func Parse(rule string) (Frequency, error) {
	if rule == "" {
		return Frequency{}, fmt.Errorf("empty rule")
	}

	var f Frequency
	var hasFreq bool

	for _, part := range strings.Split(rule, ";") {
		key, val, ok := strings.Cut(part, "=")
		if !ok {
			return Frequency{}, fmt.Errorf("invalid rule part: %q", part)
		}

		switch key {
		case "FREQ":
			k, ok := kindFromName[val]
			if !ok {
				return Frequency{}, fmt.Errorf("unknown frequency: %q", val)
			}
			f.Kind = k
			hasFreq = true

		case "BYDAY":
			for _, d := range strings.Split(val, ",") {
				wd, ok := dayNames[strings.TrimSpace(d)]
				if !ok {
					return Frequency{}, fmt.Errorf("unknown day: %q", d)
				}
				f.Days = append(f.Days, wd)
			}

		default:
			return Frequency{}, fmt.Errorf("unsupported rule key: %q", key)
		}
	}

	if !hasFreq {
		return Frequency{}, fmt.Errorf("FREQ is required")
	}
	if f.Kind == Daily {
		f.Days = nil
	}
	f.Days = normalizeDays(f.Days)

	return f, nil
}

// FromStored decodes a persisted value. Missing or unreadable values fall
// back to Daily; ok is false when a non-empty value had to be replaced.
func FromStored(rule string) (f Frequency, ok bool) {
	if rule == "" {
		return EveryDay(), true
	}
	f, err := Parse(rule)
	if err != nil || f.Validate() != nil {
		return EveryDay(), false
	}
	return f, true
}

// String serializes the frequency to its stored form.
func (f Frequency) String() string {
	name, ok := kindNames[f.Kind]
	if !ok {
		name = kindNames[Daily]
	}
	parts := []string{"FREQ=" + name}

	if f.Kind == Weekly && len(f.Days) > 0 {
		var days []string
		for _, d := range normalizeDays(f.Days) {
			days = append(days, dayAbbrev[d])
		}
		parts = append(parts, "BYDAY="+strings.Join(days, ","))
	}

	return strings.Join(parts, ";")
}

// Describe returns a short human-readable schedule.
func (f Frequency) Describe() string {
	if f.Kind != Weekly {
		return "Every day"
	}
	if len(f.Days) == 7 {
		return "Every day"
	}
	var names []string
	for _, d := range normalizeDays(f.Days) {
		names = append(names, d.String()[:3])
	}
	return strings.Join(names, ", ")
}

type frequencyJSON struct {
	Type string `json:"type"`
	Days []int  `json:"days,omitempty"`
}

func (f Frequency) MarshalJSON() ([]byte, error) {
	if f.Kind != Weekly {
		return json.Marshal(frequencyJSON{Type: "daily"})
	}
	days := make([]int, 0, len(f.Days))
	for _, d := range f.Days {
		days = append(days, int(d))
	}
	return json.Marshal(frequencyJSON{Type: "weekly", Days: days})
}

// UnmarshalJSON accepts {"type":"daily"} and {"type":"weekly","days":[1,3]}.
// Any other type is read as daily. Day ranges are checked by Validate.
func (f *Frequency) UnmarshalJSON(data []byte) error {
	var raw frequencyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if strings.ToLower(raw.Type) != "weekly" {
		*f = EveryDay()
		return nil
	}
	days := make([]time.Weekday, 0, len(raw.Days))
	for _, d := range raw.Days {
		days = append(days, time.Weekday(d))
	}
	*f = OnDays(days...)
	return nil
}
