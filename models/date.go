package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the calendar date format used by the backend
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// Date is an optional calendar date. The zero value means "not set", which is
// how a missing, null or empty date arrives from the backend.
type Date struct {
	time.Time
}

// NewDate returns the date part of t
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())}
}

// ParseDate accepts plain dates and the timestamp formats the backend emits
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Date{t}, nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q", s)
}

// IsSet reports whether a date was given
func (d Date) IsSet() bool {
	return !d.Time.IsZero()
}

// StartOfDay is the first instant of the date in loc
func (d Date) StartOfDay(loc *time.Location) time.Time {
	y, m, day := d.Time.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, loc)
}

// EndOfDay is the last instant of the date in loc
func (d Date) EndOfDay(loc *time.Location) time.Time {
	y, m, day := d.Time.Date()
	return time.Date(y, m, day, 23, 59, 59, int(time.Second-time.Nanosecond), loc)
}

// String formats the date, empty when unset
func (d Date) String() string {
	if !d.IsSet() {
		return ""
	}
	return d.Time.Format(DateLayout)
}

// MarshalJSON writes the date as "YYYY-MM-DD" or null
func (d Date) MarshalJSON() ([]byte, error) {
	if !d.IsSet() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format(DateLayout))
}

// UnmarshalJSON reads null, "" or any accepted date layout
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
