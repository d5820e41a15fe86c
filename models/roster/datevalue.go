package roster

import (
	"encoding/json"
	"time"
)

// DateValue holds either a parsed calendar date or the original roster text.
// Unparseable dates are not an error in this pipeline; they travel through as
// raw strings and downstream consumers branch on Parsed.
type DateValue struct {
	Time   time.Time
	Raw    string
	Parsed bool
}

// NewDate creates a parsed DateValue.
func NewDate(t time.Time) DateValue {
	return DateValue{Time: t, Parsed: true}
}

// RawDate creates a DateValue that carries the original string unchanged.
func RawDate(s string) DateValue {
	return DateValue{Raw: s}
}

// String returns the date in YYYY-MM-DD format, or the raw text when unparsed.
func (d DateValue) String() string {
	if d.Parsed {
		return d.Time.Format("2006-01-02")
	}
	return d.Raw
}

// MarshalJSON implements the json.Marshaler interface
func (d DateValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// TimeValue holds either a parsed time of day or the original roster text.
type TimeValue struct {
	Time   time.Time
	Raw    string
	Parsed bool
}

// NewTime creates a parsed TimeValue.
func NewTime(t time.Time) TimeValue {
	return TimeValue{Time: t, Parsed: true}
}

// RawTime creates a TimeValue that carries the original string unchanged.
func RawTime(s string) TimeValue {
	return TimeValue{Raw: s}
}

// String returns the time in HH:MM:SS format, or the raw text when unparsed.
func (t TimeValue) String() string {
	if t.Parsed {
		return t.Time.Format("15:04:05")
	}
	return t.Raw
}

// MarshalJSON implements the json.Marshaler interface
func (t TimeValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}
