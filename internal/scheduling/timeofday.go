package scheduling

import (
	"fmt"
	"time"
)

// TimeOfDay is a venue-local wall-clock time. It carries no date and no
// timezone; comparison is by minutes since midnight. The textual form is
// zero-padded 24-hour "HH:MM" and round-trips exactly.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses zero-padded 24-hour "HH:MM" text.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return TimeOfDay{}, newValidationError("time", fmt.Sprintf("expected HH:MM, got %q", s))
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return TimeOfDay{}, newValidationError("time", fmt.Sprintf("expected HH:MM, got %q", s))
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || m > 59 {
		return TimeOfDay{}, newValidationError("time", fmt.Sprintf("out of range: %q", s))
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

// MustTimeOfDay is ParseTimeOfDay for static values; it panics on bad input.
func MustTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Minutes returns minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// String returns the zero-padded "HH:MM" form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Before reports whether t is strictly earlier than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

// Equal reports whether t and other are the same wall-clock minute.
func (t TimeOfDay) Equal(other TimeOfDay) bool {
	return t.Minutes() == other.Minutes()
}

// timeFromMinutes converts minutes since midnight back to a TimeOfDay.
// Callers keep values inside a single day; no wrap-around is performed.
func timeFromMinutes(m int) TimeOfDay {
	return TimeOfDay{Hour: m / 60, Minute: m % 60}
}

// DateStamp is a calendar date serialized as "YYYY-MM-DD". Like
// TimeOfDay it is a venue-local value with no timezone component.
type DateStamp string

// ParseDateStamp validates "YYYY-MM-DD" text and returns it as a DateStamp.
func ParseDateStamp(s string) (DateStamp, error) {
	if _, err := time.Parse(time.DateOnly, s); err != nil {
		return "", newValidationError("date", fmt.Sprintf("expected YYYY-MM-DD, got %q", s))
	}
	return DateStamp(s), nil
}

// String returns the "YYYY-MM-DD" form.
func (d DateStamp) String() string {
	return string(d)
}

// Time returns the date at midnight UTC, for calendar arithmetic such as
// past-date checks and weekday extraction.
func (d DateStamp) Time() time.Time {
	t, _ := time.Parse(time.DateOnly, string(d))
	return t
}
