package scheduling

import "fmt"

// Interval is a half-open span of wall-clock time [Start, End) on a
// single date. End must be strictly after Start.
type Interval struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// NewInterval builds an Interval, rejecting degenerate spans.
func NewInterval(start, end TimeOfDay) (Interval, error) {
	iv := Interval{Start: start, End: end}
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

// ParseInterval builds an Interval from "HH:MM" start and end text.
func ParseInterval(startTime, endTime string) (Interval, error) {
	start, err := ParseTimeOfDay(startTime)
	if err != nil {
		return Interval{}, &ValidationError{Field: "startTime", Reason: err.(*ValidationError).Reason}
	}
	end, err := ParseTimeOfDay(endTime)
	if err != nil {
		return Interval{}, &ValidationError{Field: "endTime", Reason: err.(*ValidationError).Reason}
	}
	return NewInterval(start, end)
}

// Validate rejects intervals whose end is not strictly after their start.
func (i Interval) Validate() error {
	if i.End.Minutes() <= i.Start.Minutes() {
		return newValidationError("interval",
			fmt.Sprintf("end %s must be after start %s", i.End, i.Start))
	}
	return nil
}

// Overlaps is the single overlap predicate shared by the conflict checker
// and the slot finder. Intervals are half-open, so [a,b) and [c,d)
// overlap iff a < d && c < b: back-to-back spans do not conflict.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Minutes() < other.End.Minutes() && other.Start.Minutes() < i.End.Minutes()
}

// DurationMinutes returns the length of the interval in minutes.
func (i Interval) DurationMinutes() int {
	return i.End.Minutes() - i.Start.Minutes()
}

// String returns "HH:MM-HH:MM".
func (i Interval) String() string {
	return i.Start.String() + "-" + i.End.String()
}
