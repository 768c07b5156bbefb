package scheduling

import (
	"fmt"
	"strings"
)

// ParseWindow parses a single "HH:MM-HH:MM" working-hours window.
func ParseWindow(s string) (Interval, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return Interval{}, newConfigurationError(fmt.Sprintf("expected HH:MM-HH:MM window, got %q", s))
	}
	iv, err := ParseInterval(parts[0], parts[1])
	if err != nil {
		return Interval{}, newConfigurationError(fmt.Sprintf("bad working-hours window %q: %v", s, err))
	}
	return iv, nil
}

// ParseWindows parses configured working-hours windows, e.g.
// ["08:00-20:00"] or ["09:00-12:00", "13:00-17:00"].
func ParseWindows(specs []string) ([]Interval, error) {
	if len(specs) == 0 {
		return nil, newConfigurationError("no working-hours windows configured")
	}
	windows := make([]Interval, 0, len(specs))
	for _, s := range specs {
		iv, err := ParseWindow(s)
		if err != nil {
			return nil, err
		}
		windows = append(windows, iv)
	}
	return windows, nil
}
