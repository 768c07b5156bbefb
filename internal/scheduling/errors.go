package scheduling

import "fmt"

// ValidationError reports malformed input: bad date/time text, a
// non-chronological interval or a non-positive duration. It is raised
// before any computation, never coerced into a silent result.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation: %s", e.Reason)
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// ConfigurationError reports unusable static configuration, such as an
// empty venue catalog or a zero-width working-hours window.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s", e.Reason)
}

func newValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func newConfigurationError(reason string) error {
	return &ConfigurationError{Reason: reason}
}
