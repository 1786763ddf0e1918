package songmatch

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig indicates that a matcher configuration or threshold update is invalid.
var ErrInvalidConfig = errors.New("invalid configuration")

// ConfigError represents a configuration error.
type ConfigError struct {
	// Field is the configuration field with the error
	Field string
	// Details provides additional context
	Details string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid configuration for '%s': %s", e.Field, e.Details)
	}
	return fmt.Sprintf("invalid configuration: %s", e.Details)
}

// Unwrap returns the underlying sentinel error.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}
