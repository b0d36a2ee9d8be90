package model

import (
	"errors"
	"fmt"
)

// ErrComputationSkipped is returned by the sizing engine when there is no load yet.
// It is not a failure; callers should simply show no result.
var ErrComputationSkipped = errors.New("no load to size yet")

// ErrEmptySelection is returned when a removal is requested with nothing selected.
var ErrEmptySelection = errors.New("no appliances selected")

// ValidationError reports malformed or out-of-range input for a single field.
// State is never modified when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ConfigurationError reports parameters that would make the sizing math undefined
// (zero voltage, zero depth of discharge) or catalogs that cannot be searched.
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
