package schema

import (
	"errors"
	"fmt"

	"github.com/aretw0/intake/pkg/domain"
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Path   string // Dotted field path, e.g. "drivers.0.name"
	Reason string // Human-readable reason for failure
	Value  any    // The value that failed validation
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("field %q: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("field %q: %s (got %T)", e.Path, e.Reason, e.Value)
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// ErrorMap converts the failures to path -> message. The first failure per path wins.
func (e *AggregateError) ErrorMap() domain.ErrorMap {
	out := make(domain.ErrorMap, len(e.Errors))
	for _, err := range e.Errors {
		var ve *ValidationError
		if !errors.As(err, &ve) {
			continue
		}
		if _, exists := out[ve.Path]; !exists {
			out[ve.Path] = ve.Reason
		}
	}
	return out
}

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}

// ToErrorMap converts any validation error to an error map.
// Errors that are not validation failures yield an empty map.
func ToErrorMap(err error) domain.ErrorMap {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.ErrorMap()
	}
	return domain.ErrorMap{}
}
