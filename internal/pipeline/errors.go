package pipeline

import (
	"fmt"
	"strings"
)

// ValidationFailure reports a rule-based result that failed validation
// in a mode with no fallback available.
type ValidationFailure struct {
	Errors []string
}

func (e *ValidationFailure) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// ExternalServiceFailure wraps a collaborator call that failed.
type ExternalServiceFailure struct {
	Err error
}

func (e *ExternalServiceFailure) Error() string {
	return fmt.Sprintf("collaborator call failed: %v", e.Err)
}

func (e *ExternalServiceFailure) Unwrap() error {
	return e.Err
}

// ExhaustedRetries reports that every fallback attempt failed. Errors
// accumulates the validation and service errors of all attempts.
type ExhaustedRetries struct {
	Attempts int
	Errors   []string
}

func (e *ExhaustedRetries) Error() string {
	return fmt.Sprintf("extraction failed after %d attempts: %s",
		e.Attempts, strings.Join(e.Errors, "; "))
}
