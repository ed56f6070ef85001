// File: internal/services/ai/errors.go
package ai

import "fmt"

type ErrorType string

const (
	ErrTypeConfig     ErrorType = "CONFIG"
	ErrTypeCompletion ErrorType = "COMPLETION"
	ErrTypeValidation ErrorType = "VALIDATION"
)

// CompletionError is surfaced when the completion service returns a
// non-success response or cannot be reached. Message carries the upstream
// error.message when the provider supplied one.
type CompletionError struct {
	Type       ErrorType
	StatusCode int
	Message    string
	Cause      error
}

func (e *CompletionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("completion %s error: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("completion %s error: %s", e.Type, e.Message)
}

func (e *CompletionError) Unwrap() error { return e.Cause }

func NewConfigError(msg string) *CompletionError {
	return &CompletionError{Type: ErrTypeConfig, Message: msg}
}

func NewValidationError(msg string) *CompletionError {
	return &CompletionError{Type: ErrTypeValidation, Message: msg}
}

func NewCompletionError(statusCode int, msg string, cause error) *CompletionError {
	return &CompletionError{Type: ErrTypeCompletion, StatusCode: statusCode, Message: msg, Cause: cause}
}
