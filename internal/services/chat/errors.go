// File: internal/services/chat/errors.go
package chat

import "fmt"

type ErrorType string

const (
	ErrTypeConfig       ErrorType = "CONFIG"
	ErrTypeValidation   ErrorType = "VALIDATION"
	ErrTypePersistence  ErrorType = "PERSISTENCE"
	ErrTypeCompletion   ErrorType = "COMPLETION"
	ErrTypeImport       ErrorType = "IMPORT"
	ErrTypePrecondition ErrorType = "PRECONDITION"
	ErrTypeUnauthorized ErrorType = "UNAUTHORIZED"
)

type ChatError struct {
	Type      ErrorType
	Operation string
	Message   string
	ChatID    uint
	UserID    uint
	Cause     error
}

func (e *ChatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("chat %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("chat %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *ChatError) Unwrap() error { return e.Cause }

func NewValidationError(operation, msg string) *ChatError {
	return &ChatError{Type: ErrTypeValidation, Operation: operation, Message: msg}
}

func NewPersistenceError(operation, msg string, cause error) *ChatError {
	return &ChatError{Type: ErrTypePersistence, Operation: operation, Message: msg, Cause: cause}
}

func NewCompletionError(operation, msg string, cause error) *ChatError {
	return &ChatError{Type: ErrTypeCompletion, Operation: operation, Message: msg, Cause: cause}
}

func NewImportError(operation, msg string, cause error) *ChatError {
	return &ChatError{Type: ErrTypeImport, Operation: operation, Message: msg, Cause: cause}
}

func NewUnauthorizedError(userID, chatID uint) *ChatError {
	return &ChatError{
		Type:      ErrTypeUnauthorized,
		Operation: "authorization",
		Message:   "chat not found or unauthorized",
		UserID:    userID,
		ChatID:    chatID,
	}
}

// ErrNoAPIKey refuses a send before any network call when the profile has no
// completion credential. Callers treat this as a settings prompt, not a
// server failure.
var ErrNoAPIKey = &ChatError{
	Type:      ErrTypePrecondition,
	Operation: "send",
	Message:   "no completion API key configured",
}

// ErrNoChatSelected refuses a send with no target conversation.
var ErrNoChatSelected = &ChatError{
	Type:      ErrTypePrecondition,
	Operation: "send",
	Message:   "no chat selected",
}
