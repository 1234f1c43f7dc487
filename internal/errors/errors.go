package errors

import (
	"fmt"
	"strings"
)

// ContaskError is the structured error type for contask.
// It provides context for error handling, logging, and user presentation.
type ContaskError struct {
	// Code is the unique error code (e.g., "ERR_101_CONFIG_NOT_FOUND").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, etc.).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *ContaskError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *ContaskError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with ContaskError.
func (e *ContaskError) Is(target error) bool {
	if t, ok := target.(*ContaskError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *ContaskError) WithDetail(key, value string) *ContaskError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
// Returns the error for method chaining.
func (e *ContaskError) WithSuggestion(suggestion string) *ContaskError {
	e.Suggestion = suggestion
	return e
}

// UserMessage formats the error for terminal display: message,
// details, and suggestion if present.
func (e *ContaskError) UserMessage() string {
	var b strings.Builder
	b.WriteString(e.Message)
	for k, v := range e.Details {
		fmt.Fprintf(&b, "\n  %s: %s", k, v)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n\nSuggestion: %s", e.Suggestion)
	}
	return b.String()
}

// New creates a new ContaskError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *ContaskError {
	return &ContaskError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates a ContaskError from an existing error.
// The error's message becomes the ContaskError message.
func Wrap(code string, err error) *ContaskError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *ContaskError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// ValidationError creates an input validation error.
func ValidationError(message string) *ContaskError {
	return New(ErrCodeInvalidInput, message, nil)
}
