package core

import (
	"fmt"
)

// RetrievalError represents a structured error with category and details
type RetrievalError struct {
	Category ErrorCategory
	Code     string                 // Machine-readable code: fetch_failed, attempts_exhausted, etc.
	Message  string                 // Human-readable message
	Details  map[string]interface{} // Additional context (attempt, phone number, URL)
	Cause    error                  // Underlying error
}

// Error implements the error interface
func (e *RetrievalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *RetrievalError) Unwrap() error {
	return e.Cause
}

// WithCause returns a copy of the error with the given cause
func (e *RetrievalError) WithCause(cause error) *RetrievalError {
	return &RetrievalError{
		Category: e.Category,
		Code:     e.Code,
		Message:  e.Message,
		Details:  e.Details,
		Cause:    cause,
	}
}

// WithMessage returns a copy of the error with a custom message
func (e *RetrievalError) WithMessage(msg string) *RetrievalError {
	return &RetrievalError{
		Category: e.Category,
		Code:     e.Code,
		Message:  msg,
		Details:  e.Details,
		Cause:    e.Cause,
	}
}

// WithDetails returns a copy of the error with additional details
func (e *RetrievalError) WithDetails(details map[string]interface{}) *RetrievalError {
	merged := make(map[string]interface{})
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	return &RetrievalError{
		Category: e.Category,
		Code:     e.Code,
		Message:  e.Message,
		Details:  merged,
		Cause:    e.Cause,
	}
}

// Predefined errors
var (
	// Fetch errors
	ErrFetchFailed = &RetrievalError{
		Category: ErrCategoryFetch,
		Code:     "fetch_failed",
		Message:  "failed to fetch mailbox messages",
	}
	ErrBadStatus = &RetrievalError{
		Category: ErrCategoryFetch,
		Code:     "bad_status",
		Message:  "mailbox API returned non-success status",
	}
	ErrBadResponse = &RetrievalError{
		Category: ErrCategoryFetch,
		Code:     "bad_response",
		Message:  "could not decode mailbox API response",
	}

	// Exhaustion errors
	ErrAttemptsExhausted = &RetrievalError{
		Category: ErrCategoryExhausted,
		Code:     "attempts_exhausted",
		Message:  "no verification code found after all attempts",
	}

	// Config errors
	ErrInvalidConfig = &RetrievalError{
		Category: ErrCategoryConfig,
		Code:     "invalid_config",
		Message:  "invalid configuration",
	}
	ErrMissingRequired = &RetrievalError{
		Category: ErrCategoryConfig,
		Code:     "missing_required",
		Message:  "missing required field",
	}
)

// NewRetrievalError creates a new RetrievalError with the given parameters
func NewRetrievalError(category ErrorCategory, code, message string) *RetrievalError {
	return &RetrievalError{
		Category: category,
		Code:     code,
		Message:  message,
	}
}
