package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrNotFound           ErrorType = "NOT_FOUND"
	ErrInvalidInput       ErrorType = "INVALID_INPUT"
	ErrInternal           ErrorType = "INTERNAL"
	ErrUnauthorized       ErrorType = "UNAUTHORIZED"
	ErrTokenNotConfigured ErrorType = "TOKEN_NOT_CONFIGURED"
)

// AppError represents an application error
type AppError struct {
	Type      ErrorType
	Message   string
	Cause     error
	Timestamp time.Time
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:      errType,
		Message:   message,
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == ErrNotFound
	}
	return false
}

// IsInvalidInput checks if the error is an invalid input error
func IsInvalidInput(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == ErrInvalidInput
	}
	return false
}

// IsUnauthorized checks if the error is an unauthorized error
func IsUnauthorized(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == ErrUnauthorized
	}
	return false
}

// IsTokenNotConfigured checks if the error is the blocking "no delegated
// GitHub token" condition. This is distinct from a per-repository fetch
// failure, which never aborts a report.
func IsTokenNotConfigured(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == ErrTokenNotConfigured
	}
	return false
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, err error) *AppError {
	return New(ErrNotFound, message, err)
}

// NewValidationError creates a new validation error
func NewValidationError(message string, err error) *AppError {
	return New(ErrInvalidInput, message, err)
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string, err error) *AppError {
	return New(ErrUnauthorized, message, err)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return New(ErrInternal, message, err)
}

// NewTokenNotConfiguredError creates the blocking report failure raised when
// the authenticated user has no usable GitHub access token
func NewTokenNotConfiguredError() *AppError {
	return New(ErrTokenNotConfigured, "GitHub access token not configured for user", nil)
}
