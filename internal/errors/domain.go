package errors

import (
	"errors"
	"fmt"
)

// DomainError is the discriminated failure outcome surfaced to callers of the
// operation engine. It carries a stable code and a human-readable reason.
type DomainError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the wrapped cause, if any
func (e *DomainError) Unwrap() error {
	return e.Err
}

// DomainOption is a functional option for configuring domain errors
type DomainOption func(*DomainError)

// WithMessage overrides the default message for the error code
func WithMessage(message string) DomainOption {
	return func(e *DomainError) {
		e.Message = message
	}
}

// WithCause attaches an underlying cause to the domain error
func WithCause(err error) DomainOption {
	return func(e *DomainError) {
		e.Err = err
	}
}

// New creates a domain error for the given code with its default message
func New(code ErrorCode, opts ...DomainOption) *DomainError {
	e := &DomainError{
		Code:    code,
		Message: GetErrorMessage(code),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CodeOf extracts the error code from err, unwrapping as needed.
// Returns an empty code when err carries no DomainError.
func CodeOf(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

// IsCode reports whether err carries the given error code
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
