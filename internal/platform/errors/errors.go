// Package errors provides error types and utilities for Noesis.
// It extends the standard errors package with additional context and wrapping capabilities.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the error taxonomy. Only ErrConfiguration propagates
// as a hard failure to callers; everything downstream of a started run is
// degraded into warnings instead.
var (
	// ErrConfiguration indicates an invalid or duplicate configuration entry.
	// Fatal at startup.
	ErrConfiguration = errors.New("configuration error")

	// ErrUnreachable indicates a tool server failed its health probe
	ErrUnreachable = errors.New("tool server unreachable")

	// ErrTimeout indicates an operation exceeded its time limit
	ErrTimeout = errors.New("operation timed out")

	// ErrRunFailure indicates the pipeline process exited nonzero or timed out
	ErrRunFailure = errors.New("pipeline run failed")

	// ErrInvalidResponse indicates output could not be parsed or was malformed
	ErrInvalidResponse = errors.New("invalid response")

	// ErrNotFound indicates a requested resource was not found
	ErrNotFound = errors.New("resource not found")
)

// wrappedError wraps an error with additional context
type wrappedError struct {
	msg   string
	cause error
}

// Error implements the error interface
func (e *wrappedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

// Unwrap returns the underlying error
func (e *wrappedError) Unwrap() error {
	return e.cause
}

// Wrap wraps an error with additional context message.
// If err is nil, Wrap returns nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg:   msg,
		cause: err,
	}
}

// Wrapf wraps an error with a formatted context message.
// If err is nil, Wrapf returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg:   fmt.Sprintf(format, args...),
		cause: err,
	}
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around errors.Is from the standard library.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type.
// This is a convenience wrapper around errors.As from the standard library.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// New creates a new error with the given message.
func New(msg string) error {
	return errors.New(msg)
}

// Errorf formats according to a format specifier and returns the string as a value that satisfies error.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Join returns an error that wraps the given errors.
// Any nil error values are discarded.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// IsConfiguration reports whether the error is a configuration error
func IsConfiguration(err error) bool {
	return Is(err, ErrConfiguration)
}

// IsUnreachable reports whether the error is an unreachable error
func IsUnreachable(err error) bool {
	return Is(err, ErrUnreachable)
}

// IsTimeout reports whether the error is a timeout error
func IsTimeout(err error) bool {
	return Is(err, ErrTimeout)
}

// IsRunFailure reports whether the error is a run failure
func IsRunFailure(err error) bool {
	return Is(err, ErrRunFailure)
}

// IsInvalidResponse reports whether the error is an invalid response error
func IsInvalidResponse(err error) bool {
	return Is(err, ErrInvalidResponse)
}
