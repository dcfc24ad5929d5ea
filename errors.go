package veil

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrUnknownKind indicates an encode request with an unrecognized kind.
	ErrUnknownKind = errors.New("unknown literal kind")

	// ErrInvalidText indicates a text payload that is not valid UTF-8.
	ErrInvalidText = errors.New("invalid UTF-8 in text literal")

	// ErrInteriorNUL indicates a C string payload containing a NUL byte.
	ErrInteriorNUL = errors.New("interior NUL in C string literal")

	// ErrShred indicates a struct field could not be shredded.
	ErrShred = errors.New("shred failed")
)

// EncodeError represents an encode-time validation failure.
// It wraps a sentinel error with the kind and byte offset that triggered it.
type EncodeError struct {
	Err    error // Underlying sentinel error (ErrInvalidText, ErrInteriorNUL, ...)
	Kind   Kind  // Kind being encoded
	Offset int   // Byte offset of the offending byte, -1 if not positional
}

func (e *EncodeError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("encode %s: %s at byte %d", e.Kind, e.Err.Error(), e.Offset)
	}
	return fmt.Sprintf("encode %s: %s", e.Kind, e.Err.Error())
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// ShredError represents a failure while shredding a struct field.
type ShredError struct {
	Err   error  // Underlying sentinel error (ErrShred)
	Field string // Field name that failed
	Cause error  // Original error from the override or plan build
}

func (e *ShredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("shred field %s: %v", e.Field, e.Cause)
	}
	return fmt.Sprintf("shred field %s", e.Field)
}

func (e *ShredError) Unwrap() error {
	return e.Err
}

// newEncodeError creates an EncodeError for encode validation failures.
func newEncodeError(sentinel error, kind Kind, offset int) error {
	return &EncodeError{
		Err:    sentinel,
		Kind:   kind,
		Offset: offset,
	}
}

// newShredError creates a ShredError for field shredding failures.
func newShredError(field string, cause error) error {
	return &ShredError{
		Err:   ErrShred,
		Field: field,
		Cause: cause,
	}
}
