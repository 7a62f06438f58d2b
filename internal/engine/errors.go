package engine

import (
	"errors"
	"fmt"
)

// Error represents a precondition violation detected by an engine.
//
// Engines fail fast: no partial result is returned alongside an Error.
// The structured fields carry whatever bounds were in play when the
// violation was detected.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Algorithm names the engine that failed.
	Algorithm string

	// Low and High are the partition bounds (InvalidRange only).
	Low, High int

	// K is the requested rank (OutOfRange only).
	K int

	// Size is the length of the working sequence.
	Size int
}

// ErrorCode categorizes engine errors.
type ErrorCode string

const (
	// ErrCodeInvalidRange indicates partition or recursion bounds outside
	// the working sequence, or low > high on entry.
	ErrCodeInvalidRange ErrorCode = "INVALID_RANGE"

	// ErrCodeOutOfRange indicates a rank k that is negative or >= size.
	ErrCodeOutOfRange ErrorCode = "OUT_OF_RANGE"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Algorithm != "" {
		return fmt.Sprintf("%s: %s: %s", e.Algorithm, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInvalidRange returns true if the error is an InvalidRange error.
// Uses errors.As to handle wrapped errors.
func IsInvalidRange(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == ErrCodeInvalidRange
	}
	return false
}

// IsOutOfRange returns true if the error is an OutOfRange error.
// Uses errors.As to handle wrapped errors.
func IsOutOfRange(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == ErrCodeOutOfRange
	}
	return false
}

// NewInvalidRangeError creates an Error for bad partition bounds.
func NewInvalidRangeError(algorithm string, low, high, size int) *Error {
	return &Error{
		Code:      ErrCodeInvalidRange,
		Message:   fmt.Sprintf("invalid range [%d, %d] for sequence of size %d", low, high, size),
		Algorithm: algorithm,
		Low:       low,
		High:      high,
		Size:      size,
	}
}

// NewOutOfRangeError creates an Error for a rank outside [0, size).
func NewOutOfRangeError(algorithm string, k, size int) *Error {
	return &Error{
		Code:      ErrCodeOutOfRange,
		Message:   fmt.Sprintf("k=%d is out of bounds for sequence of size %d", k, size),
		Algorithm: algorithm,
		K:         k,
		Size:      size,
	}
}
