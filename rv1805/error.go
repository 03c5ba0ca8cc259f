package rv1805

import (
	"errors"
	"fmt"
)

// Package errors.
var (
	// ErrNACK is returned by the bridge transport when the device did not
	// acknowledge its address or data.
	ErrNACK = errors.New("rv1805: no acknowledge from device")

	// ErrRange is matched by every *RangeError.
	ErrRange = errors.New("rv1805: value out of range")

	errShortRead  = errors.New("rv1805: short read")
	errShortWrite = errors.New("rv1805: short write")
	errNoDevice   = errors.New("rv1805: no device found")
)

// RangeError is returned when a time or date field is outside the range the
// device registers can hold.
type RangeError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("rv1805: %s %d out of range [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}

// Is reports whether target is ErrRange.
func (e *RangeError) Is(target error) bool {
	return target == ErrRange
}

// checkRange returns a *RangeError if v is outside [min, max].
func checkRange(field string, v, min, max int) error {
	if v < min || v > max {
		return &RangeError{Field: field, Value: v, Min: min, Max: max}
	}
	return nil
}
