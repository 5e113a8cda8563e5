package csvparsers

import (
	"errors"
	"fmt"
)

var (
	// ErrEndOfStream is returned when a row is requested after the input
	// stream has been exhausted.
	ErrEndOfStream = errors.New("csvparsers: read past end of stream")
	// ErrIllegalAdvance is returned when advancing a cursor that is
	// already exhausted.
	ErrIllegalAdvance = errors.New("csvparsers: advance on exhausted cursor")
	// ErrNoCurrentRow is returned when dereferencing an exhausted cursor.
	ErrNoCurrentRow = errors.New("csvparsers: no current row")
)

// A FieldError reports that one field of a row could not be converted to
// its declared type.  Line counts physical input lines from 1, Column is
// the 1-based position of the field within the row.
type FieldError struct {
	Line   int
	Column int
	Field  string
	Err    error
}

// Error formats the field error message with the stored location and Err values.
func (e *FieldError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("csvparsers: line %d, field %q (column %d): %v", e.Line, e.Field, e.Column, e.Err)
}

// Unwrap returns the underlying Err so FieldError participates in errors.Is.
func (e *FieldError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
