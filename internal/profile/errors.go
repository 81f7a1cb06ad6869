package profile

import (
	"errors"
	"fmt"
)

// RecordError reports a timeslice record that cannot be turned into a
// plot point: it carries fewer than two tokens, or a token overflows int.
// It is raised when the series is built, before any chart rendering.
type RecordError struct {
	// Index is the position of the record in input order.
	Index int

	// Tokens is the number of digit tokens the record carried.
	Tokens int

	// Err is the underlying conversion error, if any.
	Err error
}

// Error implements the error interface.
func (e *RecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("timeslice record %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("timeslice record %d has %d tokens, need 2", e.Index, e.Tokens)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// IsRecordError returns true if the error is a malformed-record error.
// Uses errors.As to handle wrapped errors.
func IsRecordError(err error) bool {
	var re *RecordError
	return errors.As(err, &re)
}
