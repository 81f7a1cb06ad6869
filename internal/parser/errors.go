package parser

import (
	"errors"
	"fmt"
)

// LineErrorCode categorizes per-line parse errors.
type LineErrorCode string

const (
	// ErrCodeNoDigits indicates a recognized prefix with no digit tokens.
	ErrCodeNoDigits LineErrorCode = "NO_DIGITS"

	// ErrCodeBadNumber indicates a digit token that does not convert.
	ErrCodeBadNumber LineErrorCode = "BAD_NUMBER"
)

// LineError reports a single malformed input line, naming the offending
// line by number and content.
type LineError struct {
	Code LineErrorCode
	Line int    // 1-based line number
	Text string // the offending line, verbatim
	Err  error  // underlying conversion error, if any
}

// Error implements the error interface.
func (e *LineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: line %d %q: %v", e.Code, e.Line, e.Text, e.Err)
	}
	return fmt.Sprintf("%s: line %d %q", e.Code, e.Line, e.Text)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// FileError reports a failure to open or read the input log.
type FileError struct {
	Path string
	Op   string // "open" or "read"
	Err  error
}

// Error implements the error interface.
func (e *FileError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("FILE_ACCESS: %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("FILE_ACCESS: %s: %v", e.Op, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// IsLineError returns true if the error is a malformed-line error.
// Uses errors.As to handle wrapped errors.
func IsLineError(err error) bool {
	var le *LineError
	return errors.As(err, &le)
}

// IsFileError returns true if the error is a file access error.
// Uses errors.As to handle wrapped errors.
func IsFileError(err error) bool {
	var fe *FileError
	return errors.As(err, &fe)
}
