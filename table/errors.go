package table

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrParse        = errors.New("table: malformed input")
	ErrNotFound     = errors.New("table: not found")
	ErrMissingValue = errors.New("table: missing value")
	ErrDateFormat   = errors.New("table: bad date label")
)

// ParseError reports a table that cannot be loaded or a cell that cannot be
// read as a number.
type ParseError struct {
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse table: %s: %v", e.Msg, e.Err)
	}
	return "parse table: " + e.Msg
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// NotFoundError reports a lookup key with no matching row.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no row matches %q", e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// MissingValueError reports an absent cell inside the numeric range of a row.
type MissingValueError struct {
	Row    int
	Column string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("row %d: missing value in column %q", e.Row, e.Column)
}

func (e *MissingValueError) Is(target error) bool { return target == ErrMissingValue }

// DateFormatError reports a column header that is not a M/D/YY date, or a
// date that does not follow the previous one.
type DateFormatError struct {
	Label string
	Err   error
}

func (e *DateFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("date label %q: %v", e.Label, e.Err)
	}
	return fmt.Sprintf("date label %q", e.Label)
}

func (e *DateFormatError) Unwrap() error { return e.Err }

func (e *DateFormatError) Is(target error) bool { return target == ErrDateFormat }
