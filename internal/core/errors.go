package core

import (
	"errors"
	"fmt"
)

// ErrEmptyFile is wrapped by ParseError when the input has no header line.
var ErrEmptyFile = errors.New("empty file")

// NotFoundError is returned when the input path does not exist.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// ParseError is returned when the input is not a well-formed table or a
// required column is absent. Line is 0 when the problem is not tied to a line.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	msg := "invalid csv"
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(": line %d", e.Line)
	}
	return msg + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// IOError is returned when the output cannot be written, or the input exists
// but cannot be opened.
type IOError struct {
	Op   string // "open", "create", "write", "close"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("io error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
