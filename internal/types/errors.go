package types

import (
	"errors"
	"fmt"
)

// Kind classifies enumeration and scan failures. A Kind is itself an error so
// it can be used directly as an errors.Is target.
type Kind string

const (
	ErrInvalidArgument              Kind = "invalid argument"
	ErrCouldNotOpenDirectory        Kind = "could not open directory"
	ErrCouldNotReadDirectoryContent Kind = "could not read directory content"
	ErrCouldNotOpenFile             Kind = "could not open file"
	ErrUnterminatedInclude          Kind = "unterminated include"
)

func (k Kind) Error() string {
	return string(k)
}

// Error is a failure tied to a path and, for scan failures, a 1-based line.
type Error struct {
	Kind Kind
	Path string
	Line int
	Err  error
}

// NewError creates an Error of the given kind.
func NewError(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	switch {
	case e.Path != "" && e.Line > 0:
		msg = fmt.Sprintf("%s: %s:%d", msg, e.Path, e.Line)
	case e.Path != "":
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the Kind of e.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// KindOf returns the Kind carried by err, or "" when err has none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var k Kind
	if errors.As(err, &k) {
		return k
	}
	return ""
}
