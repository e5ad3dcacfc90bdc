package core

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the command boundary can report it and pick an
// exit code without inspecting messages.
type Kind int

const (
	Unexpected Kind = iota
	InvalidArgument
	NotFound
	InvalidInput
	DecodeError
	IOError
)

var kindNames = map[Kind]string{
	Unexpected:      "Unexpected",
	InvalidArgument: "InvalidArgument",
	NotFound:        "NotFound",
	InvalidInput:    "InvalidInput",
	DecodeError:     "DecodeError",
	IOError:         "IOError",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is a classified pipeline failure.
type Error struct {
	Kind    Kind
	Op      string // operation that failed, e.g. "read input"
	Path    string // file involved, if any
	Message string
	Err     error // underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	} else if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	switch {
	case e.Op != "" && e.Path != "":
		return fmt.Sprintf("%s %s: %s", e.Op, e.Path, msg)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, msg)
	default:
		return msg
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a classified error without an underlying cause.
func NewError(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// Wrap classifies err. The path may be empty.
func Wrap(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
// Errors that were never classified report Unexpected.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unexpected
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
