package store

import "fmt"

// Code classifies the outcome of the last store or codec operation.
type Code int

const (
	OK           Code = 0
	NotOpen      Code = 2
	ShortIO      Code = 3
	OutOfMemory  Code = 4
	SizeMismatch Code = 5
	InvalidInput Code = 6
	NotFound     Code = 7
)

func (c Code) String() string {
	switch c {
	case OK:
		return "ok"
	case NotOpen:
		return "not open"
	case ShortIO:
		return "short io"
	case OutOfMemory:
		return "out of memory"
	case SizeMismatch:
		return "size mismatch"
	case InvalidInput:
		return "invalid input"
	case NotFound:
		return "not found"
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// Error is the (code, message) pair kept on the Store. Cause holds the
// underlying I/O error when there is one.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Cause.Error())
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

var errOK = &Error{Code: OK, Message: "OK"}
