package engine

import (
	"errors"
	"fmt"
)

// ExitCode is the process exit status of a generation run.
type ExitCode int

const (
	Success ExitCode = iota
	ModuleNotFound
	ModuleLoadError
	DocCommentsNotFound
	DocCommentsLoadError
	Unhandled
	WarningsAsErrors
)

func (c ExitCode) String() string {
	switch c {
	case Success:
		return "Success"
	case ModuleNotFound:
		return "ModuleNotFound"
	case ModuleLoadError:
		return "ModuleLoadError"
	case DocCommentsNotFound:
		return "DocCommentsNotFound"
	case DocCommentsLoadError:
		return "DocCommentsLoadError"
	case Unhandled:
		return "Unhandled"
	case WarningsAsErrors:
		return "WarningsAsErrors"
	default:
		return fmt.Sprintf("ExitCode(%d)", int(c))
	}
}

// Error is a failed run with its exit code.
type Error struct {
	Code    ExitCode
	Message string
	Err     error
}

func newError(code ExitCode, err error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// ExitCodeOf maps err to an exit code: Success for nil, the code of an
// *Error in the chain, and Unhandled otherwise.
func ExitCodeOf(err error) ExitCode {
	if err == nil {
		return Success
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Unhandled
}
