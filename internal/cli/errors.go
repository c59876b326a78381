package cli

import (
	"errors"
	"fmt"
)

// Exit codes returned by Execute.
const (
	ExitSuccess     = 0
	ExitGeneral     = 1 // output could not be written, snapshot could not be saved
	ExitUsage       = 2 // bad arguments, flags or configuration
	ExitUnavailable = 3 // the process snapshot could not be acquired
)

// ExitError carries the exit code a failure should end the program with.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ExitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Cause
}

func usageErrorf(format string, args ...any) *ExitError {
	return &ExitError{Code: ExitUsage, Message: fmt.Sprintf(format, args...)}
}

func wrapError(code int, message string, cause error) *ExitError {
	return &ExitError{Code: code, Message: message, Cause: cause}
}

// ExitCode extracts the exit code from err. Errors without one map to
// ExitGeneral.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var coded *ExitError
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ExitGeneral
}
