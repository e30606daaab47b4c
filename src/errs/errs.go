// Package errs defines the error kinds shared by the grid packages. Callers test
// them with errors.Is and errors.As.
package errs

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks a usage error: bad weight range, begin after end, unknown driver.
var ErrInvalidInput = errors.New("invalid input")

// ErrInternalLogic marks a broken invariant. The render is aborted.
var ErrInternalLogic = errors.New("internal logic error")

// ErrUnavailable marks a missing optional capability (driver, font, format).
var ErrUnavailable = errors.New("capability unavailable")

// Invalid wraps a formatted message as invalid input.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Internal wraps a formatted message as an internal logic error.
func Internal(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInternalLogic, fmt.Sprintf(format, args...))
}

// ExternalToolError reports a failed run of an external program.
type ExternalToolError struct {
	Tool   string
	Output string // combined stdout/stderr, may be empty
	Dir    string // preserved work directory, empty when removed
	Err    error
}

func (e *ExternalToolError) Error() string {
	if e.Dir != "" {
		return fmt.Sprintf("%s failed (work dir kept at %s): %v", e.Tool, e.Dir, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
}

func (e *ExternalToolError) Unwrap() error {
	return e.Err
}

// NewExternalToolError creates a new ExternalToolError.
func NewExternalToolError(tool, output string, err error) *ExternalToolError {
	return &ExternalToolError{
		Tool:   tool,
		Output: output,
		Err:    err,
	}
}

// ExitCode maps an error to the process exit status used by the command line.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrInvalidInput):
		return 2
	default:
		return 1
	}
}
