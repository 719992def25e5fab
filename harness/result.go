package harness

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNoCommand is returned when a Spec has neither a command nor a script
var ErrNoCommand = errors.New("no command or script to run")

// Result captures the outcome of one harness run
type Result struct {
	Command    string
	ExitCode   int
	Output     []string // stdout chunks in arrival order
	Errors     []string // stderr chunks in arrival order
	Duration   time.Duration
	ScriptPath string // temporary script, kept on disk only in debug mode
}

// Success reports whether the process exited with code 0
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Stdout returns all stdout chunks concatenated
func (r *Result) Stdout() string {
	return strings.Join(r.Output, "")
}

// Stderr returns all stderr chunks concatenated
func (r *Result) Stderr() string {
	return strings.Join(r.Errors, "")
}

// ExitError is returned when the process exits with a non-zero code.
// It carries everything captured up to the exit.
type ExitError struct {
	*Result
	Message string
}

func newExitError(r *Result) *ExitError {
	return &ExitError{
		Result:  r,
		Message: fmt.Sprintf(`Failed executing "%s" with exit code: %d`, r.Command, r.ExitCode),
	}
}

func (e *ExitError) Error() string {
	return e.Message
}

// SpawnError is returned when the process could not be started at all
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to start %q: %v", e.Command, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}
