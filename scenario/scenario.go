// Package scenario describes harness runs together with the checks their
// results must pass, and runs them against a throwaway working directory.
package scenario

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/timvw/clidrive/harness"
)

// Scenario represents a complete interactive test scenario
type Scenario struct {
	Name        string
	Description string
	Setup       func(*Fixture) error
	Spec        harness.Spec
	Verify      []Assertion
}

// Assertion is a function that validates a run result
type Assertion func(*harness.Result, *Fixture) error

// Common assertion builders

// AssertExitCode verifies the exit code matches expected value
func AssertExitCode(expected int) Assertion {
	return func(r *harness.Result, f *Fixture) error {
		if r.ExitCode != expected {
			return fmt.Errorf("exit code: expected %d, got %d", expected, r.ExitCode)
		}
		return nil
	}
}

// AssertSuccess verifies the process exited with code 0
func AssertSuccess() Assertion {
	return AssertExitCode(0)
}

// AssertFailure verifies the process exited with a non-zero code
func AssertFailure() Assertion {
	return func(r *harness.Result, f *Fixture) error {
		if r.Success() {
			return fmt.Errorf("exit code: expected non-zero, got 0")
		}
		return nil
	}
}

// AssertStdoutContains verifies stdout contains the expected string
// Supports variable expansion: $WORKDIR
func AssertStdoutContains(expected string) Assertion {
	return func(r *harness.Result, f *Fixture) error {
		expanded := f.Expand(expected)
		if !strings.Contains(r.Stdout(), expanded) {
			return fmt.Errorf("stdout does not contain %q\nGot: %s", expanded, r.Stdout())
		}
		return nil
	}
}

// AssertStdoutNotContains verifies stdout does not contain the string
func AssertStdoutNotContains(unexpected string) Assertion {
	return func(r *harness.Result, f *Fixture) error {
		expanded := f.Expand(unexpected)
		if strings.Contains(r.Stdout(), expanded) {
			return fmt.Errorf("stdout unexpectedly contains %q\nGot: %s", expanded, r.Stdout())
		}
		return nil
	}
}

// AssertStdoutMatches verifies stdout matches the regular expression
func AssertStdoutMatches(expr string) Assertion {
	return func(r *harness.Result, f *Fixture) error {
		re, err := regexp.Compile(expr)
		if err != nil {
			return fmt.Errorf("invalid pattern %q: %w", expr, err)
		}
		if !re.MatchString(r.Stdout()) {
			return fmt.Errorf("stdout does not match %q\nGot: %s", expr, r.Stdout())
		}
		return nil
	}
}

// AssertStderrContains verifies stderr contains the expected string
func AssertStderrContains(expected string) Assertion {
	return func(r *harness.Result, f *Fixture) error {
		expanded := f.Expand(expected)
		if !strings.Contains(r.Stderr(), expanded) {
			return fmt.Errorf("stderr does not contain %q\nGot: %s", expanded, r.Stderr())
		}
		return nil
	}
}

// AssertStderrEmpty verifies nothing was written to stderr
func AssertStderrEmpty() Assertion {
	return func(r *harness.Result, f *Fixture) error {
		if len(r.Errors) > 0 {
			return fmt.Errorf("stderr is not empty\nGot: %s", r.Stderr())
		}
		return nil
	}
}

// AssertFileExists verifies a file exists, relative to the working directory
func AssertFileExists(path string) Assertion {
	return func(r *harness.Result, f *Fixture) error {
		full := f.Path(f.Expand(path))
		if _, err := os.Stat(full); err != nil {
			return fmt.Errorf("file %s does not exist: %w", full, err)
		}
		return nil
	}
}
