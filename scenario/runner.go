package scenario

import (
	"errors"
	"fmt"

	"github.com/timvw/clidrive/harness"
)

// Logger receives progress lines. *testing.T satisfies it.
type Logger interface {
	Logf(format string, args ...any)
}

// Runner executes scenarios through a harness
type Runner struct {
	log     Logger
	harness *harness.Harness
	root    string

	// Keep leaves fixture directories on disk after each scenario
	Keep bool
}

// NewRunner creates a runner whose fixtures live under root
func NewRunner(log Logger, h *harness.Harness, root string) *Runner {
	return &Runner{
		log:     log,
		harness: h,
		root:    root,
	}
}

// Run executes a scenario and reports results. A non-zero exit code is not an
// error by itself; it is up to the scenario's assertions to reject it.
func (r *Runner) Run(s Scenario) (*harness.Result, error) {
	r.log.Logf("Running scenario: %s", s.Name)
	if s.Description != "" {
		r.log.Logf("  Description: %s", s.Description)
	}

	fixture, err := NewFixture(r.root)
	if err != nil {
		return nil, err
	}
	defer func() {
		if r.Keep {
			r.log.Logf("  Keeping fixture: %s", fixture.Dir)
			return
		}
		if err := fixture.Cleanup(); err != nil {
			r.log.Logf("  Failed to remove fixture %s: %v", fixture.Dir, err)
		}
	}()

	// Execute setup
	if s.Setup != nil {
		r.log.Logf("  Running setup...")
		if err := s.Setup(fixture); err != nil {
			return nil, fmt.Errorf("setup failed: %w", err)
		}
	}

	spec := s.Spec
	spec.Command = fixture.Expand(spec.Command)
	spec.Script = fixture.Expand(spec.Script)
	spec.Dir = fixture.Path(fixture.Expand(spec.Dir))

	r.log.Logf("  Inputs: %d", len(spec.Inputs))
	result, err := r.harness.Run(spec)
	var exitErr *harness.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return nil, fmt.Errorf("run failed: %w", err)
	}

	r.log.Logf("    Exit code: %d", result.ExitCode)
	if out := result.Stdout(); out != "" {
		r.log.Logf("    Stdout: %s", out)
	}
	if out := result.Stderr(); out != "" {
		r.log.Logf("    Stderr: %s", out)
	}

	// Run assertions
	if len(s.Verify) > 0 {
		r.log.Logf("  Running %d assertions...", len(s.Verify))
		for i, assertion := range s.Verify {
			if err := assertion(result, fixture); err != nil {
				return result, fmt.Errorf("assertion %d failed: %w", i+1, err)
			}
			r.log.Logf("    Assertion %d: ✓", i+1)
		}
	}

	r.log.Logf("  ✓ Scenario passed: %s", s.Name)
	return result, nil
}
