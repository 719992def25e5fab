package scenarios

import (
	"testing"
	"time"

	"github.com/timvw/clidrive/harness"
	"github.com/timvw/clidrive/scenario"
)

// TestConfirmPrompt answers the confirm prompt both ways
func TestConfirmPrompt(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	runAcrossShells(t,
		scenario.Scenario{
			Name:        "answer yes",
			Description: "Type y and enter at the confirm prompt",
			Spec: harness.Spec{
				Command: "clidrive demo confirm",
				Inputs:  harness.Inputs("y", harness.Enter),
			},
			Verify: []scenario.Assertion{
				scenario.AssertSuccess(),
				scenario.AssertStdoutContains("Continue? (y/n)"),
				scenario.AssertStdoutContains("You said: y"),
				scenario.AssertStderrEmpty(),
			},
		},
		scenario.Scenario{
			Name:        "answer no",
			Description: "Type n after a longer pause",
			Spec: harness.Spec{
				Command: "clidrive demo confirm",
				Inputs: []harness.Input{
					harness.After(500*time.Millisecond, "n"),
					harness.Type(harness.Enter),
				},
			},
			Verify: []scenario.Assertion{
				scenario.AssertSuccess(),
				scenario.AssertStdoutContains("You said: n"),
				scenario.AssertStdoutNotContains("You said: y"),
			},
		},
	)
}

// TestEchoUntilEndOfInput types several lines and relies on the input being
// closed afterwards
func TestEchoUntilEndOfInput(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	runAcrossShells(t, scenario.Scenario{
		Name: "echo lines",
		Spec: harness.Spec{
			Command: "clidrive demo echo",
			Inputs: harness.Inputs(
				"first"+harness.Enter,
				"second"+harness.Enter,
				"third",
			),
		},
		Verify: []scenario.Assertion{
			scenario.AssertSuccess(),
			scenario.AssertStdoutMatches(`(?s)> first.*> second.*> third.*EOF`),
		},
	})
}
