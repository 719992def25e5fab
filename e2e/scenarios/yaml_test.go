package scenarios

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/timvw/clidrive/scenario"
)

// TestYAMLScenarios runs the scenarios described in testdata
func TestYAMLScenarios(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	scenarios, err := scenario.Load(afero.NewOsFs(), "testdata/demo.yaml")
	if err != nil {
		t.Fatalf("Failed to load scenarios: %v", err)
	}

	runAcrossShells(t, scenarios...)
}
