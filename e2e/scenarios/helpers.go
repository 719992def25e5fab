// Package scenarios runs clidrive's demo programs through every shell listed
// in E2E_SHELLS.
package scenarios

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/timvw/clidrive/harness"
	"github.com/timvw/clidrive/scenario"
)

var (
	buildOnce sync.Once
	binDir    string
	buildErr  error
)

// getShells returns the shells to test based on E2E_SHELLS env var.
// E2E_SHELLS should be a comma-separated list (e.g., "bash,zsh").
// If not set, defaults to the platform shell.
// Fails the test if a configured shell is not available.
func getShells(t *testing.T) []harness.Shell {
	t.Helper()

	// Get shells from environment or default to the platform shell
	shellsEnv := os.Getenv("E2E_SHELLS")
	if shellsEnv == "" {
		shellsEnv = defaultShells
		t.Logf("E2E_SHELLS not set, defaulting to: %s", shellsEnv)
	} else {
		t.Logf("E2E_SHELLS=%s", shellsEnv)
	}

	// Parse comma-separated shell names
	names := strings.Split(shellsEnv, ",")
	shells := make([]harness.Shell, 0, len(names))

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		shell, err := harness.ShellByName(name)
		if err != nil {
			t.Fatalf("Unknown or unsupported shell in E2E_SHELLS: %s (%v)", name, err)
		}

		// Verify shell is available on this system
		if err := verifyShellAvailable(shell); err != nil {
			t.Fatalf("Shell '%s' configured in E2E_SHELLS but not available: %v", name, err)
		}

		shells = append(shells, shell)
	}

	if len(shells) == 0 {
		t.Fatal("No valid shells configured")
	}

	return shells
}

// verifyShellAvailable checks if a shell executable is available in PATH
func verifyShellAvailable(shell harness.Shell) error {
	prog, _ := shell.Argv("")
	if _, err := exec.LookPath(prog); err != nil {
		return fmt.Errorf("%s not found in PATH", prog)
	}
	return nil
}

// buildClidrive builds the clidrive binary once and returns its directory
func buildClidrive(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		binDir, buildErr = os.MkdirTemp("", "clidrive-scenarios-")
		if buildErr != nil {
			return
		}

		binaryName := "clidrive"
		// On Windows, executables need .exe extension
		if filepath.Separator == '\\' {
			binaryName = "clidrive.exe"
		}

		cmd := exec.Command("go", "build", "-o", filepath.Join(binDir, binaryName), "../..")
		if output, err := cmd.CombinedOutput(); err != nil {
			buildErr = fmt.Errorf("%w\nOutput: %s", err, output)
		}
	})

	if buildErr != nil {
		t.Fatalf("Failed to build clidrive binary: %v", buildErr)
	}
	return binDir
}

// runAcrossShells runs every scenario once per configured shell with the
// clidrive binary first on PATH
func runAcrossShells(t *testing.T, scenarios ...scenario.Scenario) {
	t.Helper()

	bin := buildClidrive(t)
	path := "PATH=" + bin + string(os.PathListSeparator) + os.Getenv("PATH")

	for _, shell := range getShells(t) {
		t.Run(shell.Name(), func(t *testing.T) {
			h := harness.New(
				harness.WithShell(shell),
				harness.WithTempDir(t.TempDir()),
			)
			runner := scenario.NewRunner(t, h, t.TempDir())

			for _, s := range scenarios {
				s.Spec.Env = append(append([]string{}, s.Spec.Env...), path)
				t.Run(s.Name, func(t *testing.T) {
					if _, err := runner.Run(s); err != nil {
						t.Fatalf("Scenario failed: %v", err)
					}
				})
			}
		})
	}
}
