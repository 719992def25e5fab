package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Fixture is the throwaway working directory a scenario runs in
type Fixture struct {
	Dir string
}

// NewFixture creates a fresh working directory under root.
// An empty root uses the system temp dir.
func NewFixture(root string) (*Fixture, error) {
	if root != "" {
		if err := os.MkdirAll(root, 0755); err != nil {
			return nil, fmt.Errorf("failed to create fixture root: %w", err)
		}
	}

	dir, err := os.MkdirTemp(root, "scenario-")
	if err != nil {
		return nil, fmt.Errorf("failed to create fixture dir: %w", err)
	}

	return &Fixture{Dir: dir}, nil
}

// Path resolves a path relative to the fixture directory.
// Absolute paths are returned unchanged.
func (f *Fixture) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(f.Dir, rel)
}

// WriteFile writes content to a file relative to the fixture directory,
// creating parent directories as needed
func (f *Fixture) WriteFile(rel, content string) error {
	path := f.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create dir for %s: %w", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	return nil
}

// Expand replaces $WORKDIR with the fixture directory
func (f *Fixture) Expand(s string) string {
	return strings.ReplaceAll(s, "$WORKDIR", f.Dir)
}

// Cleanup removes the fixture directory
func (f *Fixture) Cleanup() error {
	return os.RemoveAll(f.Dir)
}
