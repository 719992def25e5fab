package scenario

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewFixture(t *testing.T) {
	root := filepath.Join(t.TempDir(), "fixtures")
	fixture, err := NewFixture(root)
	if err != nil {
		t.Fatalf("NewFixture failed: %v", err)
	}

	if fixture.Dir == "" {
		t.Fatal("Dir is empty")
	}
	if filepath.Dir(fixture.Dir) != root {
		t.Errorf("Dir = %s, want a child of %s", fixture.Dir, root)
	}
	if _, err := os.Stat(fixture.Dir); err != nil {
		t.Errorf("Dir does not exist: %v", err)
	}

	other, err := NewFixture(root)
	if err != nil {
		t.Fatalf("NewFixture failed: %v", err)
	}
	if other.Dir == fixture.Dir {
		t.Errorf("fixtures share a directory: %s", other.Dir)
	}
}

func TestFixtureWriteFile(t *testing.T) {
	fixture, err := NewFixture(t.TempDir())
	if err != nil {
		t.Fatalf("NewFixture failed: %v", err)
	}

	if err := fixture.WriteFile("nested/dir/answer.txt", "42"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(fixture.Dir, "nested", "dir", "answer.txt"))
	if err != nil {
		t.Fatalf("file not written: %v", err)
	}
	if string(data) != "42" {
		t.Errorf("content = %q, want %q", data, "42")
	}
}

func TestFixtureCleanup(t *testing.T) {
	fixture, err := NewFixture(t.TempDir())
	if err != nil {
		t.Fatalf("NewFixture failed: %v", err)
	}

	if err := fixture.Cleanup(); err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if _, err := os.Stat(fixture.Dir); !os.IsNotExist(err) {
		t.Errorf("Dir still exists after cleanup: %v", err)
	}
}

func TestFixturePathAndExpand(t *testing.T) {
	fixture := &Fixture{Dir: "/tmp/work"}

	tests := []struct {
		name     string
		input    string
		path     string
		expanded string
	}{
		{
			name:     "relative path",
			input:    "out.txt",
			path:     filepath.Join("/tmp/work", "out.txt"),
			expanded: "out.txt",
		},
		{
			name:     "absolute path",
			input:    "/etc/hosts",
			path:     "/etc/hosts",
			expanded: "/etc/hosts",
		},
		{
			name:     "WORKDIR variable",
			input:    "$WORKDIR/project",
			path:     filepath.Join("/tmp/work", "$WORKDIR/project"),
			expanded: "/tmp/work/project",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fixture.Path(tt.input); got != tt.path {
				t.Errorf("Path() = %q, want %q", got, tt.path)
			}
			if got := fixture.Expand(tt.input); got != tt.expanded {
				t.Errorf("Expand() = %q, want %q", got, tt.expanded)
			}
		})
	}
}
