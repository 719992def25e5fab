package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/timvw/clidrive/harness"
)

func TestAssertExitCode(t *testing.T) {
	fixture := &Fixture{Dir: "/tmp/test"}

	tests := []struct {
		name     string
		expected int
		result   *harness.Result
		wantErr  bool
	}{
		{
			name:     "matching exit code",
			expected: 0,
			result:   &harness.Result{ExitCode: 0},
			wantErr:  false,
		},
		{
			name:     "non-matching exit code",
			expected: 0,
			result:   &harness.Result{ExitCode: 1},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertion := AssertExitCode(tt.expected)
			err := assertion(tt.result, fixture)
			if (err != nil) != tt.wantErr {
				t.Errorf("AssertExitCode() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAssertFailure(t *testing.T) {
	fixture := &Fixture{Dir: "/tmp/test"}

	if err := AssertFailure()(&harness.Result{ExitCode: 1}, fixture); err != nil {
		t.Errorf("AssertFailure() on exit 1 = %v, want nil", err)
	}
	if err := AssertFailure()(&harness.Result{ExitCode: 0}, fixture); err == nil {
		t.Error("AssertFailure() on exit 0 = nil, want error")
	}
	if err := AssertSuccess()(&harness.Result{ExitCode: 0}, fixture); err != nil {
		t.Errorf("AssertSuccess() on exit 0 = %v, want nil", err)
	}
}

func TestAssertStdoutContains(t *testing.T) {
	fixture := &Fixture{Dir: "/tmp/test"}

	tests := []struct {
		name     string
		expected string
		result   *harness.Result
		wantErr  bool
	}{
		{
			name:     "stdout contains expected string",
			expected: "success",
			result:   &harness.Result{Output: []string{"operation ", "success completed"}},
			wantErr:  false,
		},
		{
			name:     "match spans chunks",
			expected: "You said: y",
			result:   &harness.Result{Output: []string{"You said", ": y\n"}},
			wantErr:  false,
		},
		{
			name:     "stdout does not contain expected string",
			expected: "success",
			result:   &harness.Result{Output: []string{"operation failed"}},
			wantErr:  true,
		},
		{
			name:     "workdir expansion",
			expected: "$WORKDIR/out",
			result:   &harness.Result{Output: []string{"/tmp/test/out\n"}},
			wantErr:  false,
		},
		{
			name:     "stderr is not stdout",
			expected: "oops",
			result:   &harness.Result{Errors: []string{"oops"}},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertion := AssertStdoutContains(tt.expected)
			err := assertion(tt.result, fixture)
			if (err != nil) != tt.wantErr {
				t.Errorf("AssertStdoutContains() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAssertStdoutNotContains(t *testing.T) {
	fixture := &Fixture{Dir: "/tmp/test"}
	result := &harness.Result{Output: []string{"Option 1 Chosen\n", "Option 3 Chosen\n"}}

	if err := AssertStdoutNotContains("Option 2 Chosen")(result, fixture); err != nil {
		t.Errorf("AssertStdoutNotContains() = %v, want nil", err)
	}
	if err := AssertStdoutNotContains("Option 3 Chosen")(result, fixture); err == nil {
		t.Error("AssertStdoutNotContains() = nil, want error")
	}
}

func TestAssertStdoutMatches(t *testing.T) {
	fixture := &Fixture{Dir: "/tmp/test"}

	tests := []struct {
		name    string
		expr    string
		wantErr bool
	}{
		{name: "matches", expr: `Your name is "[A-Za-z ]+"`},
		{name: "does not match", expr: `^Goodbye`, wantErr: true},
		{name: "invalid pattern", expr: `(`, wantErr: true},
	}

	result := &harness.Result{Output: []string{`Your name is "Anatoliy Zaslavskiy"`}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AssertStdoutMatches(tt.expr)(result, fixture)
			if (err != nil) != tt.wantErr {
				t.Errorf("AssertStdoutMatches() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAssertStderr(t *testing.T) {
	fixture := &Fixture{Dir: "/tmp/test"}

	withErr := &harness.Result{Errors: []string{"Something bad happened\n"}}
	clean := &harness.Result{Output: []string{"Something good happened\n"}}

	if err := AssertStderrContains("bad happened")(withErr, fixture); err != nil {
		t.Errorf("AssertStderrContains() = %v, want nil", err)
	}
	if err := AssertStderrContains("bad happened")(clean, fixture); err == nil {
		t.Error("AssertStderrContains() = nil, want error")
	}
	if err := AssertStderrEmpty()(clean, fixture); err != nil {
		t.Errorf("AssertStderrEmpty() = %v, want nil", err)
	}
	if err := AssertStderrEmpty()(withErr, fixture); err == nil {
		t.Error("AssertStderrEmpty() = nil, want error")
	}
}

func TestAssertFileExists(t *testing.T) {
	fixture := &Fixture{Dir: t.TempDir()}
	if err := os.WriteFile(filepath.Join(fixture.Dir, "README.md"), []byte("# hi"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := AssertFileExists("README.md")(&harness.Result{}, fixture); err != nil {
		t.Errorf("AssertFileExists() = %v, want nil", err)
	}
	if err := AssertFileExists("$WORKDIR/README.md")(&harness.Result{}, fixture); err != nil {
		t.Errorf("AssertFileExists() with $WORKDIR = %v, want nil", err)
	}
	if err := AssertFileExists("missing.txt")(&harness.Result{}, fixture); err == nil {
		t.Error("AssertFileExists() = nil, want error")
	}
}
