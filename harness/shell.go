package harness

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Shell turns a command line into the program and arguments that run it
type Shell interface {
	// Name returns the shell name (e.g., "sh", "bash", "pwsh")
	Name() string

	// Argv returns the program and its arguments for running line
	Argv(line string) (string, []string)
}

// PosixShell runs command lines with `<path> -c`
type PosixShell struct {
	Path string
}

// Name returns the base name of the shell binary
func (s PosixShell) Name() string {
	return strings.TrimSuffix(filepath.Base(s.Path), ".exe")
}

// Argv returns the -c invocation for line
func (s PosixShell) Argv(line string) (string, []string) {
	return s.Path, []string{"-c", line}
}

// PwshShell runs command lines with PowerShell. Path defaults to "pwsh";
// set it to "powershell" for Windows PowerShell.
type PwshShell struct {
	Path string
}

// Name returns the shell name
func (s PwshShell) Name() string {
	if s.Path == "" {
		return "pwsh"
	}
	return strings.TrimSuffix(filepath.Base(s.Path), ".exe")
}

// Argv returns the -Command invocation for line
func (s PwshShell) Argv(line string) (string, []string) {
	path := s.Path
	if path == "" {
		path = "pwsh"
	}
	return path, []string{"-NoProfile", "-NonInteractive", "-Command", line}
}

// CmdShell runs command lines with cmd.exe
type CmdShell struct{}

// Name returns the shell name
func (CmdShell) Name() string {
	return "cmd"
}

// Argv returns the /c invocation for line
func (CmdShell) Argv(line string) (string, []string) {
	return "cmd.exe", []string{"/d", "/s", "/c", line}
}

// ShellByName returns the shell for a name such as "sh", "bash", "zsh",
// "pwsh" or "cmd". An empty name selects the platform default.
func ShellByName(name string) (Shell, error) {
	switch strings.ToLower(name) {
	case "":
		return DefaultShell(), nil
	case "sh", "bash", "zsh", "dash", "ksh":
		return PosixShell{Path: strings.ToLower(name)}, nil
	case "pwsh":
		return PwshShell{}, nil
	case "powershell":
		return PwshShell{Path: "powershell"}, nil
	case "cmd":
		return CmdShell{}, nil
	default:
		return nil, fmt.Errorf("unknown shell: %s", name)
	}
}
