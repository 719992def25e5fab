//go:build !windows

package harness

// DefaultShell returns /bin/sh
func DefaultShell() Shell {
	return PosixShell{Path: "/bin/sh"}
}
