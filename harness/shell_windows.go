//go:build windows

package harness

// DefaultShell returns cmd.exe
func DefaultShell() Shell {
	return CmdShell{}
}
