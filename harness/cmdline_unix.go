//go:build !windows

package harness

import "os/exec"

func rawCmdLine(Shell, string) string {
	return ""
}

func setCmdLine(*exec.Cmd, string) {}
