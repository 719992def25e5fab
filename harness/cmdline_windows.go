//go:build windows

package harness

import (
	"os/exec"
	"syscall"
)

// rawCmdLine returns the verbatim command line for cmd.exe. cmd.exe does not
// follow the argument quoting rules exec applies, so a quoted program path
// would reach it escaped.
func rawCmdLine(shell Shell, line string) string {
	if _, ok := shell.(CmdShell); !ok {
		return ""
	}
	return `cmd.exe /d /s /c "` + line + `"`
}

func setCmdLine(cmd *exec.Cmd, cmdLine string) {
	if cmdLine == "" {
		return
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{CmdLine: cmdLine}
}
