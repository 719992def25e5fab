//go:build !windows

package harness

import (
	"errors"
	"os"
	"os/exec"
	"syscall"

	"github.com/creack/pty"
)

// startTerminal starts the program with stdin and stdout on a pseudo-terminal.
// Stderr stays a separate pipe so the two channels are still told apart.
func startTerminal(name string, args []string, dir string, env []string) (*process, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Env = env

	stderr, stderrW, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	cmd.Stderr = stderrW

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: 24, Cols: 80})
	_ = stderrW.Close()
	if err != nil {
		_ = stderr.Close()
		return nil, err
	}

	closeOutput := func() {
		_ = ptmx.Close()
		_ = stderr.Close()
	}
	return &process{
		pid:   cmd.Process.Pid,
		stdin: ptmx,
		// Closing the master would hang up the terminal; send the EOF character
		// instead. On a partly typed line the first one only flushes the line.
		endInput: func(lineOpen bool) error {
			eof := CtrlD
			if lineOpen {
				eof += CtrlD
			}
			_, err := ptmx.Write([]byte(eof))
			return err
		},
		stdout: ptmx,
		stderr: stderr,
		wait: func() (int, error) {
			return exitStatus(cmd.Wait())
		},
		closeOutput: closeOutput,
		release:     closeOutput,
	}, nil
}

// isTerminalHangup reports the EIO a pty master returns once the child side is gone
func isTerminalHangup(err error) bool {
	return errors.Is(err, syscall.EIO)
}
