//go:build windows

package harness

import (
	"github.com/aymanbagabas/go-pty"
)

// startTerminal starts the program attached to a ConPTY. The console merges
// stdout and stderr, so the process has no separate stderr channel.
func startTerminal(name string, args []string, dir string, env []string) (*process, error) {
	ptmx, err := pty.New()
	if err != nil {
		return nil, err
	}

	c := ptmx.Command(name, args...)
	c.Dir = dir
	c.Env = env
	if err := c.Start(); err != nil {
		_ = ptmx.Close()
		return nil, err
	}

	// ConPTY output only ends once the console is closed, so reap the
	// child in the background and close the console when it exits.
	type exit struct {
		code int
		err  error
	}
	exited := make(chan exit, 1)
	go func() {
		err := c.Wait()
		if c.ProcessState != nil {
			exited <- exit{code: c.ProcessState.ExitCode()}
		} else {
			exited <- exit{code: -1, err: err}
		}
		_ = ptmx.Close()
	}()

	closeConsole := func() {
		_ = ptmx.Close()
	}
	return &process{
		pid:   c.Process.Pid,
		stdin: ptmx,
		// ^Z only ends input at the start of a line, so finish an open line first.
		endInput: func(lineOpen bool) error {
			eof := "\x1a\r"
			if lineOpen {
				eof = "\r" + eof
			}
			_, err := ptmx.Write([]byte(eof))
			return err
		},
		stdout: ptmx,
		wait: func() (int, error) {
			e := <-exited
			return e.code, e.err
		},
		closeOutput: closeConsole,
		release:     closeConsole,
	}, nil
}

func isTerminalHangup(err error) bool {
	return false
}
