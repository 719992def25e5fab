package harness

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
)

// process is a started child together with the ends of its channels
// that the harness owns
type process struct {
	pid   int
	stdin io.Writer
	// endInput signals end of input. lineOpen is set when the last input
	// did not finish its line.
	endInput    func(lineOpen bool) error
	stdout      io.Reader
	stderr      io.Reader // nil when the terminal carries both channels
	wait        func() (int, error)
	closeOutput func()
	release     func()
}

// launch starts command through the harness shell in dir
func (h *Harness) launch(command, dir string, spec Spec) (*process, error) {
	name, args := h.shell.Argv(command)
	env := environ(spec)
	if spec.TTY {
		return startTerminal(name, args, dir, env)
	}
	return startPipes(name, args, dir, env, rawCmdLine(h.shell, command))
}

// startPipes starts the program with stdin, stdout and stderr connected to pipes.
// A non-empty cmdLine replaces the command line built from args (Windows only).
func startPipes(name string, args []string, dir string, env []string, cmdLine string) (*process, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Env = env
	setCmdLine(cmd, cmdLine)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, stdoutW, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	stderr, stderrW, err := os.Pipe()
	if err != nil {
		closeFiles(stdout, stdoutW)
		return nil, err
	}
	// cmd.Wait neither waits for nor closes *os.File outputs, so the child
	// can be reaped while its output is still being read.
	cmd.Stdout = stdoutW
	cmd.Stderr = stderrW

	err = cmd.Start()
	closeFiles(stdoutW, stderrW)
	if err != nil {
		closeFiles(stdout, stderr)
		return nil, err
	}

	closeOutput := func() {
		_ = stdout.Close()
		_ = stderr.Close()
	}
	return &process{
		pid:   cmd.Process.Pid,
		stdin: stdin,
		endInput: func(bool) error {
			return stdin.Close()
		},
		stdout: stdout,
		stderr: stderr,
		wait: func() (int, error) {
			return exitStatus(cmd.Wait())
		},
		closeOutput: closeOutput,
		release:     closeOutput,
	}, nil
}

// closeFiles closes every file, ignoring errors
func closeFiles(files ...*os.File) {
	for _, f := range files {
		_ = f.Close()
	}
}
