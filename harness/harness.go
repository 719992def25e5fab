// Package harness drives interactive programs the way a person at a terminal
// would: it types timed inputs, records everything the program writes on
// stdout and stderr, and reports how the program exited.
package harness

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// Defaults for Spec fields left empty
const (
	DefaultInterpreter = "node"
	DefaultScriptExt   = "js"
)

// Spec describes one harness run.
//
// Exactly one of Command and Script is expected. When Script is set it wins:
// the body is written to a uniquely named temporary file which is then run
// as `<Interpreter> "<file>"`.
type Spec struct {
	Command     string
	Script      string
	Interpreter string // default "node"
	ScriptExt   string // default "js"

	Dir string   // working directory, defaults to the harness temp dir
	Env []string // added to the current environment

	Inputs []Input
	Delay  time.Duration // default wait before untimed inputs, 100ms when zero

	// TTY attaches stdin and stdout to a pseudo-terminal instead of pipes
	TTY bool

	// Debug echoes output to the console and keeps the temporary script
	Debug bool

	Stdout Sink // called for every stdout chunk
	Stderr Sink // called for every stderr chunk
}

func (s Spec) withDefaults() Spec {
	if s.Interpreter == "" {
		s.Interpreter = DefaultInterpreter
	}
	if s.ScriptExt == "" {
		s.ScriptExt = DefaultScriptExt
	}
	if s.Delay <= 0 {
		s.Delay = DefaultDelay
	}
	return s
}

// Harness runs Specs. It is safe for concurrent use; every Run owns its
// own child process and temporary script.
type Harness struct {
	fs      afero.Fs
	logger  *slog.Logger
	tempDir string
	stdout  io.Writer
	stderr  io.Writer
	shell   Shell
	onSend  SendHook
}

// Option configures a Harness
type Option func(*Harness)

// WithFs sets the filesystem temporary scripts are written to
func WithFs(fs afero.Fs) Option {
	return func(h *Harness) {
		h.fs = fs
	}
}

// WithLogger sets the logger for lifecycle events
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) {
		h.logger = logger
	}
}

// WithTempDir sets where temporary scripts are written and where commands run
// when a Spec has no Dir
func WithTempDir(dir string) Option {
	return func(h *Harness) {
		h.tempDir = dir
	}
}

// WithConsole sets where debug output is echoed
func WithConsole(stdout, stderr io.Writer) Option {
	return func(h *Harness) {
		h.stdout = stdout
		h.stderr = stderr
	}
}

// WithShell sets the shell command lines are run with
func WithShell(shell Shell) Option {
	return func(h *Harness) {
		h.shell = shell
	}
}

// WithSendHook registers a hook called after each input is written
func WithSendHook(hook SendHook) Option {
	return func(h *Harness) {
		h.onSend = hook
	}
}

// New creates a harness writing scripts to os.TempDir()
func New(opts ...Option) *Harness {
	h := &Harness{
		fs:      afero.NewOsFs(),
		logger:  slog.New(slog.DiscardHandler),
		tempDir: os.TempDir(),
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		shell:   DefaultShell(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run runs spec with a default harness
func Run(spec Spec) (*Result, error) {
	return New().Run(spec)
}

// Run starts the process described by spec, types its inputs and waits for it
// to exit. A zero exit code returns the result and a nil error. Any other exit
// code returns the result together with an *ExitError. A process that could not
// be started returns a *SpawnError and no result.
//
// Run has no timeout: a process that never exits blocks it forever.
func (h *Harness) Run(spec Spec) (*Result, error) {
	spec = spec.withDefaults()

	command := spec.Command
	var scriptPath string
	if spec.Script != "" {
		path, err := h.writeScript(spec.Script, spec.ScriptExt)
		if err != nil {
			return nil, err
		}
		defer h.removeScript(path, spec.Debug)
		scriptPath = path
		command = fmt.Sprintf(`%s "%s"`, spec.Interpreter, path)
	}
	if command == "" {
		return nil, ErrNoCommand
	}

	dir := spec.Dir
	if dir == "" {
		dir = h.tempDir
	}

	proc, err := h.launch(command, dir, spec)
	if err != nil {
		h.logger.Debug("failed to start process", slog.String("command", command), slog.Any("error", err))
		return nil, &SpawnError{Command: command, Err: err}
	}
	defer proc.release()

	h.logger.Debug(
		"process started",
		slog.String("command", command),
		slog.String("dir", dir),
		slog.String("shell", h.shell.Name()),
		slog.Int("pid", proc.pid),
		slog.Bool("tty", spec.TTY),
		slog.Int("inputs", len(spec.Inputs)),
	)

	result, err := h.collect(proc, command, spec)
	if result != nil && spec.Debug {
		result.ScriptPath = scriptPath
	}
	return result, err
}

// writeScript writes body to a new uniquely named file in the temp dir
func (h *Harness) writeScript(body, ext string) (string, error) {
	if err := h.fs.MkdirAll(h.tempDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to write script: %w", err)
	}

	name := uuid.NewString() + "." + strings.TrimPrefix(ext, ".")
	path := filepath.Join(h.tempDir, name)
	if err := afero.WriteFile(h.fs, path, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("failed to write script: %w", err)
	}

	h.logger.Debug("script written", slog.String("path", path))
	return path, nil
}

// removeScript deletes the temporary script unless keep is set.
// A failed removal is logged and otherwise ignored.
func (h *Harness) removeScript(path string, keep bool) {
	if keep {
		h.logger.Debug("keeping script", slog.String("path", path))
		return
	}
	if err := h.fs.Remove(path); err != nil {
		h.logger.Warn("failed to remove script", slog.String("path", path), slog.Any("error", err))
	}
}
