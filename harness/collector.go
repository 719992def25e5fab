package harness

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

// drainTimeout bounds how long output is still read after the process has
// exited. Descendants that inherited the output channels can keep them open
// indefinitely.
const drainTimeout = time.Second

// channel records one output stream of a process
type channel struct {
	name   string
	sink   Sink
	echo   io.Writer // debug console, nil when not debugging
	logger *slog.Logger

	mu     sync.Mutex
	chunks []string
	closed bool
}

// readLoop continuously reads from r, recording and forwarding every chunk
func (c *channel) readLoop(r io.Reader) {
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 && !c.record(string(buf[:n])) {
			return
		}
		if err != nil {
			if !endOfStream(err) {
				c.logger.Debug("read error", slog.String("channel", c.name), slog.Any("error", err))
			}
			return
		}
	}
}

// record stores and forwards one chunk. It reports false once the channel
// has been sealed.
func (c *channel) record(chunk string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	c.chunks = append(c.chunks, chunk)
	if c.echo != nil {
		_, _ = io.WriteString(c.echo, chunk)
	}
	if c.sink != nil {
		c.sink.Chunk(chunk)
	}
	return true
}

// seal stops recording and returns the chunks collected so far
func (c *channel) seal() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return c.chunks
}

// waitFor waits for wg until timeout and reports whether it finished
func waitFor(wg *sync.WaitGroup, timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}

// collect drives a started process to completion: it feeds the inputs,
// streams both output channels, reaps the child and builds the result.
func (h *Harness) collect(p *process, command string, spec Spec) (*Result, error) {
	start := time.Now()

	stdout := &channel{name: "stdout", sink: spec.Stdout, logger: h.logger}
	stderr := &channel{name: "stderr", sink: spec.Stderr, logger: h.logger}
	if spec.Debug {
		stdout.echo = h.stdout
		stderr.echo = h.stderr
	}

	exited := make(chan struct{})
	inj := &injector{
		w:      p.stdin,
		end:    p.endInput,
		steps:  schedule(spec.Inputs, spec.Delay),
		onSend: h.sendHook(),
	}

	var injecting sync.WaitGroup
	injecting.Add(1)
	go func() {
		defer injecting.Done()
		if err := inj.run(exited); err != nil {
			h.logger.Debug("input injection stopped", slog.String("command", command), slog.Any("error", err))
		}
	}()

	var reading sync.WaitGroup
	reading.Add(1)
	go func() {
		defer reading.Done()
		stdout.readLoop(p.stdout)
	}()
	if p.stderr != nil {
		reading.Add(1)
		go func() {
			defer reading.Done()
			stderr.readLoop(p.stderr)
		}()
	}

	// The child is reaped while the channels are still being read. Output
	// already written is drained; channels held open by descendants are
	// closed once drainTimeout has passed.
	code, err := p.wait()
	close(exited)
	if !waitFor(&reading, drainTimeout) {
		h.logger.Debug("output still open after exit, closing", slog.String("command", command))
		p.closeOutput()
		if !waitFor(&reading, drainTimeout) {
			h.logger.Debug("abandoning output readers", slog.String("command", command))
		}
	}
	injecting.Wait()

	if err != nil {
		return nil, fmt.Errorf("failed waiting for %q: %w", command, err)
	}

	result := &Result{
		Command:  command,
		ExitCode: code,
		Output:   stdout.seal(),
		Errors:   stderr.seal(),
		Duration: time.Since(start),
	}

	h.logger.Debug(
		"process exited",
		slog.String("command", command),
		slog.Int("exit_code", code),
		slog.Int64("duration_ms", result.Duration.Milliseconds()),
	)

	if code != 0 {
		return result, newExitError(result)
	}
	return result, nil
}

// sendHook combines the configured hook with debug logging of each input
func (h *Harness) sendHook() SendHook {
	return func(index int, data string, at time.Time) {
		h.logger.Debug("input sent", slog.Int("index", index), slog.String("data", fmt.Sprintf("%q", data)))
		if h.onSend != nil {
			h.onSend(index, data, at)
		}
	}
}
