package harness

import (
	"io"
	"regexp"
	"strings"
	"sync"
)

// Sink receives every chunk a process writes to one of its output channels
type Sink interface {
	Chunk(data string)
}

// SinkFunc adapts a function to a Sink
type SinkFunc func(data string)

// Chunk calls f(data)
func (f SinkFunc) Chunk(data string) {
	f(data)
}

// WriterSink forwards chunks to w, ignoring write errors
type WriterSink struct {
	W io.Writer
}

// Chunk writes data to the underlying writer
func (s WriterSink) Chunk(data string) {
	_, _ = io.WriteString(s.W, data)
}

// Recorder is a Sink that remembers every call, for assertions in tests
type Recorder struct {
	mu    sync.Mutex
	calls []string
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Chunk records data
func (r *Recorder) Chunk(data string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, data)
}

// Calls returns a copy of the recorded chunks in arrival order
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	calls := make([]string, len(r.calls))
	copy(calls, r.calls)
	return calls
}

// Count returns the number of recorded chunks
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// CalledWith reports whether any single chunk contains substr
func (r *Recorder) CalledWith(substr string) bool {
	for _, call := range r.Calls() {
		if strings.Contains(call, substr) {
			return true
		}
	}
	return false
}

// CalledWithMatch reports whether any single chunk matches the regular expression.
// An invalid expression never matches.
func (r *Recorder) CalledWithMatch(expr string) bool {
	re, err := regexp.Compile(expr)
	if err != nil {
		return false
	}
	for _, call := range r.Calls() {
		if re.MatchString(call) {
			return true
		}
	}
	return false
}

// String returns all recorded chunks concatenated
func (r *Recorder) String() string {
	return strings.Join(r.Calls(), "")
}
