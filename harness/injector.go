package harness

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// SendHook observes every input after it has been written to the process
type SendHook func(index int, data string, at time.Time)

// injector writes scheduled inputs to a process one after another and then
// signals end of input
type injector struct {
	w      io.Writer
	end    func(lineOpen bool) error
	steps  []step
	onSend SendHook

	last string // last data written
}

// run delivers every step in order. The wait of step i only starts once step
// i-1 has been written. Delivery stops early when exited is closed.
// End of input is signalled on every path, including an empty schedule.
func (i *injector) run(exited <-chan struct{}) error {
	err := i.send(exited)
	if endErr := i.end(lineOpen(i.last)); endErr != nil && err == nil {
		err = fmt.Errorf("failed to close input: %w", endErr)
	}
	return err
}

func (i *injector) send(exited <-chan struct{}) error {
	for n, s := range i.steps {
		timer := time.NewTimer(s.wait)
		select {
		case <-exited:
			timer.Stop()
			return nil
		case <-timer.C:
		}

		if _, err := io.WriteString(i.w, s.data); err != nil {
			return fmt.Errorf("failed to write input %d: %w", n+1, err)
		}
		if s.data != "" {
			i.last = s.data
		}
		if i.onSend != nil {
			i.onSend(n, s.data, time.Now())
		}
	}
	return nil
}

// lineOpen reports whether data leaves a partly typed line behind
func lineOpen(data string) bool {
	return data != "" && !strings.HasSuffix(data, "\r") && !strings.HasSuffix(data, "\n")
}
