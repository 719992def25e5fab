package harness

import "time"

// DefaultDelay is the wait before each untimed input
const DefaultDelay = 100 * time.Millisecond

// Input is one unit of simulated keyboard input.
//
// An untimed input waits the current default delay before it is sent. A timed
// input waits Delay instead, and Delay then becomes the default for every
// untimed input that follows it.
type Input struct {
	Data  string
	Delay time.Duration
	Timed bool
}

// Type returns an untimed input
func Type(data string) Input {
	return Input{Data: data}
}

// After returns an input sent after delay, which also becomes the new default delay
func After(delay time.Duration, data string) Input {
	return Input{Data: data, Delay: delay, Timed: true}
}

// Inputs returns an untimed input for each string
func Inputs(data ...string) []Input {
	inputs := make([]Input, 0, len(data))
	for _, d := range data {
		inputs = append(inputs, Type(d))
	}
	return inputs
}

// step is a resolved input: what to write and how long to wait before writing it
type step struct {
	data string
	wait time.Duration
}

// schedule resolves the wait of every input. The running default is threaded
// through the fold as an accumulator; the caller's slice is left untouched.
func schedule(inputs []Input, delay time.Duration) []step {
	steps := make([]step, 0, len(inputs))
	for _, in := range inputs {
		if in.Timed {
			delay = in.Delay
		}
		steps = append(steps, step{data: in.Data, wait: delay})
	}
	return steps
}
