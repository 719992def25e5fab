package harness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedule(t *testing.T) {
	tests := []struct {
		name     string
		inputs   []Input
		delay    time.Duration
		expected []step
	}{
		{
			name:     "no inputs",
			inputs:   nil,
			delay:    DefaultDelay,
			expected: []step{},
		},
		{
			name:   "untimed inputs use the default",
			inputs: Inputs("a", "b"),
			delay:  50 * time.Millisecond,
			expected: []step{
				{data: "a", wait: 50 * time.Millisecond},
				{data: "b", wait: 50 * time.Millisecond},
			},
		},
		{
			name:   "timed input becomes the new default",
			inputs: []Input{After(500*time.Millisecond, "x"), Type("y")},
			delay:  DefaultDelay,
			expected: []step{
				{data: "x", wait: 500 * time.Millisecond},
				{data: "y", wait: 500 * time.Millisecond},
			},
		},
		{
			name: "later override replaces earlier one",
			inputs: []Input{
				Type("a"),
				After(time.Second, "b"),
				Type("c"),
				After(0, "d"),
				Type("e"),
			},
			delay: DefaultDelay,
			expected: []step{
				{data: "a", wait: DefaultDelay},
				{data: "b", wait: time.Second},
				{data: "c", wait: time.Second},
				{data: "d", wait: 0},
				{data: "e", wait: 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, schedule(tt.inputs, tt.delay))
		})
	}
}

func TestScheduleDoesNotMutateInputs(t *testing.T) {
	inputs := []Input{After(time.Second, "x"), Type("y")}
	original := make([]Input, len(inputs))
	copy(original, inputs)

	schedule(inputs, DefaultDelay)

	assert.Equal(t, original, inputs)
}

func TestInputConstructors(t *testing.T) {
	assert.Equal(t, Input{Data: "hi"}, Type("hi"))
	assert.Equal(t, Input{Data: "hi", Delay: time.Second, Timed: true}, After(time.Second, "hi"))
	assert.Equal(t, []Input{{Data: "a"}, {Data: Enter}}, Inputs("a", Enter))
}
