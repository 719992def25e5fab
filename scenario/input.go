package scenario

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/timvw/clidrive/harness"
)

var keyToken = regexp.MustCompile(`<([A-Za-z-]+)>`)

// ExpandKeys replaces key tokens such as <enter> or <down> with their
// terminal sequences. Tokens that name no key, like <html>, are kept as text.
func ExpandKeys(s string) string {
	return keyToken.ReplaceAllStringFunc(s, func(token string) string {
		seq, err := harness.Key(token[1 : len(token)-1])
		if err != nil {
			return token
		}
		return seq
	})
}

// ParseDelay parses a Go duration ("500ms", "2s") or a bare number of milliseconds
func ParseDelay(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if ms, err := strconv.Atoi(s); err == nil {
		if ms < 0 {
			return 0, fmt.Errorf("negative delay: %s", s)
		}
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid delay %q: %w", s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("negative delay: %s", s)
	}
	return d, nil
}

// ParseInput parses the command-line form of an input. "@<delay>:<text>" is a
// timed input; anything else is typed after the current default delay. Key
// tokens are expanded in both forms.
func ParseInput(s string) (harness.Input, error) {
	if strings.HasPrefix(s, "@") {
		if delay, text, ok := strings.Cut(s[1:], ":"); ok {
			d, err := ParseDelay(delay)
			if err != nil {
				return harness.Input{}, err
			}
			return harness.After(d, ExpandKeys(text)), nil
		}
	}
	return harness.Type(ExpandKeys(s)), nil
}

// Input is the YAML form of a harness input: either a plain string or a
// mapping with input and delay keys
type Input harness.Input

// UnmarshalYAML decodes both input forms
func (in *Input) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*in = Input(harness.Type(ExpandKeys(node.Value)))
		return nil
	case yaml.MappingNode:
		var raw struct {
			Input string `yaml:"input"`
			Delay string `yaml:"delay"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		data := ExpandKeys(raw.Input)
		if raw.Delay == "" {
			*in = Input(harness.Type(data))
			return nil
		}
		d, err := ParseDelay(raw.Delay)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*in = Input(harness.After(d, data))
		return nil
	default:
		return fmt.Errorf("line %d: input must be a string or a mapping", node.Line)
	}
}

// Duration is a YAML delay value, see ParseDelay
type Duration time.Duration

// UnmarshalYAML decodes a duration string or a number of milliseconds
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseDelay(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(parsed)
	return nil
}
