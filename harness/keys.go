package harness

import (
	"fmt"
	"sort"
	"strings"
)

// Terminal key sequences for composing inputs.
// See https://www.tldp.org/LDP/abs/html/escapingsection.html
const (
	Down      = "\x1b[B"
	Up        = "\x1b[A"
	Right     = "\x1b[C"
	Left      = "\x1b[D"
	Enter     = "\r"
	Space     = " "
	Tab       = "\t"
	Backspace = "\x7f"
	Escape    = "\x1b"
	CtrlC     = "\x03"
	CtrlD     = "\x04"
)

var keys = map[string]string{
	"down":      Down,
	"up":        Up,
	"right":     Right,
	"left":      Left,
	"enter":     Enter,
	"return":    Enter,
	"space":     Space,
	"tab":       Tab,
	"backspace": Backspace,
	"esc":       Escape,
	"escape":    Escape,
	"ctrl-c":    CtrlC,
	"ctrl-d":    CtrlD,
}

// Key returns the sequence for a named key (case-insensitive)
func Key(name string) (string, error) {
	seq, ok := keys[strings.ToLower(name)]
	if !ok {
		return "", fmt.Errorf("unknown key: %s", name)
	}
	return seq, nil
}

// KeyNames returns all known key names in sorted order
func KeyNames() []string {
	names := make([]string, 0, len(keys))
	for name := range keys {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
