package scenario

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/timvw/clidrive/harness"
)

// File is a YAML document holding scenario definitions
type File struct {
	Scenarios []Definition `yaml:"scenarios" validate:"required,min=1,dive"`
}

// Definition is the YAML form of a Scenario
type Definition struct {
	Name        string            `yaml:"name"        validate:"required"`
	Description string            `yaml:"description"`
	Command     string            `yaml:"command"     validate:"required_without=Script"`
	Script      string            `yaml:"script"      validate:"required_without=Command"`
	Interpreter string            `yaml:"interpreter"`
	Extension   string            `yaml:"extension"`
	Dir         string            `yaml:"dir"`
	Delay       Duration          `yaml:"delay"`
	TTY         bool              `yaml:"tty"`
	Env         map[string]string `yaml:"env"`
	Files       map[string]string `yaml:"files"`
	Inputs      []Input           `yaml:"inputs"`
	Expect      Expect            `yaml:"expect"`
}

// Expect lists the checks a scenario result must pass
type Expect struct {
	ExitCode      *int     `yaml:"exit_code"`
	Stdout        []string `yaml:"stdout"`
	StdoutNot     []string `yaml:"stdout_not"`
	StdoutMatches []string `yaml:"stdout_matches"`
	Stderr        []string `yaml:"stderr"`
	StderrEmpty   bool     `yaml:"stderr_empty"`
	Files         []string `yaml:"files"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads and parses a scenario file from fs
func Load(fs afero.Fs, path string) ([]Scenario, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenarios, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return scenarios, nil
}

// Parse decodes and validates a scenario document
func Parse(data []byte) ([]Scenario, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse scenarios: %w", err)
	}
	if err := validate.Struct(file); err != nil {
		return nil, fmt.Errorf("invalid scenarios: %w", err)
	}

	scenarios := make([]Scenario, 0, len(file.Scenarios))
	for _, def := range file.Scenarios {
		scenarios = append(scenarios, def.Scenario())
	}
	return scenarios, nil
}

// Scenario converts the definition into a runnable Scenario.
// Without an explicit exit_code the scenario expects success.
func (d Definition) Scenario() Scenario {
	inputs := make([]harness.Input, 0, len(d.Inputs))
	for _, in := range d.Inputs {
		inputs = append(inputs, harness.Input(in))
	}

	s := Scenario{
		Name:        d.Name,
		Description: d.Description,
		Spec: harness.Spec{
			Command:     d.Command,
			Script:      d.Script,
			Interpreter: d.Interpreter,
			ScriptExt:   d.Extension,
			Dir:         d.Dir,
			Env:         envList(d.Env),
			Inputs:      inputs,
			Delay:       time.Duration(d.Delay),
			TTY:         d.TTY,
		},
	}

	if len(d.Files) > 0 {
		files := d.Files
		s.Setup = func(f *Fixture) error {
			for _, name := range sortedKeys(files) {
				if err := f.WriteFile(name, files[name]); err != nil {
					return err
				}
			}
			return nil
		}
	}

	code := 0
	if d.Expect.ExitCode != nil {
		code = *d.Expect.ExitCode
	}
	s.Verify = append(s.Verify, AssertExitCode(code))
	for _, want := range d.Expect.Stdout {
		s.Verify = append(s.Verify, AssertStdoutContains(want))
	}
	for _, unwanted := range d.Expect.StdoutNot {
		s.Verify = append(s.Verify, AssertStdoutNotContains(unwanted))
	}
	for _, expr := range d.Expect.StdoutMatches {
		s.Verify = append(s.Verify, AssertStdoutMatches(expr))
	}
	for _, want := range d.Expect.Stderr {
		s.Verify = append(s.Verify, AssertStderrContains(want))
	}
	if d.Expect.StderrEmpty {
		s.Verify = append(s.Verify, AssertStderrEmpty())
	}
	for _, path := range d.Expect.Files {
		s.Verify = append(s.Verify, AssertFileExists(path))
	}
	return s
}

func envList(env map[string]string) []string {
	list := make([]string, 0, len(env))
	for _, k := range sortedKeys(env) {
		list = append(list, k+"="+env[k])
	}
	return list
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
