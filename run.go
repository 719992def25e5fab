package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/timvw/clidrive/harness"
	"github.com/timvw/clidrive/internal/cli"
	"github.com/timvw/clidrive/scenario"
)

var (
	runScriptFile string
	runDir        string
	runInputs     []string
	runEnv        []string
	runQuiet      bool
)

var runCmd = &cobra.Command{
	Use:   "run [flags] [command]",
	Short: "Run a command or script and type inputs into it",
	Long: `Run a command or script and type inputs into it.

The command line is run through the configured shell. With --script-file
the file is copied to a temporary script and run with --interpreter.

Each --input is typed after the current delay. Key names in angle brackets
are replaced by their sequences (see 'clidrive keys'). The form
@<delay>:<text> waits <delay> instead and makes it the new default:

  clidrive run -i '@1s:<down>' -i '<enter>' -- node menu.js

Output is streamed as it arrives. clidrive exits with the child's code.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := buildRunSpec(args)
		if err != nil {
			return err
		}
		if !spec.Debug {
			spec.Stdout = harness.WriterSink{W: cmd.OutOrStdout()}
			spec.Stderr = harness.WriterSink{W: cmd.ErrOrStderr()}
		}

		h, err := newHarness(cmd)
		if err != nil {
			return err
		}

		result, err := h.Run(spec)
		var exitErr *harness.ExitError
		if err != nil && !errors.As(err, &exitErr) {
			return err
		}

		if !runQuiet {
			cli.PrintResult(cmd.ErrOrStderr(), result)
		}
		if exitErr != nil {
			logger.Debug(exitErr.Message)
			return &exitCodeError{code: result.ExitCode}
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&runScriptFile, "script-file", "s", "", "Run this file with the interpreter instead of a command")
	runCmd.Flags().String("interpreter", harness.DefaultInterpreter, "Interpreter for --script-file")
	runCmd.Flags().String("ext", harness.DefaultScriptExt, "Extension of the temporary script")
	runCmd.Flags().StringVar(&runDir, "cwd", "", "Working directory (default: the temp dir)")
	runCmd.Flags().StringArrayVarP(&runInputs, "input", "i", nil, "Input to type, repeatable")
	runCmd.Flags().StringArrayVarP(&runEnv, "env", "e", nil, "KEY=VALUE added to the environment, repeatable")
	runCmd.Flags().Duration("delay", harness.DefaultDelay, "Default wait before each input")
	runCmd.Flags().Bool("tty", false, "Attach the child to a pseudo-terminal")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "Do not print the summary")

	_ = viper.BindPFlag("interpreter", runCmd.Flags().Lookup("interpreter"))
	_ = viper.BindPFlag("extension", runCmd.Flags().Lookup("ext"))
	_ = viper.BindPFlag("delay", runCmd.Flags().Lookup("delay"))
	_ = viper.BindPFlag("tty", runCmd.Flags().Lookup("tty"))
}

// buildRunSpec turns the run arguments and the loaded config into a Spec
func buildRunSpec(args []string) (harness.Spec, error) {
	inputs, err := parseInputs(runInputs)
	if err != nil {
		return harness.Spec{}, err
	}

	for _, kv := range runEnv {
		if !strings.Contains(kv, "=") {
			return harness.Spec{}, fmt.Errorf("invalid --env %q: expected KEY=VALUE", kv)
		}
	}

	spec := harness.Spec{
		Command:     strings.Join(args, " "),
		Interpreter: appConfig.Interpreter,
		ScriptExt:   appConfig.Extension,
		Dir:         runDir,
		Env:         runEnv,
		Inputs:      inputs,
		Delay:       appConfig.Delay,
		TTY:         appConfig.TTY,
		Debug:       appConfig.Debug,
	}

	if runScriptFile != "" {
		if len(args) > 0 {
			return harness.Spec{}, errors.New("a command and --script-file cannot be combined")
		}
		data, err := afero.ReadFile(appFs, runScriptFile)
		if err != nil {
			return harness.Spec{}, fmt.Errorf("failed to read script: %w", err)
		}
		spec.Script = string(data)
	}

	if spec.Command == "" && spec.Script == "" {
		return harness.Spec{}, fmt.Errorf("nothing to run\nUse 'clidrive run <command>' or 'clidrive run --script-file <file>'")
	}
	return spec, nil
}

func parseInputs(raw []string) ([]harness.Input, error) {
	inputs := make([]harness.Input, 0, len(raw))
	for _, s := range raw {
		in, err := scenario.ParseInput(s)
		if err != nil {
			return nil, fmt.Errorf("invalid --input %q: %w", s, err)
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}
