package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/timvw/clidrive/harness"
	"github.com/timvw/clidrive/internal/cli"
	"github.com/timvw/clidrive/scenario"
)

var (
	scenarioRoot string
	scenarioKeep bool
)

// slogLogf routes scenario runner progress to the debug log
type slogLogf struct {
	logger *slog.Logger
}

func (l slogLogf) Logf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

var scenarioCmd = &cobra.Command{
	Use:     "scenario <file.yaml>...",
	Aliases: []string{"sc"},
	Short:   "Run the scenarios described in YAML files",
	Long: `Run the scenarios described in YAML files.

Every scenario runs in its own fresh working directory and is reported as a
row of the summary table. clidrive exits with 1 when any scenario fails.

  scenarios:
    - name: answers yes
      command: clidrive demo confirm
      inputs: ["y", "<enter>"]
      expect:
        stdout: ["You said: y"]`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := newHarness(cmd)
		if err != nil {
			return err
		}

		runner := scenario.NewRunner(slogLogf{logger: logger}, h, scenarioRoot)
		runner.Keep = scenarioKeep

		var rows []cli.ScenarioRow
		for _, path := range args {
			scenarios, err := scenario.Load(appFs, path)
			if err != nil {
				return err
			}

			for _, s := range scenarios {
				applyConfig(&s.Spec)

				start := time.Now()
				result, err := runner.Run(s)
				row := cli.ScenarioRow{
					File:     filepath.Base(path),
					Name:     s.Name,
					Duration: time.Since(start),
					Err:      err,
				}
				if result != nil {
					row.ExitCode = result.ExitCode
				}
				if err != nil {
					logger.Info("scenario failed", slog.String("scenario", s.Name), slog.Any("error", err))
				}
				rows = append(rows, row)
			}
		}

		cli.PrintScenarioTable(cmd.OutOrStdout(), rows)
		for _, row := range rows {
			if !row.Passed() {
				return &exitCodeError{code: 1}
			}
		}
		return nil
	},
}

func init() {
	scenarioCmd.Flags().StringVar(&scenarioRoot, "root", "", "Directory scenario working directories are created in (default: the OS temp dir)")
	scenarioCmd.Flags().BoolVar(&scenarioKeep, "keep", false, "Keep scenario working directories")
}

// applyConfig fills the fields a scenario left empty from the loaded config
func applyConfig(spec *harness.Spec) {
	if spec.Interpreter == "" {
		spec.Interpreter = appConfig.Interpreter
	}
	if spec.ScriptExt == "" {
		spec.ScriptExt = appConfig.Extension
	}
	if spec.Delay == 0 {
		spec.Delay = appConfig.Delay
	}
	spec.TTY = spec.TTY || appConfig.TTY
	spec.Debug = appConfig.Debug
}
