package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/timvw/clidrive/harness"
	"github.com/timvw/clidrive/internal/cli"
	"github.com/timvw/clidrive/internal/config"
)

var (
	version    = "dev"
	appConfig  config.Config
	appFs      = afero.NewOsFs()
	logger     = slog.New(slog.NewTextHandler(os.Stderr, nil))
	configFile string
	jsonOutput bool
)

// exitCodeError makes the process exit with code without printing anything
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func main() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	var exitErr *exitCodeError
	if errors.As(err, &exitErr) {
		if exitErr.code < 0 {
			os.Exit(1)
		}
		os.Exit(exitErr.code)
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}

var rootCmd = &cobra.Command{
	Use:   "clidrive",
	Short: "Drive interactive command-line programs like a person would",
	Long: `Drive interactive command-line programs like a person would.

clidrive starts a program, types scripted inputs into it with delays
between keystrokes, records everything it writes on stdout and stderr,
and reports how it exited.

Settings are read from --config, then CLIDRIVE_* environment variables,
then flags.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	cobra.OnInitialize(initConfig, initLogger)

	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Echo child output, keep temporary scripts and log debug events")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Log in JSON")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to a YAML config file")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scenarioCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	cfg, err := config.Load(viper.GetViper(), appFs, configFile)
	if err != nil {
		cli.LogFatal(logger, "failed to load config", err, "config", configFile)
	}
	if jsonOutput {
		cfg.Log.Format = "json"
	}
	appConfig = cfg
}

func initLogger() {
	logger = cli.NewLogger(os.Stderr, appConfig.Debug, appConfig.Log.Format == "json")
}

// newHarness builds a harness from the loaded configuration, echoing debug
// output to the command's writers
func newHarness(cmd *cobra.Command) (*harness.Harness, error) {
	opts, err := appConfig.HarnessOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts,
		harness.WithLogger(logger),
		harness.WithConsole(cmd.OutOrStdout(), cmd.ErrOrStderr()),
	)
	return harness.New(opts...), nil
}

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List key names usable as <name> in inputs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.PrintKeys(cmd.OutOrStdout(), harness.KeyNames())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "clidrive version %s\n", version)
	},
}
