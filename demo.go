package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	demoFailCode   int
	demoAccessible bool
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Small interactive programs to drive with clidrive",
	Long: `Small interactive programs to drive with clidrive.

They are the fixtures of clidrive's own end-to-end tests and a quick way to
try inputs and scenarios:

  clidrive run -i y -i '<enter>' -- clidrive demo confirm`,
}

var demoConfirmCmd = &cobra.Command{
	Use:   "confirm",
	Short: "Ask \"Continue? (y/n)\" and print the answer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprint(out, "Continue? (y/n) ")

		answer, err := newLineReader(cmd.InOrStdin()).ReadLine()
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		fmt.Fprintf(out, "You said: %s\n", strings.TrimSpace(answer))
		return nil
	},
}

var demoSurveyCmd = &cobra.Command{
	Use:   "survey",
	Short: "Ask for a name and a confirmation with a huh form",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			name string
			ok   bool
		)

		accessible := demoAccessible || !isTerminal(cmd.InOrStdin())
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("What's your full name?").
					Value(&name),
				huh.NewConfirm().
					Title("Save your answers?").
					Value(&ok),
			),
		).
			WithAccessible(accessible).
			WithInput(cmd.InOrStdin()).
			WithOutput(cmd.OutOrStdout())

		if err := form.Run(); err != nil {
			return fmt.Errorf("survey aborted: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Your name is %q\n", strings.TrimSpace(name))
		if ok {
			fmt.Fprintln(out, "Answers saved")
		} else {
			fmt.Fprintln(out, "Answers discarded")
		}
		return nil
	},
}

var demoFailCmd = &cobra.Command{
	Use:   "fail",
	Short: "Write to both streams and exit with a non-zero code",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), "Something bad is about to happen")
		fmt.Fprintln(cmd.ErrOrStderr(), "Something bad happened")
		return &exitCodeError{code: demoFailCode}
	},
}

var demoStderrCmd = &cobra.Command{
	Use:   "stderr",
	Short: "Write to both streams and exit with 0",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "Something good happened")
		fmt.Fprintln(cmd.ErrOrStderr(), "Something bad happened")
	},
}

var demoCwdCmd = &cobra.Command{
	Use:   "cwd",
	Short: "Print the working directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), dir)
		return nil
	},
}

var demoEchoCmd = &cobra.Command{
	Use:   "echo",
	Short: "Print every line read until end of input",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		lines := newLineReader(cmd.InOrStdin())
		for {
			line, err := lines.ReadLine()
			if errors.Is(err, io.EOF) {
				if line != "" {
					fmt.Fprintf(out, "> %s\n", line)
				}
				fmt.Fprintln(out, "EOF")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "> %s\n", line)
		}
	},
}

func init() {
	demoFailCmd.Flags().IntVar(&demoFailCode, "code", 1, "Exit code")
	demoSurveyCmd.Flags().BoolVar(&demoAccessible, "accessible", false, "Use line prompts even on a terminal")

	demoCmd.AddCommand(demoConfirmCmd)
	demoCmd.AddCommand(demoSurveyCmd)
	demoCmd.AddCommand(demoFailCmd)
	demoCmd.AddCommand(demoStderrCmd)
	demoCmd.AddCommand(demoCwdCmd)
	demoCmd.AddCommand(demoEchoCmd)
}

// lineReader reads lines ended by "\r", "\n" or "\r\n". Enter in a raw
// terminal sends "\r", so both must end a line without waiting for more input.
type lineReader struct {
	r      *bufio.Reader
	lastCR bool
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

// ReadLine returns the next line without its terminator. At end of input it
// returns the unterminated remainder, if any, together with io.EOF.
func (l *lineReader) ReadLine() (string, error) {
	var sb strings.Builder
	for {
		b, err := l.r.ReadByte()
		if err != nil {
			return sb.String(), err
		}
		if b == '\n' && l.lastCR && sb.Len() == 0 {
			l.lastCR = false
			continue
		}
		l.lastCR = b == '\r'
		if b == '\r' || b == '\n' {
			return sb.String(), nil
		}
		sb.WriteByte(b)
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
