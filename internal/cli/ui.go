package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/timvw/clidrive/harness"
)

// Theme colors for terminal UI rendering.
var (
	Purple = lipgloss.Color("99")
	Gray   = lipgloss.Color("245")
	White  = lipgloss.Color("15")
	Teal   = lipgloss.Color("#06ffa5")
	Red    = lipgloss.Color("196")
)

var (
	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(Purple)
	valueStyle  = lipgloss.NewStyle().Foreground(Teal)
	passStyle   = lipgloss.NewStyle().Bold(true).Foreground(Teal)
	failStyle   = lipgloss.NewStyle().Bold(true).Foreground(Red)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(Purple)

	// DimStyle is a muted style for secondary text.
	DimStyle = lipgloss.NewStyle().Foreground(Gray)
)

// maxCellWidth caps table columns; longer cells are truncated
const maxCellWidth = 60

// ScenarioRow is one line of the scenario report
type ScenarioRow struct {
	File     string
	Name     string
	ExitCode int
	Duration time.Duration
	Err      error
}

// Passed reports whether the scenario ran and all its assertions held
func (r ScenarioRow) Passed() bool {
	return r.Err == nil
}

// PrintKV prints labeled key-value pairs on a single indented line.
// Arguments alternate between labels and values.
func PrintKV(w io.Writer, pairs ...string) {
	if len(pairs)%2 != 0 || len(pairs) == 0 {
		return
	}

	rendered := make([]string, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		rendered = append(rendered, labelStyle.Render(pairs[i]+":")+" "+valueStyle.Render(pairs[i+1]))
	}
	fmt.Fprintln(w, "  "+strings.Join(rendered, "    "))
}

// PrintResult prints the summary line of a harness run
func PrintResult(w io.Writer, r *harness.Result) {
	status := passStyle.Render("ok")
	if !r.Success() {
		status = failStyle.Render("failed")
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s %s\n", status, DimStyle.Render(r.Command))
	PrintKV(w,
		"Exit code", strconv.Itoa(r.ExitCode),
		"Duration", FormatDuration(r.Duration),
		"Stdout chunks", strconv.Itoa(len(r.Output)),
		"Stderr chunks", strconv.Itoa(len(r.Errors)),
	)
	if r.ScriptPath != "" {
		PrintKV(w, "Script", r.ScriptPath)
	}
}

// PrintScenarioTable prints one row per scenario followed by a totals line
func PrintScenarioTable(w io.Writer, rows []ScenarioRow) {
	headers := []string{"STATUS", "FILE", "SCENARIO", "EXIT", "DURATION", "ERROR"}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		status, errMsg := "pass", ""
		if !r.Passed() {
			status = "fail"
			errMsg = strings.Join(strings.Fields(r.Err.Error()), " ")
		}
		cells = append(cells, []string{
			status,
			r.File,
			r.Name,
			strconv.Itoa(r.ExitCode),
			FormatDuration(r.Duration),
			errMsg,
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range cells {
		for i, cell := range row {
			if len(cell) > maxCellWidth {
				row[i] = cell[:maxCellWidth-3] + "..."
				cell = row[i]
			}
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	const colGap = 2

	var hdr strings.Builder
	hdr.WriteString("  ")
	for i, h := range headers {
		hdr.WriteString(headerStyle.Render(fmt.Sprintf("%-*s", widths[i]+colGap, h)))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.TrimRight(hdr.String(), " "))

	passed := 0
	for i, row := range cells {
		style := failStyle
		if rows[i].Passed() {
			style = passStyle
			passed++
		}

		var line strings.Builder
		line.WriteString("  ")
		for c, cell := range row {
			padded := fmt.Sprintf("%-*s", widths[c]+colGap, cell)
			if c == 0 {
				line.WriteString(style.Render(padded))
				continue
			}
			line.WriteString(padded)
		}
		fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}

	summary := fmt.Sprintf("%d passed, %d failed", passed, len(rows)-passed)
	if passed == len(rows) {
		fmt.Fprintf(w, "\n  %s\n", passStyle.Render(summary))
	} else {
		fmt.Fprintf(w, "\n  %s\n", failStyle.Render(summary))
	}
}

// PrintKeys lists key names with their escaped sequences
func PrintKeys(w io.Writer, names []string) error {
	width := 0
	for _, name := range names {
		width = max(width, len(name)+2)
	}

	for _, name := range names {
		seq, err := harness.Key(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %s  %s\n",
			labelStyle.Render(fmt.Sprintf("%-*s", width, "<"+name+">")),
			valueStyle.Render(strconv.Quote(seq)),
		)
	}
	return nil
}

// FormatDuration rounds d for display: "850ms", "1.2s", "2m3s"
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	case d < time.Minute:
		return d.Round(100 * time.Millisecond).String()
	default:
		return d.Round(time.Second).String()
	}
}
