package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/vizlayout/pkg/layout"
	"github.com/matzehuels/vizlayout/pkg/replay"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
	colorChip   = lipgloss.Color("24")  // Deep blue - chip background
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleError for failures.
	StyleError = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)

	styleChip       = lipgloss.NewStyle().Background(colorChip).Foreground(colorWhite)
	styleChipTarget = lipgloss.NewStyle().Background(colorCyan).Foreground(colorWhite).Bold(true)
	styleChipGhost  = lipgloss.NewStyle().Background(colorYellow).Foreground(lipgloss.Color("0"))
	styleAxisLabel  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleAxisTarget = lipgloss.NewStyle().Foreground(colorCyan).Bold(true).Underline(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconSkip    = "·"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printError prints an error message.
func printError(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+msg)
}

// printWarning prints a warning message.
func printWarning(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(w io.Writer, description, cmd string) {
	fmt.Fprintln(w, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Layout Output
// =============================================================================

// printLayout prints one line per axis with its chips.
func printLayout(w io.Writer, l layout.Layout) {
	for _, a := range layout.Axes {
		dims := l.Dimensions(a)
		if len(dims) == 0 {
			printKeyValue(w, a.String(), StyleDim.Render("(empty)"))
			continue
		}
		chips := make([]string, len(dims))
		for i, id := range dims {
			chips[i] = styleChip.Render(" " + id + " ")
		}
		printKeyValue(w, a.String(), strings.Join(chips, " "))
	}
}

// =============================================================================
// Replay Output
// =============================================================================

// statusIcon renders the icon for a gesture outcome.
func statusIcon(s replay.Status) string {
	switch s {
	case replay.StatusApplied:
		return styleIconSuccess.Render(iconSuccess)
	case replay.StatusRejected:
		return styleIconError.Render(iconError)
	case replay.StatusCancelled:
		return styleIconWarning.Render(iconWarning)
	}
	return styleIconInfo.Render(iconSkip)
}

// outcomeTable renders the gestures of a replay as a table.
func outcomeTable(res *replay.Result) string {
	rows := make([][]string, 0, len(res.Outcomes))
	for i, o := range res.Outcomes {
		result := string(o.Status)
		if o.Command != nil {
			if cmd, err := o.Command.Command(); err == nil {
				result = fmt.Sprint(cmd)
			}
		}
		if o.Err != nil {
			result = string(o.Code)
		}
		target := o.Target
		if target == "" {
			target = "—"
		}
		rows = append(rows, []string{fmt.Sprint(i + 1), statusIcon(o.Status), o.Gesture, target, result})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "", "Gesture", "Target", "Result").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	return t.Render()
}

// printReplay prints the outcome table, the final layout and a summary.
func printReplay(w io.Writer, res *replay.Result) {
	fmt.Fprintln(w, StyleTitle.Render(res.Scenario))
	fmt.Fprintln(w, outcomeTable(res))
	printLayout(w, res.Final)

	s := res.Stats
	parts := []string{
		fmt.Sprintf("%d gestures", s.Gestures),
		fmt.Sprintf("%d applied", s.Applied),
	}
	if s.Ignored > 0 {
		parts = append(parts, fmt.Sprintf("%d ignored", s.Ignored))
	}
	if s.Cancelled > 0 {
		parts = append(parts, fmt.Sprintf("%d cancelled", s.Cancelled))
	}
	if s.Rejected > 0 {
		parts = append(parts, StyleError.Render(fmt.Sprintf("%d rejected", s.Rejected)))
	}
	fmt.Fprintln(w, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}
