package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/dreamhouse/pkg/plan"
)

// stdout receives human-facing status lines. Tests swap it.
var stdout io.Writer = os.Stdout

// =============================================================================
// Styles
// =============================================================================

var (
	colorTeal  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorAmber = lipgloss.Color("220")
	colorRed   = lipgloss.Color("167")
	colorBlue  = lipgloss.Color("75")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")

	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorTeal)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorTeal)
	StyleLink      = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorAmber)

	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorTeal)
)

// status line markers
var (
	markSuccess = lipgloss.NewStyle().Foreground(colorGreen).Render("✓")
	markError   = lipgloss.NewStyle().Foreground(colorRed).Render("✗")
	markInfo    = lipgloss.NewStyle().Foreground(colorGray).Render("›")
	markArrow   = StyleDim.Render("→")
	separator   = StyleDim.Render(" · ")
)

// =============================================================================
// Status lines
// =============================================================================

func printLine(mark, format string, args ...any) {
	fmt.Fprintln(stdout, mark+" "+fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { printLine(markSuccess, format, args...) }
func printError(format string, args ...any)   { printLine(markError, format, args...) }
func printInfo(format string, args ...any)    { printLine(markInfo, format, args...) }

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+markArrow+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+StyleValue.Render(value))
}

func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Layout summary
// =============================================================================

// printStats prints the room mix of l on one line, e.g.
// "2 Bedroom · 1 Kitchen · Garden · fresh".
func printStats(l plan.Layout, cached bool) {
	fmt.Fprintln(stdout, "  "+layoutSummary(l, cached))
}

func layoutSummary(l plan.Layout, cached bool) string {
	var parts []string
	known := 0
	for _, t := range plan.RoomTypes {
		if n := l.RoomCount(t); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, t))
			known += n
		}
	}
	if other := len(l.Rooms) - known; other > 0 {
		parts = append(parts, fmt.Sprintf("%d other", other))
	}
	if len(parts) == 0 {
		parts = append(parts, "no rooms")
	}
	for _, e := range l.Extras {
		parts = append(parts, string(e.Type))
	}
	for i, p := range parts {
		parts[i] = StyleDim.Render(p)
	}

	status := lipgloss.NewStyle().Foreground(colorGray).Render("fresh")
	if cached {
		status = StyleSuccess.Render("cached")
	}
	return strings.Join(parts, separator) + separator + status
}
