package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ColorTheme represents a set of colors for the CLI
type ColorTheme struct {
	Name    string
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
	Logo    lipgloss.TerminalColor
}

// DefaultTheme uses the terminal's standard palette.
var DefaultTheme = ColorTheme{
	Name:    "default",
	Success: lipgloss.Color("2"),
	Warning: lipgloss.Color("3"),
	Info:    lipgloss.Color("4"),
	Logo:    lipgloss.Color("11"),
}

// Current active theme
var CurrentTheme = DefaultTheme

// style returns a style for w. Colors are dropped when w is not a terminal
// or NO_COLOR is set.
func style(w io.Writer, color lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewRenderer(w).NewStyle().Foreground(color)
}

// PrintSuccess prints a success message
func PrintSuccess(w io.Writer, message string) {
	fmt.Fprintln(w, style(w, CurrentTheme.Success).Render("✓ "+message))
}

// PrintWarning prints a warning message
func PrintWarning(w io.Writer, message string) {
	fmt.Fprintln(w, style(w, CurrentTheme.Warning).Render("! "+message))
}

// PrintInfo prints an informational message
func PrintInfo(w io.Writer, message string) {
	fmt.Fprintln(w, style(w, CurrentTheme.Info).Render("i "+message))
}

// DrawLogo generates the ASCII art logo for brightd, styled for stdout.
func DrawLogo() string {
	logo := strings.Join([]string{
		`   \ | /   _          _       _     _      _ `,
		` -- (O) -- | |__  _ __(_) __ _| |__ | |_  __| |`,
		`   / | \   | '_ \| '__| |/ _' | '_ \| __|/ _' |`,
		`           | |_) | |  | | (_| | | | | |_| (_| |`,
		`           |_.__/|_|  |_|\__, |_| |_|\__|\__,_|`,
		`                         |___/                 `,
	}, "\n")
	return style(os.Stdout, CurrentTheme.Logo).Bold(true).Render(logo)
}
