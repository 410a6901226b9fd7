package ui

import (
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Active prayer / countdown target
	colorActive = color.New(color.FgCyan, color.Bold)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Completed fasting days
	colorDone = color.New(color.FgGreen)

	// Special days (Kadir, Arife)
	colorSpecial = color.New(color.FgYellow)

	// Bayram days
	colorBayram = color.New(color.FgMagenta)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

func formatActive(s string) string  { return colorActive.Sprint(s) }
func formatHeader(s string) string  { return colorHeader.Sprint(s) }
func formatDone(s string) string    { return colorDone.Sprint(s) }
func formatSpecial(s string) string { return colorSpecial.Sprint(s) }
func formatBayram(s string) string  { return colorBayram.Sprint(s) }
func formatMuted(s string) string   { return colorMuted.Sprint(s) }

// wrap splits text into lines no wider than width, breaking on spaces.
func wrap(text string, width int) []string {
	if width < 10 {
		width = 10
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := ""
	for _, word := range words {
		switch {
		case line == "":
			line = word
		case len([]rune(line))+1+len([]rune(word)) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	lines = append(lines, line)

	return lines
}
