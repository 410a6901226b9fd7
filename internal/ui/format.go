package ui

import (
	"fmt"
	"strings"
	"time"
)

// progressBar renders a fraction (0..1 of the phase remaining) as a bar.
func progressBar(fraction float64, width int) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	filled := int(fraction*float64(width) + 0.5)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %d%%", bar, int(fraction*100+0.5))
}

// formatRemaining renders a duration as "1 sa 23 dk" or "23 dk" for short
// spans.
func formatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Minutes())
	hours := total / 60
	mins := total % 60

	if hours == 0 {
		return fmt.Sprintf("%d dk", mins)
	}
	return fmt.Sprintf("%d sa %d dk", hours, mins)
}
