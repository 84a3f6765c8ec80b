package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/accesstechnology-mike/stressslider/internal/logging"
)

// DebugPanel shows the most recent log records under the widget
type DebugPanel struct {
	ring *logging.Ring // nil when debug mode is off
}

// NewDebugPanel creates a debug panel; a nil ring disables it
func NewDebugPanel(ring *logging.Ring) DebugPanel {
	return DebugPanel{ring: ring}
}

// IsEnabled returns whether debug mode is enabled
func (d DebugPanel) IsEnabled() bool {
	return d.ring != nil
}

// Render renders the last height-4 lines in a bordered box
func (d DebugPanel) Render(width, height int) string {
	if !d.IsEnabled() {
		return ""
	}

	title := lipgloss.NewStyle().
		Foreground(ColorYellow).
		Bold(true).
		Render("DEBUG")

	contentHeight := height - 4
	if contentHeight < 1 {
		contentHeight = 1
	}

	all := d.ring.Lines()
	startIdx := 0
	if len(all) > contentHeight {
		startIdx = len(all) - contentHeight
	}

	maxLen := width - 4
	if maxLen < 10 {
		maxLen = 10
	}
	var lines []string
	for _, line := range all[startIdx:] {
		lines = append(lines, truncate(line, maxLen))
	}
	for len(lines) < contentHeight {
		lines = append(lines, "")
	}

	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorYellow).
		Padding(0, 1).
		Render(title + "\n" + strings.Join(lines, "\n"))
}

// truncate shortens s to max runes, marking the cut with "..."
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
