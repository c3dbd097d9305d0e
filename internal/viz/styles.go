package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusPaused = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	StatusFrozen = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ccff"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	HelpPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 2)

	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// ProgressBar renders a bar; over 1 means the garden has grown past its
// target density.
func ProgressBar(percent float64, width int) string {
	filled := int(percent / 2 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	if percent > 1.2 {
		return SparkLow.Render(bar)
	} else if percent > 1 {
		return SparkMid.Render(bar)
	}
	return SparkHigh.Render(bar)
}

// Swatch renders a colored block per palette entry.
func Swatch(hexes []string) string {
	var b strings.Builder
	for _, h := range hexes {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(h)).Render("■"))
	}
	return b.String()
}
