package cli

import "github.com/charmbracelet/lipgloss"

// Terminal styles for batch progress and summaries.
var (
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")) // Green
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")) // Red
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")) // Medium gray
)

// okMark and failMark prefix per-locality progress lines.
var (
	okMark   = okStyle.Render("✓")
	failMark = failStyle.Render("✗")
)
