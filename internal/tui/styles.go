package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/berth-dev/vibe/internal/tracker"
)

const (
	primaryColor   = "#7C3AED" // Purple
	secondaryColor = "#10B981" // Green
	warningColor   = "#F59E0B" // Amber
	errorColor     = "#EF4444" // Red
	dimColor       = "#6B7280" // Gray
)

// Style variables for consistent TUI rendering.
var (
	// BoxStyle provides a rounded border box with primary color.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(primaryColor)).
			Padding(1, 2)

	// ReminderBoxStyle frames a due reminder.
	ReminderBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(warningColor)).
				Padding(0, 1)

	// TitleStyle renders titles in primary color with bold.
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// DimStyle renders dim/muted text.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(dimColor))

	// SuccessStyle renders success messages in green.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(secondaryColor))

	// ErrorStyle renders error messages in red.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(errorColor))

	// WarningStyle renders warning messages in amber.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(warningColor))

	// CurrentPhaseStyle highlights the active phase in the phase strip.
	CurrentPhaseStyle = lipgloss.NewStyle().
				Background(lipgloss.Color(primaryColor)).
				Foreground(lipgloss.Color("#FFFFFF")).
				Padding(0, 1)

	// OtherPhaseStyle renders phases other than the active one.
	OtherPhaseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(dimColor)).
			Padding(0, 1)
)

// PhaseStrip renders every phase in order with current highlighted and
// phases already passed marked done.
func PhaseStrip(current tracker.Phase) string {
	parts := make([]string, 0, len(tracker.Phases()))
	for _, p := range tracker.Phases() {
		switch {
		case p == current:
			parts = append(parts, CurrentPhaseStyle.Render(p.Title()))
		case p < current:
			parts = append(parts, OtherPhaseStyle.Render(SuccessStyle.Render("✓ ")+p.Title()))
		default:
			parts = append(parts, OtherPhaseStyle.Render(p.Title()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}
