package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	colorPrimary = lipgloss.Color("#00BFFF") // Deep sky blue
	colorDanger  = lipgloss.Color("#FF6B6B") // Red for errors
	colorSuccess = lipgloss.Color("#6BCF7F") // Green
	colorMuted   = lipgloss.Color("#6C757D") // Gray
	colorBorder  = lipgloss.Color("#4A90E2") // Border blue

	// Title styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	// Search box
	searchBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	activeSearchBoxStyle = searchBoxStyle.
				BorderForeground(colorPrimary)

	// Suggestion list
	suggestionStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	highlightedSuggestionStyle = lipgloss.NewStyle().
					PaddingLeft(1).
					Border(lipgloss.NormalBorder(), false, false, false, true).
					BorderForeground(colorPrimary).
					Foreground(colorPrimary).
					Bold(true)

	// Status surface
	statusStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			PaddingLeft(1)

	statusErrorStyle = lipgloss.NewStyle().
				Foreground(colorDanger).
				Bold(true).
				PaddingLeft(1)

	// Help text style
	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Utility styles
	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	errorTitleStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)
)
