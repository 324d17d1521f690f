package cli

import "github.com/charmbracelet/lipgloss"

// ErrorStyle renders messages printed to stderr on failure.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FF0000")).
	Bold(true)
