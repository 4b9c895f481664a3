package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).MarginLeft(1)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff00"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00afff"))
	dirStyle      = lipgloss.NewStyle().Bold(true)
	statusStyle   = lipgloss.NewStyle().Faint(true).MarginLeft(1)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")).MarginLeft(1)
	helpStyle     = lipgloss.NewStyle().Faint(true).MarginLeft(1)
)
