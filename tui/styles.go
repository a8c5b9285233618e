// tui/styles.go
package tui

import "github.com/charmbracelet/lipgloss"

var (
	FocusedStyle  = lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color("69")).Padding(0, 1)
	BlurredStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
	ErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5733"))
	HeaderStyle   = lipgloss.NewStyle().Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	SelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	HelpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	// HazardStyle marks hazardous asteroids in plain-text output.
	HazardStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5733"))
)
