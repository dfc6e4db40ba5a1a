package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// StyleManager encapsulates the styles used by the watch view and the
// languages table.
type StyleManager struct {
	Title   lipgloss.Style
	Path    lipgloss.Style
	Written lipgloss.Style
	Clean   lipgloss.Style
	Err     lipgloss.Style
	Dim     lipgloss.Style
	Header  lipgloss.Style
	Cell    lipgloss.Style
}

// DefaultStyles returns a StyleManager with default styles
func DefaultStyles() *StyleManager {
	return &StyleManager{
		Title:   lipgloss.NewStyle().Bold(true),
		Path:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Written: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Clean:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Err:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		Cell:    lipgloss.NewStyle(),
	}
}

// Global style manager instance
var styles = DefaultStyles()
