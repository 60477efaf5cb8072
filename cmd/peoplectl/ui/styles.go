// Package ui is the interactive terminal front end of peoplectl. It has two
// top-level views, the login page and the persons page, mirroring the token
// lifecycle: token absent shows login, token present shows persons, and any
// 401 from the backend drops back to login.
package ui

import "github.com/charmbracelet/lipgloss"

// Semantic colors
var (
	colorPrimary     = lipgloss.Color("#2196F3")
	colorDestructive = lipgloss.Color("#e53935")
	colorSuccess     = lipgloss.Color("#8BC34A")
	colorMuted       = lipgloss.Color("240")
)

// Styles holds the lipgloss styles shared by every page.
type Styles struct {
	Header    lipgloss.Style
	Title     lipgloss.Style
	Help      lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Selected  lipgloss.Style
	Row       lipgloss.Style
	FormLabel lipgloss.Style
	Ref       lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Padding(0, 1),
		Title:     lipgloss.NewStyle().Bold(true),
		Help:      lipgloss.NewStyle().Foreground(colorMuted),
		Error:     lipgloss.NewStyle().Foreground(colorDestructive).Bold(true),
		Success:   lipgloss.NewStyle().Foreground(colorSuccess).Bold(true),
		Selected:  lipgloss.NewStyle().Foreground(colorPrimary).Bold(true),
		Row:       lipgloss.NewStyle(),
		FormLabel: lipgloss.NewStyle().Width(8),
		Ref:       lipgloss.NewStyle().Foreground(colorMuted),
	}
}
