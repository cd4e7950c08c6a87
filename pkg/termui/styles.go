// Package termui is the terminal front end: dashboard tables, the chat UI and form prompts.
package termui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("#2563EB")
	botColor     = lipgloss.Color("#10B981")
	mutedColor   = lipgloss.Color("#9CA3AF")
	errorColor   = lipgloss.Color("#EF4444")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	userStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	botStyle = lipgloss.NewStyle().
			Foreground(botColor).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(botColor)

	chatWindowStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor)
)
