// Package cli provides styled terminal output for message previews.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// TitleStyle is used for preview section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFB454"))

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	// WarningStyle marks previews of messages that would not be sent.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	// BoxStyle frames a rendered message body.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(0, 1)
)
