package views

import (
	"github.com/Akashdeep-Patra/zgrid/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// renderEmpty draws a centred empty-state message with a muted hint below.
func renderEmpty(styles ui.Styles, width, height int, title, hint string) string {
	msg := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Foreground(styles.Theme.TextMuted).Bold(true).Render(title),
		lipgloss.NewStyle().Foreground(styles.Theme.TextSubtle).Render(hint),
	)
	return ui.PlaceCentre(width, height, msg)
}
