package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	inkDark  = lipgloss.Color("#1e1e2e")
	inkLight = lipgloss.Color("#eff1f5")
)

// Contrast picks a readable text colour for the given hex background.
// Unparseable input gets the light ink.
func Contrast(hex string) lipgloss.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return inkLight
	}
	if l, _, _ := c.Lab(); l > 0.6 {
		return inkDark
	}
	return inkLight
}

// Swatch renders a small block filled with the given hex colour.
func Swatch(hex string) string {
	if _, err := colorful.Hex(hex); err != nil {
		return "  "
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
}
