package components

import (
	"strings"

	"github.com/Akashdeep-Patra/zgrid/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// HelpEntry is a single key-description pair for the help overlay.
type HelpEntry struct {
	Key  string
	Desc string
}

// RenderHelp renders a full-screen help overlay.
func RenderHelp(styles ui.Styles, title string, sections map[string][]HelpEntry, width, height int) string {
	t := styles.Theme

	titleStr := lipgloss.NewStyle().
		Foreground(t.Primary).Bold(true).
		Align(lipgloss.Center).
		Width(width - 4).
		Render(title)

	var body strings.Builder
	body.WriteString(titleStr + "\n\n")

	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Underline(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Width(16).Align(lipgloss.Right)
	descStyle := lipgloss.NewStyle().Foreground(t.Text)

	// Deterministic order from a predefined list.
	order := []string{"Navigation", "Selection", "Tabs", "Grid", "Columns", "Rules", "General"}
	for _, section := range order {
		entries, ok := sections[section]
		if !ok || len(entries) == 0 {
			continue
		}
		body.WriteString(sectionStyle.Render(section) + "\n")
		for _, e := range entries {
			body.WriteString("  " + keyStyle.Render(e.Key) + "  " + descStyle.Render(e.Desc) + "\n")
		}
		body.WriteString("\n")
	}

	content := body.String()

	overlay := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Primary).
		Padding(1, 3).
		Width(min(70, width-4)).
		MaxHeight(height - 2).
		Render(content)

	return ui.PlaceCentre(width, height, overlay)
}

// GlobalHelpEntries returns the help entries for global keybindings.
// Keys are the defaults; the config file may rebind them.
func GlobalHelpEntries() map[string][]HelpEntry {
	return map[string][]HelpEntry{
		"Navigation": {
			{Key: "↑ ↓ ← →", Desc: "Move between cells"},
			{Key: "tab / shift+tab", Desc: "Next / previous column"},
			{Key: "pgup / pgdn", Desc: "Page up / down"},
			{Key: "home / end", Desc: "First / last row"},
			{Key: "enter", Desc: "Edit cell / confirm"},
			{Key: "esc", Desc: "Back / cancel"},
		},
		"Selection": {
			{Key: "shift+arrows", Desc: "Extend range"},
			{Key: "mouse drag", Desc: "Select range"},
			{Key: "ctrl+c", Desc: "Copy range (or whole table)"},
			{Key: "ctrl+v", Desc: "Paste at range / cell"},
			{Key: "ctrl+d", Desc: "Fill range from first row"},
		},
		"Tabs": {
			{Key: "] / [", Desc: "Next / previous tab"},
			{Key: "scroll on bar", Desc: "Cycle tabs (mouse)"},
			{Key: "alt+g", Desc: "Grid"},
			{Key: "alt+c", Desc: "Columns"},
			{Key: "alt+r", Desc: "Rules"},
		},
		"General": {
			{Key: "ctrl+z / u", Desc: "Undo"},
			{Key: "ctrl+y / U", Desc: "Redo"},
			{Key: "ctrl+s", Desc: "Save"},
			{Key: "ctrl+r", Desc: "Reload from disk"},
			{Key: "?", Desc: "Toggle this help"},
			{Key: "q / ctrl+q", Desc: "Quit"},
		},
	}
}
