package components

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Akashdeep-Patra/zgrid/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// StatusBarData carries the info displayed in the bottom status bar.
type StatusBarData struct {
	Table     string
	Rows      int // rows after filtering
	TotalRows int
	Columns   int
	Cell      string // cursor position, e.g. "B12"
	Range     string // range size, e.g. "3×4"
	Dirty     bool
	Filtered  bool
	Stale     bool // the file changed on disk since it was loaded
	Message   string // transient info/error message
	IsError   bool
	Path      string
}

// RenderStatusBar renders the bottom status bar with clear visual sections
// separated by dim vertical bars.
//
// Wide (>= 60):   inventory  │  B12 3×4  │  42/120 rows  │  ● modified     inventory.json
// Medium (40-59):  inventory  │  B12 3×4  │  42/120 rows  │  ● modified
// Narrow (< 40):   inventory  │  ● modified
func RenderStatusBar(styles ui.Styles, data StatusBarData, width int) string {
	t := styles.Theme

	sepStyle := lipgloss.NewStyle().Foreground(t.Border).Faint(true)
	sep := sepStyle.Render(" │ ")

	// ── Left sections ────────────────────────────────────────────

	nameStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	nameSection := " " + nameStyle.Render("▦ "+data.Table)

	var posSection string
	if width >= 40 && data.Cell != "" {
		pos := data.Cell
		if data.Range != "" {
			pos += " " + lipgloss.NewStyle().Foreground(t.Accent).Render(data.Range)
		}
		posSection = sep + lipgloss.NewStyle().Foreground(t.Text).Render(pos)
	}

	var countSection string
	if width >= 40 {
		rows := fmt.Sprintf("%d rows", data.TotalRows)
		countStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
		if data.Filtered {
			rows = fmt.Sprintf("%d/%d rows", data.Rows, data.TotalRows)
			countStyle = countStyle.Foreground(t.Warning)
		}
		countSection = sep + countStyle.Render(fmt.Sprintf("%s · %d cols", rows, data.Columns))
	}

	var stateSection string
	if data.Dirty {
		stateSection = sep + lipgloss.NewStyle().Foreground(t.Warning).Render("● modified")
	} else {
		stateSection = sep + lipgloss.NewStyle().Foreground(t.Success).Render("✓ saved")
	}
	if data.Stale {
		stateSection += sep + lipgloss.NewStyle().Foreground(t.Error).Render("⟳ changed on disk")
	}

	left := nameSection + posSection + countSection + stateSection

	// ── Right section ────────────────────────────────────────────

	var right string
	if data.Message != "" {
		fg := t.Info
		if data.IsError {
			fg = t.Error
		}
		right = lipgloss.NewStyle().Foreground(fg).Render(data.Message) + " "
	} else if width >= 60 && data.Path != "" {
		right = lipgloss.NewStyle().Foreground(t.TextSubtle).Render(filepath.Base(data.Path)) + " "
	}

	// ── Assemble ─────────────────────────────────────────────────

	leftW := lipgloss.Width(left)
	rightW := lipgloss.Width(right)
	gap := width - leftW - rightW
	if gap < 0 {
		gap = 1
		right = "" // drop right side if no room
	}

	content := left + strings.Repeat(" ", gap) + right

	return styles.StatusBar.Width(width).Render(content)
}
