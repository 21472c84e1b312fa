package components

import (
	"github.com/Akashdeep-Patra/zgrid/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// Scrollbar returns one cell per line of a vertical scrollbar for a window
// of height lines at offset into total lines. It is nil when everything
// fits.
func Scrollbar(styles ui.Styles, height, total, offset int) []string {
	if height < 1 || total <= height {
		return nil
	}
	thumb := min(max(height*height/total, 1), height)
	span := total - height
	offset = min(max(offset, 0), span)
	start := (offset*(height-thumb) + span/2) / span

	thumbCell := lipgloss.NewStyle().Foreground(styles.Theme.Primary).Render("┃")
	trackCell := lipgloss.NewStyle().Foreground(styles.Theme.Border).Render("│")
	cells := make([]string, height)
	for i := range cells {
		cells[i] = trackCell
		if i >= start && i < start+thumb {
			cells[i] = thumbCell
		}
	}
	return cells
}
