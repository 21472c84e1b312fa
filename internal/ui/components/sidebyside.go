package components

import (
	"strings"

	"github.com/Akashdeep-Patra/zgrid/internal/ui"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// RenderSideBySide renders two pre-styled columns of lines next to each
// other. The left pane takes leftWidth cells; the right pane gets the rest.
// Lines wider than their pane are cut without breaking escape sequences.
func RenderSideBySide(styles ui.Styles, left, right []string, leftWidth, totalWidth int) string {
	leftWidth = max(leftWidth, 10)
	rightWidth := max(totalWidth-leftWidth-3, 10) // 3 for separator

	n := max(len(left), len(right))
	sep := lipgloss.NewStyle().Foreground(styles.Theme.Border).Render(" │ ")

	var b strings.Builder
	for i := 0; i < n; i++ {
		var l, r string
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		b.WriteString(padTo(truncateTo(l, leftWidth), leftWidth))
		b.WriteString(sep)
		b.WriteString(truncateTo(r, rightWidth))
		if i < n-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func truncateTo(s string, maxW int) string {
	if ansi.StringWidth(s) <= maxW {
		return s
	}
	return ansi.Truncate(s, maxW, "…")
}

func padTo(s string, w int) string {
	n := ansi.StringWidth(s)
	if n >= w {
		return s
	}
	return s + strings.Repeat(" ", w-n)
}
