package components

import (
	"strings"

	"github.com/Akashdeep-Patra/zgrid/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// TabInfo describes a single tab for rendering.
type TabInfo struct {
	Name     string
	Icon     string
	Shortcut string // letter of Name underlined as the alt+ mnemonic
	Active   bool
	Group    string
	Badge    string // short count shown after the name, e.g. "3"
}

// TabZone is the clickable span of one rendered tab on the tab row.
type TabZone struct {
	Index int // index into the TabInfo slice
	Start int // inclusive X
	End   int // exclusive X
}

// TabBarHeight is the tab row plus its underline.
const TabBarHeight = 2

type tabLabelMode int

const (
	labelFull  tabLabelMode = iota // "◐ Rules 3"
	labelShort                     // "◐ Rul"
	labelIcon                      // "◐"
)

const groupSep = " │ "

func tabLabel(tab TabInfo, mode tabLabelMode) string {
	switch mode {
	case labelFull:
		label := tab.Icon + " " + tab.Name
		if tab.Badge != "" {
			label += " " + tab.Badge
		}
		return label
	case labelShort:
		name := []rune(tab.Name)
		return tab.Icon + " " + string(name[:min(len(name), 3)])
	default:
		return tab.Icon
	}
}

// placeTabs lays the tabs out on one row, starting after a one-cell pad.
// It returns each tab's span and the row's total width.
func placeTabs(tabs []TabInfo, mode tabLabelMode) ([]TabZone, int) {
	zones := make([]TabZone, 0, len(tabs))
	col := 1
	for i, tab := range tabs {
		if i > 0 && tab.Group != tabs[i-1].Group {
			col += lipgloss.Width(groupSep)
		}
		w := lipgloss.Width(tabLabel(tab, mode)) + 2
		zones = append(zones, TabZone{Index: i, Start: col, End: col + w})
		col += w
	}
	return zones, col
}

// tabLayout picks the widest label mode that fits in width. Icons are the
// last resort and are used even when they overflow.
func tabLayout(tabs []TabInfo, width int) (tabLabelMode, []TabZone) {
	for _, mode := range []tabLabelMode{labelFull, labelShort} {
		if zones, end := placeTabs(tabs, mode); end <= width {
			return mode, zones
		}
	}
	zones, _ := placeTabs(tabs, labelIcon)
	return labelIcon, zones
}

// TabZones returns the hit zones of every tab as RenderTabs lays them out.
func TabZones(tabs []TabInfo, width int) []TabZone {
	_, zones := tabLayout(tabs, width)
	return zones
}

// renderLabel styles a label, underlining the shortcut letter when the full
// name is shown.
func renderLabel(tab TabInfo, mode tabLabelMode, st lipgloss.Style) string {
	label := tabLabel(tab, mode)
	if mode != labelFull || tab.Shortcut == "" {
		return st.Render(label)
	}
	prefix := tab.Icon + " "
	i := strings.Index(strings.ToLower(tab.Name), strings.ToLower(tab.Shortcut))
	if i < 0 {
		return st.Render(label)
	}
	i += len(prefix)
	j := i + len(tab.Shortcut)
	return st.Render(label[:i]) + st.Underline(true).Render(label[i:j]) + st.Render(label[j:])
}

// RenderTabs renders the tab bar: one row of tabs, then an underline that
// is bold under the active tab and carries a key hint on the right.
func RenderTabs(styles ui.Styles, tabs []TabInfo, width int) string {
	t := styles.Theme
	mode, zones := tabLayout(tabs, width)

	activeStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	inactiveStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	sep := lipgloss.NewStyle().Foreground(t.Border).Render(groupSep)

	var row strings.Builder
	row.WriteByte(' ')
	ulStart, ulEnd := -1, -1
	for i, tab := range tabs {
		if i > 0 && tab.Group != tabs[i-1].Group {
			row.WriteString(sep)
		}
		st := inactiveStyle
		if tab.Active {
			st = activeStyle
			ulStart, ulEnd = zones[i].Start, zones[i].End
		}
		row.WriteString(" " + renderLabel(tab, mode, st) + " ")
	}
	bar := lipgloss.NewStyle().Width(width).MaxWidth(width).MaxHeight(1).Background(t.Bg).Render(row.String())

	hint := lipgloss.NewStyle().Foreground(t.TextSubtle).Faint(true).Render("[ ]  ?help")
	ulWidth := width
	if hw := lipgloss.Width(hint); hw+4 < width {
		ulWidth = width - hw - 1
	} else {
		hint = ""
	}
	ul := underline(styles, ulWidth, ulStart, ulEnd)
	if hint != "" {
		ul += " " + hint
	}
	return bar + "\n" + lipgloss.NewStyle().Width(width).Render(ul)
}

// underline draws a thin rule of the given width, bold between start and
// end. A negative start draws it thin throughout.
func underline(styles ui.Styles, width, start, end int) string {
	if start < 0 {
		start, end = 0, 0
	}
	start = min(start, width)
	end = min(max(end, start), width)
	thin := lipgloss.NewStyle().Foreground(styles.Theme.Border)
	bold := lipgloss.NewStyle().Foreground(styles.Theme.Primary).Bold(true)
	return thin.Render(strings.Repeat("─", start)) +
		bold.Render(strings.Repeat("━", end-start)) +
		thin.Render(strings.Repeat("─", width-end))
}
