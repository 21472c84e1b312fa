package views

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Akashdeep-Patra/zgrid/internal/common"
	"github.com/Akashdeep-Patra/zgrid/internal/grid"
	"github.com/Akashdeep-Patra/zgrid/internal/table"
	"github.com/Akashdeep-Patra/zgrid/internal/ui"
	"github.com/Akashdeep-Patra/zgrid/internal/ui/components"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	tagAddRule    = "add-rule"
	tagDeleteRule = "delete-rule"
)

// RulesView lists the color rules in priority order with a detail pane for
// the selected rule. Later rules win.
type RulesView struct {
	sess     *table.Session
	styles   ui.Styles
	width    int
	height   int
	cursor   int
	detailVP viewport.Model
	shown    string // rule id and version the detail pane was rendered for
}

// NewRulesView creates the rules tab.
func NewRulesView(sess *table.Session, styles ui.Styles) *RulesView {
	return &RulesView{sess: sess, styles: styles, detailVP: viewport.New(0, 0)}
}

func (v *RulesView) Init() tea.Cmd { return nil }

func (v *RulesView) SetSize(w, h int) {
	v.width = w
	v.height = h
	v.detailVP.Width = max(w-v.listWidth()-3, 10)
	v.detailVP.Height = max(h-2, 1)
	v.shown = ""
}

func (v *RulesView) InputCapture() bool { return false }

func (v *RulesView) listWidth() int { return max(v.width*2/5, 24) }

func (v *RulesView) rules() []grid.ColorRule { return v.sess.Table().Rules }

func (v *RulesView) current() (grid.ColorRule, bool) {
	rules := v.rules()
	v.cursor = min(max(v.cursor, 0), max(len(rules)-1, 0))
	if len(rules) == 0 {
		return grid.ColorRule{}, false
	}
	return rules[v.cursor], true
}

func (v *RulesView) Update(msg tea.Msg) (common.View, tea.Cmd) {
	switch msg := msg.(type) {
	case components.DialogResult:
		return v, v.handleDialog(msg)

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if msg.X > v.listWidth() {
				v.detailVP.ScrollUp(3)
			} else {
				v.move(-1)
			}
		case tea.MouseButtonWheelDown:
			if msg.X > v.listWidth() {
				v.detailVP.ScrollDown(3)
			} else {
				v.move(1)
			}
		case tea.MouseButtonLeft:
			if msg.Action == tea.MouseActionPress && msg.X <= v.listWidth() {
				if idx := msg.Y - 2; idx >= 0 && idx < len(v.rules()) {
					v.cursor = idx
				}
			}
		}
		return v, nil

	case tea.KeyMsg:
		return v, v.updateNormal(msg)
	}
	return v, nil
}

func (v *RulesView) move(delta int) {
	v.cursor = min(max(v.cursor+delta, 0), max(len(v.rules())-1, 0))
}

func (v *RulesView) updateNormal(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "j", "down":
		v.move(1)
	case "k", "up":
		v.move(-1)
	case "pgup":
		v.detailVP.HalfPageUp()
	case "pgdown":
		v.detailVP.HalfPageDown()
	case "a":
		return common.CmdDialog(components.NewInputDialog(v.styles,
			"Add rule", "row #f38ba8 where qty > 5", v.suggestion(), tagAddRule))
	case " ":
		return v.toggle()
	case "K", "shift+up":
		v.reorder(-1)
	case "J", "shift+down":
		v.reorder(1)
	case "D":
		if r, ok := v.current(); ok {
			return common.CmdDialog(components.NewConfirmDialog(v.styles,
				"Delete rule", fmt.Sprintf("Delete rule %s?", r.ID), tagDeleteRule))
		}
	}
	return nil
}

// suggestion prefills the add dialog with the next theme swatch.
func (v *RulesView) suggestion() string {
	sw := v.styles.Theme.Swatches
	if len(sw) == 0 {
		return "row "
	}
	return "row " + string(sw[len(v.rules())%len(sw)]) + " where "
}

func (v *RulesView) toggle() tea.Cmd {
	r, ok := v.current()
	if !ok {
		return nil
	}
	v.sess.Update(func(t *table.Table) {
		if i := t.Rule(r.ID); i >= 0 {
			t.Rules[i].Enabled = !t.Rules[i].Enabled
		}
	})
	if r.Enabled {
		return common.CmdInfo(fmt.Sprintf("Disabled %s", r.ID))
	}
	return common.CmdInfo(fmt.Sprintf("Enabled %s", r.ID))
}

func (v *RulesView) reorder(delta int) {
	to := v.cursor + delta
	if to < 0 || to >= len(v.rules()) {
		return
	}
	from := v.cursor
	v.sess.Update(func(t *table.Table) { v.cursor = t.MoveRule(from, delta) })
}

func (v *RulesView) handleDialog(res components.DialogResult) tea.Cmd {
	if !res.Confirmed {
		return nil
	}
	switch res.Tag {
	case tagAddRule:
		tbl := v.sess.Table()
		rule, err := table.ParseRule(res.Value, tbl.Columns(), tbl.NextRuleID())
		if err != nil {
			return common.CmdErr(err)
		}
		v.sess.Update(func(t *table.Table) { t.Rules = append(t.Rules, rule) })
		v.cursor = len(v.rules()) - 1
		return common.CmdInfo(fmt.Sprintf("Added %s", rule.ID))

	case tagDeleteRule:
		r, ok := v.current()
		if !ok {
			return nil
		}
		v.sess.Update(func(t *table.Table) {
			t.Rules = slices.DeleteFunc(t.Rules, func(x grid.ColorRule) bool { return x.ID == r.ID })
		})
		v.move(0)
		return common.CmdInfo(fmt.Sprintf("Deleted %s", r.ID))
	}
	return nil
}

// matchCount counts the rows a rule's condition accepts.
func matchCount(r grid.ColorRule, t *table.Table) int {
	if r.Condition == nil {
		return len(t.Rows)
	}
	n := 0
	for _, row := range t.Rows {
		if r.Condition.Matches(row, t.Meta) {
			n++
		}
	}
	return n
}

func (v *RulesView) View() string {
	rules := v.rules()
	if len(rules) == 0 {
		return renderEmpty(v.styles, v.width, v.height, "No color rules",
			"a  add a rule such as: row #f38ba8 where qty > 5")
	}
	r, _ := v.current()
	if key := fmt.Sprintf("%s@%d", r.ID, v.sess.Version()); key != v.shown {
		v.shown = key
		v.detailVP.SetContent(v.renderDetail(r))
		v.detailVP.GotoTop()
	}
	left := v.renderList(rules)
	right := strings.Split(v.detailVP.View(), "\n")
	return components.RenderSideBySide(v.styles, left, right, v.listWidth(), v.width)
}

func (v *RulesView) renderList(rules []grid.ColorRule) []string {
	t := v.styles.Theme
	lines := []string{
		lipgloss.NewStyle().Foreground(t.Primary).Bold(true).
			Render(fmt.Sprintf("  Rules (%d)", len(rules))) + v.styles.Muted.Render("  later wins"),
		"",
	}
	for i, r := range rules {
		target := string(r.Scope)
		if r.ColumnID != "" {
			target += " · " + v.columnName(r.ColumnID)
		}
		line := ui.Swatch(r.Color) + " " + target
		switch {
		case i == v.cursor:
			lines = append(lines, v.styles.ListSelected.Render("▸ "+line))
		case !r.Enabled:
			lines = append(lines, v.styles.ListDimmed.Render(line+"  (off)"))
		default:
			lines = append(lines, v.styles.ListItem.Render(line))
		}
	}
	return lines
}

func (v *RulesView) columnName(id string) string {
	if c, ok := v.sess.Table().Meta[id]; ok {
		return c.Name
	}
	return id + " (missing)"
}

func (v *RulesView) renderDetail(r grid.ColorRule) string {
	tbl := v.sess.Table()
	kv := func(k, val string) string { return ui.RenderKeyValue(v.styles, ui.PadRight(k, 8), val) }

	enabled := "yes"
	if !r.Enabled {
		enabled = "no"
	}
	lines := []string{
		v.styles.Title.Render(r.ID),
		"",
		kv("Scope", string(r.Scope)),
	}
	if r.ColumnID != "" {
		lines = append(lines, kv("Column", v.columnName(r.ColumnID)))
	}
	lines = append(lines,
		kv("Color", ui.Swatch(r.Color)+" "+r.Color),
		kv("Enabled", enabled),
		kv("Matches", fmt.Sprintf("%d of %d rows", matchCount(r, tbl), len(tbl.Rows))),
		"",
		v.styles.Subtitle.Render("Condition"),
	)
	if r.Condition == nil {
		lines = append(lines, v.styles.Muted.Render("  always"))
	} else {
		lines = append(lines, conditionTree(v.styles, *r.Condition, tbl.Meta, 1)...)
	}
	return strings.Join(lines, "\n")
}

// conditionTree renders a condition as an indented outline.
func conditionTree(styles ui.Styles, n grid.ConditionNode, meta grid.ColumnMeta, depth int) []string {
	pad := strings.Repeat("  ", depth)
	switch {
	case n.Leaf != nil:
		c := n.Leaf
		field := c.FieldID
		if col, ok := meta[c.FieldID]; ok {
			field = col.Name
		}
		text := styles.Bold.Render(field) + " " + styles.KeyBind.Render(string(c.Operator))
		if c.Operator != grid.OpIsEmpty && c.Operator != grid.OpNotEmpty {
			text += " " + styles.Body.Render(fmt.Sprintf("%q", c.Value))
		}
		return []string{pad + text}
	case n.Group != nil:
		lines := []string{pad + styles.Subtitle.Render(string(n.Group.Operator))}
		for _, child := range n.Group.Conditions {
			lines = append(lines, conditionTree(styles, child, meta, depth+1)...)
		}
		return lines
	}
	return nil
}

func (v *RulesView) ShortHelp() []components.HelpEntry {
	return []components.HelpEntry{
		{Key: "a", Desc: "Add rule (scope [column] #color where ...)"},
		{Key: "space", Desc: "Enable / disable rule"},
		{Key: "K / J", Desc: "Lower / raise priority"},
		{Key: "D", Desc: "Delete rule"},
		{Key: "pgup/pgdn", Desc: "Scroll detail"},
	}
}
