package views

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/Akashdeep-Patra/zgrid/internal/common"
	"github.com/Akashdeep-Patra/zgrid/internal/config"
	"github.com/Akashdeep-Patra/zgrid/internal/grid"
	"github.com/Akashdeep-Patra/zgrid/internal/table"
	"github.com/Akashdeep-Patra/zgrid/internal/ui"
	"github.com/Akashdeep-Patra/zgrid/internal/ui/components"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	tagRenameColumn = "rename-column"
	tagAddColumn    = "add-column"
	tagDeleteColumn = "delete-column"
	tagColumnColor  = "column-color"
)

// retypeCycle is the order "t" steps through. Reference and computed types
// need data the editor cannot supply, so they are left out.
var retypeCycle = []grid.ColumnType{grid.TypeText, grid.TypeNumber, grid.TypeDate, grid.TypeTime, grid.TypeSelect}

// ColumnsView lists every column, hidden or not, and edits the structure.
type ColumnsView struct {
	sess   *table.Session
	ctrl   *grid.Controller
	cfg    *config.Config
	styles ui.Styles
	width  int
	height int
	cursor int
	offset int

	// column the open dialog refers to
	target string
}

// NewColumnsView creates the columns tab.
func NewColumnsView(sess *table.Session, ctrl *grid.Controller, cfg *config.Config, styles ui.Styles) *ColumnsView {
	return &ColumnsView{sess: sess, ctrl: ctrl, cfg: cfg, styles: styles}
}

func (v *ColumnsView) Init() tea.Cmd { return nil }

func (v *ColumnsView) SetSize(w, h int) {
	v.width = w
	v.height = h
}

func (v *ColumnsView) InputCapture() bool { return false }

func (v *ColumnsView) columns() []grid.Column { return v.sess.Table().Columns() }

func (v *ColumnsView) current() (grid.Column, bool) {
	cols := v.columns()
	v.cursor = min(max(v.cursor, 0), max(len(cols)-1, 0))
	if len(cols) == 0 {
		return grid.Column{}, false
	}
	return cols[v.cursor], true
}

// visibleIndex returns the column's position among visible columns, or -1.
func (v *ColumnsView) visibleIndex(id string) int {
	return slices.IndexFunc(v.sess.Table().VisibleColumns(), func(c grid.Column) bool { return c.ID == id })
}

func (v *ColumnsView) Update(msg tea.Msg) (common.View, tea.Cmd) {
	switch msg := msg.(type) {
	case components.DialogResult:
		return v, v.handleDialog(msg)

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			v.move(-1)
		case tea.MouseButtonWheelDown:
			v.move(1)
		case tea.MouseButtonLeft:
			if msg.Action == tea.MouseActionPress {
				if idx := v.offset + msg.Y - 2; idx >= v.offset && idx < len(v.columns()) {
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

func (v *ColumnsView) move(delta int) {
	v.cursor = min(max(v.cursor+delta, 0), max(len(v.columns())-1, 0))
}

func (v *ColumnsView) updateNormal(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "j", "down":
		v.move(1)
		return nil
	case "k", "up":
		v.move(-1)
		return nil
	case "g", "home":
		v.cursor = 0
		return nil
	case "G", "end":
		v.cursor = len(v.columns()) - 1
		return nil
	case "a":
		return common.CmdDialog(components.NewInputDialog(v.styles,
			"Add column", "name [text|number|date|time|select]", "", tagAddColumn))
	}

	col, ok := v.current()
	if !ok {
		return nil
	}
	switch msg.String() {
	case " ", "space":
		return v.toggleVisible(col)
	case "K", "shift+up":
		v.reorder(-1)
	case "J", "shift+down":
		v.reorder(1)
	case "r":
		v.target = col.ID
		return common.CmdDialog(components.NewInputDialog(v.styles,
			"Rename column", "column name", col.Name, tagRenameColumn))
	case "t":
		return v.cycleType(col)
	case "D":
		v.target = col.ID
		return common.CmdDialog(components.NewConfirmDialog(v.styles,
			"Delete column", fmt.Sprintf("Delete %q and all its values?", col.Name), tagDeleteColumn))
	case "f":
		return v.freezeThrough(col)
	case ">":
		v.resize(col, 2)
	case "<":
		v.resize(col, -2)
	case "c":
		v.target = col.ID
		return common.CmdDialog(components.NewInputDialog(v.styles,
			"Column color", "#rrggbb (empty clears)", v.sess.Table().ColumnColors[col.ID], tagColumnColor))
	}
	return nil
}

func (v *ColumnsView) toggleVisible(col grid.Column) tea.Cmd {
	var err error
	v.sess.Batch(func() {
		if grid.IsVisible(v.sess.Table().Visibility, col.ID) {
			err = v.ctrl.HideColumn(col.ID)
		} else {
			v.ctrl.ShowColumn(col.ID)
		}
	})
	if err != nil {
		return common.CmdErr(err)
	}
	return nil
}

func (v *ColumnsView) reorder(delta int) {
	to := v.cursor + delta
	if to < 0 || to >= len(v.columns()) {
		return
	}
	v.sess.Batch(func() { v.ctrl.MoveColumn(v.cursor, to) })
	v.cursor = to
}

func (v *ColumnsView) cycleType(col grid.Column) tea.Cmd {
	if col.Type.ReadOnly() {
		return common.CmdErr(grid.ErrReadOnlyColumn)
	}
	i := slices.Index(retypeCycle, col.Type)
	next := retypeCycle[(i+1)%len(retypeCycle)]
	var err error
	v.sess.Update(func(t *table.Table) { err = t.Retype(col.ID, next) })
	if err != nil {
		return common.CmdErr(err)
	}
	return common.CmdInfo(fmt.Sprintf("%s is now %s", col.Name, next.Label()))
}

func (v *ColumnsView) freezeThrough(col grid.Column) tea.Cmd {
	idx := v.visibleIndex(col.ID)
	if idx < 0 {
		return common.CmdErr(fmt.Errorf("%s is hidden", col.Name))
	}
	n := idx + 1
	if v.sess.Table().Freeze == n {
		n = 0
	}
	v.sess.Update(func(t *table.Table) {
		t.Freeze = grid.ClampFreeze(n, len(t.VisibleColumns()))
	})
	if n == 0 {
		return common.CmdInfo("Columns unfrozen")
	}
	return common.CmdInfo(fmt.Sprintf("Froze %d columns", n))
}

func (v *ColumnsView) colWidth(id string) int {
	if w, ok := v.sess.Table().Widths[id]; ok && w > 0 {
		return w
	}
	return v.cfg.DefaultColumnWidth
}

func (v *ColumnsView) resize(col grid.Column, delta int) {
	cur := v.colWidth(col.ID)
	minWidth := v.cfg.MinColumnWidth
	v.sess.Update(func(t *table.Table) {
		t.Widths = grid.ResizeColumn(t.Widths, col.ID, cur, delta, minWidth)
	})
}

func (v *ColumnsView) handleDialog(res components.DialogResult) tea.Cmd {
	if !res.Confirmed {
		return nil
	}
	value := strings.TrimSpace(res.Value)
	switch res.Tag {
	case tagAddColumn:
		name, typ, err := table.ParseColumnSpec(value)
		if err != nil {
			return common.CmdErr(err)
		}
		id := v.sess.IDs().ColumnID()
		v.sess.Update(func(t *table.Table) { t.AddColumn(grid.Column{ID: id, Name: name, Type: typ}) })
		v.cursor = len(v.columns()) - 1
		return common.CmdInfo(fmt.Sprintf("Added column %s", name))

	case tagRenameColumn:
		if value == "" {
			return common.CmdErr(fmt.Errorf("column name cannot be empty"))
		}
		var err error
		v.sess.Batch(func() { err = v.ctrl.RenameColumn(v.target, value) })
		if err != nil {
			return common.CmdErr(err)
		}

	case tagDeleteColumn:
		id := v.target
		var err error
		v.sess.Batch(func() {
			if err = v.ctrl.DeleteColumn(id); err != nil {
				return
			}
			v.sess.Update(func(t *table.Table) {
				delete(t.Widths, id)
				delete(t.ColumnColors, id)
				delete(t.Visibility, id)
				t.Freeze = grid.ClampFreeze(t.Freeze, len(t.VisibleColumns()))
			})
		})
		if err != nil {
			return common.CmdErr(err)
		}
		v.move(0)
		return common.CmdInfo("Column deleted")

	case tagColumnColor:
		if value != "" {
			c, err := colorful.Hex(value)
			if err != nil {
				return common.CmdErr(fmt.Errorf("color %q: %w", value, err))
			}
			value = c.Hex()
		}
		id := v.target
		v.sess.Update(func(t *table.Table) {
			colors := maps.Clone(t.ColumnColors)
			if colors == nil {
				colors = map[string]string{}
			}
			if value == "" {
				delete(colors, id)
			} else {
				colors[id] = value
			}
			t.ColumnColors = colors
		})
	}
	return nil
}

func (v *ColumnsView) View() string {
	t := v.styles.Theme
	tbl := v.sess.Table()
	cols := v.columns()
	v.current()

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(t.Primary).Bold(true).
		Render(fmt.Sprintf("  Columns (%d, %d visible, %d frozen)", len(cols), len(tbl.VisibleColumns()), tbl.Freeze)) + "\n\n")

	listH := max(v.height-3, 1)
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+listH {
		v.offset = v.cursor - listH + 1
	}

	end := min(v.offset+listH, len(cols))
	for i := v.offset; i < end; i++ {
		b.WriteString(v.renderItem(i, cols[i]) + "\n")
	}
	if len(cols) > listH {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  %d-%d of %d", v.offset+1, end, len(cols))))
	}
	return b.String()
}

func (v *ColumnsView) renderItem(i int, col grid.Column) string {
	t := v.styles.Theme
	tbl := v.sess.Table()
	visible := grid.IsVisible(tbl.Visibility, col.ID)

	check := lipgloss.NewStyle().Foreground(t.Success).Render("●")
	if !visible {
		check = lipgloss.NewStyle().Foreground(t.TextSubtle).Render("○")
	}
	glyph := lipgloss.NewStyle().Foreground(t.Secondary).Render(typeGlyph(col.Type))
	name := ui.Fit(col.Name, 24)
	kind := v.styles.Muted.Render(ui.Fit(col.Type.Label(), 13))
	width := v.styles.Muted.Render(fmt.Sprintf("%3dw", v.colWidth(col.ID)))

	var tags []string
	if idx := v.visibleIndex(col.ID); idx >= 0 && idx < tbl.Freeze {
		tags = append(tags, lipgloss.NewStyle().Foreground(t.Info).Render("frozen"))
	}
	if col.Type.ReadOnly() {
		tags = append(tags, v.styles.GridReadOnly.Render("read-only"))
	}
	if hex, ok := tbl.ColumnColors[col.ID]; ok {
		tags = append(tags, ui.Swatch(hex))
	}

	line := fmt.Sprintf("%s %s %s  %s %s  %s", check, glyph, name, kind, width, ui.JoinHorizontal(" ", tags...))
	if i == v.cursor {
		return v.styles.ListSelected.Render("▸ " + line)
	}
	if !visible {
		return v.styles.ListDimmed.Render(line)
	}
	return v.styles.ListItem.Render(line)
}

func (v *ColumnsView) ShortHelp() []components.HelpEntry {
	return []components.HelpEntry{
		{Key: "space", Desc: "Show / hide column"},
		{Key: "K / J", Desc: "Move column up / down"},
		{Key: "a", Desc: "Add column (name [type])"},
		{Key: "r", Desc: "Rename column"},
		{Key: "t", Desc: "Cycle column type"},
		{Key: "D", Desc: "Delete column"},
		{Key: "f", Desc: "Freeze through column"},
		{Key: "< / >", Desc: "Narrow / widen column"},
		{Key: "c", Desc: "Set column color"},
	}
}
