package views

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Akashdeep-Patra/zgrid/internal/common"
	"github.com/Akashdeep-Patra/zgrid/internal/config"
	"github.com/Akashdeep-Patra/zgrid/internal/grid"
	"github.com/Akashdeep-Patra/zgrid/internal/table"
	"github.com/Akashdeep-Patra/zgrid/internal/ui"
	"github.com/Akashdeep-Patra/zgrid/internal/ui/components"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const tagPasteHeader = "paste-header"

// rangeTintAmount is how far a selected cell's background moves towards the
// theme's range colour.
const rangeTintAmount = 0.35

// GridView renders the table as a virtualized grid and feeds keyboard, mouse
// and paste input to the grid controller.
type GridView struct {
	sess   *table.Session
	ctrl   *grid.Controller
	clip   grid.Clipboard
	cfg    *config.Config
	styles ui.Styles
	keys   Keys
	width  int
	height int

	virt      *grid.Virtualizer
	rowHeight int
	scrollX   int
	synced    int

	editor textinput.Model

	filtering  bool
	filter     textinput.Model
	lastFilter string
}

// gridLayout is the column geometry of one render or hit test.
type gridLayout struct {
	frame  grid.Frame
	geo    grid.Geometry
	freeze int
	pinned int // index column plus frozen columns
	avail  int // width of the horizontally scrolling region
}

// NewGridView creates the grid tab. The controller must be wired to sess.
func NewGridView(sess *table.Session, ctrl *grid.Controller, clip grid.Clipboard, cfg *config.Config, styles ui.Styles, keys Keys) *GridView {
	ed := textinput.New()
	ed.Prompt = ""
	ed.CharLimit = 1000

	fi := textinput.New()
	fi.Prompt = "/ "
	fi.Placeholder = "column op value  (qty > 5, title contains foo, due empty)"
	fi.CharLimit = 200

	rowHeight := min(max(cfg.RowHeight, 1), config.MaxRowHeight)
	return &GridView{
		sess:      sess,
		ctrl:      ctrl,
		clip:      clip,
		cfg:       cfg,
		styles:    styles,
		keys:      keys,
		virt:      grid.NewVirtualizer(0, fixedHeight(rowHeight), cfg.Overscan),
		rowHeight: rowHeight,
		synced:    -1,
		editor:    ed,
		filter:    fi,
	}
}

func fixedHeight(h int) func(int) int { return func(int) int { return h } }

func (v *GridView) Init() tea.Cmd {
	v.sync()
	return nil
}

func (v *GridView) SetSize(w, h int) {
	v.width = w
	v.height = h
	v.editor.Width = max(w-24, 10)
	v.filter.Width = max(w-4, 10)
	v.virt.SetViewportHeight(v.bodyHeight())
	v.measureWindow()
	v.reveal()
}

// InputCapture is true while the cell editor or the filter prompt has focus.
func (v *GridView) InputCapture() bool {
	return v.filtering || v.ctrl.Selection().IsEditing()
}

// Position reports the cursor cell ("B12") and the range size ("3×4").
func (v *GridView) Position() (cell, rng string) {
	p, ok := v.ctrl.Cursor()
	if !ok {
		return "", ""
	}
	cell = columnLabel(p.Col) + strconv.Itoa(p.Row+1)
	if rows, cols := v.ctrl.Selection().Range().Size(); rows > 0 {
		rng = fmt.Sprintf("%d×%d", rows, cols)
	}
	return cell, rng
}

func (v *GridView) bodyHeight() int { return max(v.height-2, 1) }

// sync reconciles the selection and the virtualizer after the session
// changed, whoever changed it.
func (v *GridView) sync() {
	if v.synced == v.sess.Version() {
		return
	}
	v.synced = v.sess.Version()
	v.ctrl.Sync()
	v.virt.SetCount(len(v.sess.Frame().Rows))
	// Measurements are keyed by frame index, which an edit, filter or
	// paste may have shifted.
	v.virt.Measure()
	if !v.ctrl.Selection().IsEditing() {
		v.editor.Blur()
	}
	v.reveal()
}

func (v *GridView) layout() gridLayout {
	t := v.sess.Table()
	f := v.sess.Frame()
	ids := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		ids[i] = c.ID
	}
	geo := grid.Geometry{
		Order:      ids,
		Widths:     t.Widths,
		Fallback:   v.cfg.DefaultColumnWidth,
		IndexWidth: v.cfg.IndexColumnWidth,
		AddWidth:   v.cfg.AddColumnWidth,
	}
	freeze := grid.ClampFreeze(t.Freeze, len(ids))
	pinned := geo.StickyLeft(freeze)
	return gridLayout{
		frame:  f,
		geo:    geo,
		freeze: freeze,
		pinned: pinned,
		avail:  max(v.width-pinned-1, 0), // 1 for the scrollbar
	}
}

func (v *GridView) clampScrollX(l gridLayout) {
	limit := max(l.geo.TotalWidth()-l.pinned-l.avail, 0)
	v.scrollX = min(max(v.scrollX, 0), limit)
}

// reveal scrolls the cursor cell into view.
func (v *GridView) reveal() {
	if p, ok := v.ctrl.Cursor(); ok {
		v.revealPoint(p)
	}
}

func (v *GridView) revealPoint(p grid.Point) {
	v.virt.ScrollToIndex(p.Row)
	l := v.layout()
	if p.Col >= l.freeze && p.Col < len(l.geo.Order) {
		left := l.geo.StickyLeft(p.Col) - l.pinned
		w := l.geo.WidthOf(l.geo.Order[p.Col])
		switch {
		case left < v.scrollX:
			v.scrollX = left
		case left+w > v.scrollX+l.avail:
			v.scrollX = left + w - l.avail
		}
	}
	v.clampScrollX(l)
}

// batch runs a controller operation as one undo step.
func (v *GridView) batch(fn func() grid.Outcome) grid.Outcome {
	var out grid.Outcome
	v.sess.Batch(func() { out = fn() })
	v.sync()
	return out
}

// report turns an outcome into status bar feedback or the header prompt.
func (v *GridView) report(out grid.Outcome) tea.Cmd {
	switch {
	case out.Err != nil:
		return common.CmdErr(out.Err)
	case out.Prompt != nil:
		return common.CmdDialog(components.NewChoiceDialog(v.styles,
			"Paste", out.Prompt.HeaderPrompt(), "Header row", "Data only", tagPasteHeader))
	case out.Notice != "":
		return common.CmdInfo(out.Notice)
	}
	return nil
}

func (v *GridView) Update(msg tea.Msg) (common.View, tea.Cmd) {
	nv, cmd := v.update(msg)
	v.measureWindow()
	return nv, cmd
}

func (v *GridView) update(msg tea.Msg) (common.View, tea.Cmd) {
	v.sync()

	switch msg := msg.(type) {
	case common.RefreshMsg:
		return v, nil

	case components.DialogResult:
		if msg.Tag == tagPasteHeader {
			return v, v.resolvePaste(msg)
		}
		return v, nil

	case tea.MouseMsg:
		v.handleMouse(msg)
		return v, nil

	case tea.KeyMsg:
		switch {
		case v.filtering:
			return v.updateFilter(msg)
		case v.ctrl.Selection().IsEditing():
			return v.updateEditor(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *GridView) updateNormal(msg tea.KeyMsg) (common.View, tea.Cmd) {
	if msg.Paste {
		return v, v.paste(string(msg.Runes))
	}

	switch {
	case key.Matches(msg, v.keys.Paste):
		if v.clip == nil {
			return v, common.CmdErr(errNoClipboard)
		}
		text, err := v.clip.ReadText()
		if err != nil {
			return v, common.CmdErr(err)
		}
		return v, v.paste(text)
	case key.Matches(msg, v.keys.Filter):
		return v, v.openFilter()
	case key.Matches(msg, v.keys.Freeze):
		return v, v.toggleFreeze()
	case key.Matches(msg, v.keys.Widen):
		v.resize(2)
		return v, nil
	case key.Matches(msg, v.keys.Narrow):
		v.resize(-2)
		return v, nil
	case key.Matches(msg, v.keys.Taller):
		return v, v.setRowHeight(v.rowHeight + 1)
	case key.Matches(msg, v.keys.Shorter):
		return v, v.setRowHeight(v.rowHeight - 1)
	}

	out := v.batch(func() grid.Outcome { return v.ctrl.HandleKey(msg) })
	if out.Handled {
		v.reveal()
		if v.ctrl.Selection().IsEditing() {
			return v, v.openEditor()
		}
		return v, v.report(out)
	}

	switch msg.String() {
	case "shift+up":
		v.extend(-1, 0)
	case "shift+down":
		v.extend(1, 0)
	case "shift+left":
		v.extend(0, -1)
	case "shift+right":
		v.extend(0, 1)
	case "pgup":
		v.jump(-v.bodyHeight())
	case "pgdown":
		v.jump(v.bodyHeight())
	case "home":
		v.jump(-len(v.sess.Frame().Rows))
	case "end":
		v.jump(len(v.sess.Frame().Rows))
	case "esc":
		v.ctrl.Selection().ClearRange()
	default:
		return v, v.report(out)
	}
	return v, nil
}

func (v *GridView) extend(dr, dc int) {
	v.ctrl.ExtendSelection(dr, dc)
	if end := v.ctrl.Selection().Range().End; end != nil {
		v.revealPoint(*end)
	}
}

func (v *GridView) jump(rows int) {
	p, ok := v.ctrl.Cursor()
	if !ok {
		return
	}
	n := len(v.sess.Frame().Rows)
	p.Row = min(max(p.Row+rows, 0), n-1)
	v.ctrl.Click(p)
	v.reveal()
}

func (v *GridView) paste(text string) tea.Cmd {
	out := v.batch(func() grid.Outcome { return v.ctrl.Paste(text) })
	v.reveal()
	return v.report(out)
}

func (v *GridView) resolvePaste(res components.DialogResult) tea.Cmd {
	if res.Cancelled {
		v.ctrl.CancelPaste()
		return common.CmdInfo("Paste cancelled")
	}
	out := v.batch(func() grid.Outcome { return v.ctrl.ResolvePaste(res.Confirmed) })
	return v.report(out)
}

func (v *GridView) toggleFreeze() tea.Cmd {
	p, ok := v.ctrl.Cursor()
	if !ok {
		return nil
	}
	n := p.Col + 1
	if v.layout().freeze == n {
		n = 0
	}
	v.sess.Update(func(t *table.Table) {
		t.Freeze = grid.ClampFreeze(n, len(t.VisibleColumns()))
	})
	v.sync()
	v.reveal()
	if n == 0 {
		return common.CmdInfo("Columns unfrozen")
	}
	return common.CmdInfo(fmt.Sprintf("Froze %d columns", n))
}

func (v *GridView) resize(delta int) {
	p, ok := v.ctrl.Cursor()
	if !ok {
		return
	}
	l := v.layout()
	id := l.geo.Order[p.Col]
	cur := l.geo.WidthOf(id)
	minWidth := v.cfg.MinColumnWidth
	v.sess.Update(func(t *table.Table) {
		t.Widths = grid.ResizeColumn(t.Widths, id, cur, delta, minWidth)
	})
	v.sync()
	v.reveal()
}

// RowHeight returns the most lines a row may take.
func (v *GridView) RowHeight() int { return v.rowHeight }

// setRowHeight changes the row height and re-measures every row. Selection
// and range are keyed by row id and frame index, so they survive.
func (v *GridView) setRowHeight(h int) tea.Cmd {
	h = min(max(h, 1), config.MaxRowHeight)
	if h == v.rowHeight {
		return nil
	}
	v.rowHeight = h
	v.virt.SetEstimator(fixedHeight(h))
	v.measureWindow()
	v.reveal()
	return common.CmdInfo(fmt.Sprintf("Rows up to %d lines", h))
}

// measureWindow records the real height of the rows in the render window.
// A row grows to its tallest wrapped cell, up to rowHeight. Shrinking rows
// pull new rows into the window, so it repeats until the layout settles.
func (v *GridView) measureWindow() {
	if v.rowHeight <= 1 {
		return
	}
	l := v.layout()
	for range 3 {
		before := v.virt.TotalSize()
		for _, item := range v.virt.VirtualItems() {
			if item.Index < len(l.frame.Rows) {
				v.virt.MeasureItem(item.Index, v.rowLines(l, l.frame.Rows[item.Index]))
			}
		}
		if v.virt.TotalSize() == before {
			return
		}
	}
}

// rowLines is the number of lines row needs, between 1 and rowHeight.
func (v *GridView) rowLines(l gridLayout, row grid.Row) int {
	n := 1
	for ci, col := range l.frame.Columns {
		if col.Type == grid.TypeNumber {
			continue
		}
		text := grid.DisplayValue(row.Get(col.ID), col.Type)
		n = max(n, len(wrapCell(text, l.geo.WidthOf(l.geo.Order[ci]))))
		if n >= v.rowHeight {
			return v.rowHeight
		}
	}
	return n
}

// wrapCell splits text into the lines a cell of width w shows. One cell
// goes to the leading pad and one to the separator.
func wrapCell(text string, w int) []string {
	return strings.Split(ansi.Wrap(text, max(w-2, 1), ""), "\n")
}

// ── Cell editor ─────────────────────────────────────────────────────────────

func (v *GridView) openEditor() tea.Cmd {
	ed := v.ctrl.Selection().Editing()
	f := v.sess.Frame()
	ri, ci := f.RowIndex(ed.RowID), f.ColIndex(ed.ColumnID)
	if ri < 0 || ci < 0 {
		v.ctrl.CancelEdit()
		return nil
	}
	col := f.Columns[ci]
	v.editor.Placeholder = col.Type.Label()
	v.editor.SetValue(editText(f.Rows[ri].Get(col.ID), col.Type))
	v.editor.CursorEnd()
	return v.editor.Focus()
}

func (v *GridView) updateEditor(msg tea.KeyMsg) (common.View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.ctrl.CancelEdit()
		v.editor.Blur()
		return v, nil
	case "enter":
		out := v.batch(func() grid.Outcome { return v.ctrl.CommitEdit(v.editor.Value()) })
		if !v.ctrl.Selection().IsEditing() {
			v.editor.Blur()
		}
		return v, v.report(out)
	}
	var cmd tea.Cmd
	v.editor, cmd = v.editor.Update(msg)
	return v, cmd
}

// editText is the editable form of a value: the clipboard form where the
// type has one, otherwise what the cell displays.
func editText(val grid.Value, t grid.ColumnType) string {
	if s := grid.FormatCell(val, t); s != "" {
		return s
	}
	return grid.DisplayValue(val, t)
}

// ── Filter prompt ───────────────────────────────────────────────────────────

func (v *GridView) openFilter() tea.Cmd {
	v.filtering = true
	if v.sess.Table().Filter != nil {
		v.filter.SetValue(v.lastFilter)
	} else {
		v.filter.SetValue("")
	}
	v.filter.CursorEnd()
	return v.filter.Focus()
}

func (v *GridView) updateFilter(msg tea.KeyMsg) (common.View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.filtering = false
		v.filter.Blur()
		return v, nil
	case "enter":
		cmd, err := v.applyFilter(strings.TrimSpace(v.filter.Value()))
		if err != nil {
			return v, common.CmdErr(err)
		}
		v.filtering = false
		v.filter.Blur()
		return v, cmd
	}
	var cmd tea.Cmd
	v.filter, cmd = v.filter.Update(msg)
	return v, cmd
}

func (v *GridView) applyFilter(text string) (tea.Cmd, error) {
	if text == "" {
		if v.sess.Table().Filter == nil {
			return nil, nil
		}
		v.sess.Update(func(t *table.Table) { t.Filter = nil })
		v.lastFilter = ""
		v.sync()
		return common.CmdInfo("Filter cleared"), nil
	}
	cond, err := grid.ParseQuickFilter(text, v.sess.Table().Columns())
	if err != nil {
		return nil, err
	}
	node := grid.Leaf(cond)
	v.sess.Update(func(t *table.Table) { t.Filter = &node })
	v.lastFilter = text
	v.sync()
	return common.CmdInfo(fmt.Sprintf("%d of %d rows match", len(v.sess.Frame().Rows), len(v.sess.Table().Rows))), nil
}

// ── Mouse ───────────────────────────────────────────────────────────────────

func (v *GridView) handleMouse(msg tea.MouseMsg) {
	if v.filtering {
		return
	}
	l := v.layout()

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		v.virt.ScrollBy(-3)
	case msg.Button == tea.MouseButtonWheelDown:
		v.virt.ScrollBy(3)
	case msg.Button == tea.MouseButtonWheelLeft:
		v.scrollX -= 4
		v.clampScrollX(l)
	case msg.Button == tea.MouseButtonWheelRight:
		v.scrollX += 4
		v.clampScrollX(l)

	case msg.Action == tea.MouseActionRelease:
		// A drag ends wherever the button is released.
		v.ctrl.EndDrag()

	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		ci := v.colAt(l, msg.X)
		if ci < 0 {
			return
		}
		if msg.Y == 0 {
			if p, ok := v.ctrl.Cursor(); ok {
				v.ctrl.Click(grid.Point{Row: p.Row, Col: ci})
			}
			return
		}
		ri := v.rowAt(msg.Y)
		if ri < 0 {
			return
		}
		v.ctrl.BeginDrag(grid.Point{Row: ri, Col: ci})
		if !v.ctrl.Selection().IsEditing() {
			v.editor.Blur()
		}

	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionMotion:
		if !v.ctrl.Selection().Dragging() {
			return
		}
		p := v.dragPoint(l, msg.X, msg.Y)
		v.ctrl.DragTo(p)
		if end := v.ctrl.Selection().Range().End; end != nil {
			v.revealPoint(*end)
		}
	}
}

// colAt maps a content x to a visible column index, or -1.
func (v *GridView) colAt(l gridLayout, x int) int {
	if x < l.pinned {
		return l.geo.ColumnAt(x)
	}
	return l.geo.ColumnAt(x + v.scrollX)
}

// rowAt maps a content y (header on line 0) to a visible row index, or -1.
func (v *GridView) rowAt(y int) int {
	line := y - 1
	if line < 0 || line >= v.bodyHeight() {
		return -1
	}
	return v.virt.IndexAt(v.virt.ScrollOffset() + line)
}

// dragPoint resolves a drag position, pinning positions outside the body
// to the nearest edge so a drag past the border keeps extending.
func (v *GridView) dragPoint(l gridLayout, x, y int) grid.Point {
	rows := len(l.frame.Rows)
	var p grid.Point
	switch line := y - 1; {
	case line < 0:
		p.Row = max(v.virt.IndexAt(v.virt.ScrollOffset())-1, 0)
	case line >= v.bodyHeight():
		p.Row = v.virt.IndexAt(v.virt.ScrollOffset() + v.bodyHeight() - 1)
		if p.Row >= 0 {
			p.Row++
		}
	default:
		p.Row = v.virt.IndexAt(v.virt.ScrollOffset() + line)
	}
	if p.Row < 0 {
		p.Row = rows - 1
	}
	p.Col = v.colAt(l, x)
	if p.Col < 0 {
		if x < l.geo.IndexWidth {
			p.Col = 0
		} else {
			p.Col = len(l.frame.Columns) - 1
		}
	}
	return p
}

// ── Rendering ───────────────────────────────────────────────────────────────

func (v *GridView) View() string {
	if v.width == 0 || v.height == 0 {
		return ""
	}
	l := v.layout()
	if len(l.frame.Columns) == 0 {
		return renderEmpty(v.styles, v.width, v.height, "No visible columns", "Show a column from the Columns tab (alt+c)")
	}
	cur, hasCur := v.ctrl.Cursor()
	bodyH := v.bodyHeight()

	var b strings.Builder
	b.WriteString(v.renderHeader(l, cur, hasCur))

	var body []string
	if len(l.frame.Rows) == 0 {
		hint := "Paste with ctrl+v or your terminal's paste to add rows"
		if v.sess.Table().Filter != nil {
			hint = "No rows match the filter. Press / and submit an empty filter to clear it"
		}
		body = strings.Split(renderEmpty(v.styles, v.width-1, bodyH, "No rows", hint), "\n")
	} else {
		body = v.renderBody(l, cur, hasCur, bodyH)
	}

	bar := components.Scrollbar(v.styles, bodyH, v.virt.TotalSize(), v.virt.ScrollOffset())

	for i := 0; i < bodyH; i++ {
		b.WriteByte('\n')
		line := ""
		if i < len(body) {
			line = body[i]
		}
		b.WriteString(fitLine(line, v.width-1))
		if i < len(bar) {
			b.WriteString(bar[i])
		}
	}
	b.WriteByte('\n')
	b.WriteString(v.renderFooter(l))
	return b.String()
}

func (v *GridView) renderBody(l gridLayout, cur grid.Point, hasCur bool, bodyH int) []string {
	lines := make([]string, bodyH)
	offset := v.virt.ScrollOffset()
	for _, item := range v.virt.VirtualItems() {
		if item.Index >= len(l.frame.Rows) {
			continue
		}
		for k, line := range v.renderRow(l, item.Index, l.frame.Rows[item.Index], item.Size, cur, hasCur) {
			if y := item.Start - offset + k; y >= 0 && y < bodyH {
				lines[y] = line
			}
		}
	}
	return lines
}

func (v *GridView) renderHeader(l gridLayout, cur grid.Point, hasCur bool) string {
	sep := v.styles.GridHeader.Render("│")
	cell := func(ci, w int) string {
		col := l.frame.Columns[ci]
		st := v.styles.GridHeader
		switch {
		case hasCur && cur.Col == ci:
			st = v.styles.GridHeaderActive
		case ci < l.freeze:
			st = v.styles.GridHeaderFrozen
		}
		return st.Render(ui.Fit(" "+typeGlyph(col.Type)+" "+col.Name, w-1)) + sep
	}
	idx := ""
	if l.geo.IndexWidth > 0 {
		idx = v.styles.GridIndex.Render(ui.FitRight("#", l.geo.IndexWidth-1) + " ")
	}
	add := v.styles.GridAdd.Render(ui.Fit(" +", l.geo.AddWidth))
	return fitLine(v.compose(l, idx, cell, add), v.width)
}

// renderRow renders the size lines of one row. Only the first line carries
// the row number.
func (v *GridView) renderRow(l gridLayout, ri int, row grid.Row, size int, cur grid.Point, hasCur bool) []string {
	st := v.styles.GridIndex
	if hasCur && cur.Row == ri {
		st = st.Foreground(v.styles.Theme.Primary)
	}
	add := strings.Repeat(" ", l.geo.AddWidth)
	out := make([]string, max(size, 1))
	for k := range out {
		cell := func(ci, w int) string { return v.renderCell(l, ri, ci, row, w, k, len(out), cur, hasCur) }
		idx := ""
		if l.geo.IndexWidth > 0 {
			label := ""
			if k == 0 {
				label = strconv.Itoa(ri + 1)
			}
			idx = st.Render(ui.FitRight(label, l.geo.IndexWidth-1) + " ")
		}
		out[k] = v.compose(l, idx, cell, add)
	}
	return out
}

// compose lays out the pinned part (index and frozen columns) followed by
// the horizontally scrolled remainder. Only columns intersecting the
// scrolled window are rendered.
func (v *GridView) compose(l gridLayout, idx string, cell func(ci, w int) string, add string) string {
	var pinned strings.Builder
	pinned.WriteString(idx)
	for ci := 0; ci < l.freeze; ci++ {
		pinned.WriteString(cell(ci, l.geo.WidthOf(l.geo.Order[ci])))
	}

	var scroll strings.Builder
	left, cut := 0, -1
	lo, hi := v.scrollX, v.scrollX+l.avail
	for ci := l.freeze; ci < len(l.geo.Order); ci++ {
		w := l.geo.WidthOf(l.geo.Order[ci])
		if left+w > lo && left < hi {
			if cut < 0 {
				cut = left
			}
			scroll.WriteString(cell(ci, w))
		}
		left += w
	}
	if aw := l.geo.AddWidth; aw > 0 && left+aw > lo && left < hi {
		if cut < 0 {
			cut = left
		}
		scroll.WriteString(add)
	}
	if cut < 0 || l.avail == 0 {
		return pinned.String()
	}
	return pinned.String() + ansi.Cut(scroll.String(), lo-cut, hi-cut)
}

// renderCell renders line k of a cell in a row of the given number of lines.
// Text wraps across the lines; the last line takes whatever is left.
func (v *GridView) renderCell(l gridLayout, ri, ci int, row grid.Row, w, k, lines int, cur grid.Point, hasCur bool) string {
	t := v.sess.Table()
	th := v.styles.Theme
	col := l.frame.Columns[ci]
	sel := v.ctrl.Selection()

	ed := sel.Editing()
	editing := ed.RowID == row.ID && ed.ColumnID == col.ID
	text := grid.DisplayValue(row.Get(col.ID), col.Type)
	switch {
	case editing:
		text = v.editor.Value()
	case lines > 1 && col.Type != grid.TypeNumber:
		parts := wrapCell(text, w)
		switch {
		case k >= len(parts):
			text = ""
		case k == lines-1:
			text = strings.Join(parts[k:], " ")
		default:
			text = parts[k]
		}
	}
	if k > 0 && (editing || col.Type == grid.TypeNumber) {
		text = ""
	}
	var body string
	if col.Type == grid.TypeNumber && !editing {
		body = ui.FitRight(text+" ", w-1)
	} else {
		body = ui.Fit(" "+text, w-1)
	}

	st := v.styles.GridCell
	if col.Type.ReadOnly() {
		st = v.styles.GridReadOnly
	}
	bg := grid.EvaluateColors(t.Rules, row, col.ID, t.ColumnColors, t.Meta).Background()
	switch {
	case bg != "":
		st = st.Background(lipgloss.Color(bg)).Foreground(ui.Contrast(bg))
	case ci < l.freeze:
		st = st.Background(th.Frozen)
	}
	if sel.IsInRange(ri, ci) {
		base := bg
		if base == "" {
			base = string(th.Bg)
		}
		tinted := grid.Tint(base, string(th.RangeTint), rangeTintAmount)
		st = st.Background(lipgloss.Color(tinted)).Foreground(ui.Contrast(tinted))
	}
	switch {
	case editing:
		st = v.styles.GridEditor
	case hasCur && cur.Row == ri && cur.Col == ci:
		st = v.styles.GridCursor
	}
	return st.Render(body) + lipgloss.NewStyle().Foreground(th.Gridline).Render("│")
}

func (v *GridView) renderFooter(l gridLayout) string {
	switch {
	case v.filtering:
		return v.filter.View()
	case v.ctrl.Selection().IsEditing():
		name := ""
		if col, ok := l.frame.Column(v.ctrl.Selection().Editing().ColumnID); ok {
			name = col.Name
		}
		label := v.styles.KeyBind.Render("✎ "+ui.Truncate(name, 16)) + v.styles.Muted.Render(" › ")
		return label + v.editor.View()
	}

	var parts []string
	if f := v.sess.Table().Filter; f != nil {
		parts = append(parts, lipgloss.NewStyle().Foreground(v.styles.Theme.Warning).Render("⧩ "+f.String()))
	}
	if rows, cols := v.ctrl.Selection().Range().Size(); rows > 0 {
		parts = append(parts, fmt.Sprintf("%d×%d selected", rows, cols),
			ui.RenderKeyValue(v.styles, v.keys.Grid.Copy.Help().Key, "copy"),
			ui.RenderKeyValue(v.styles, v.keys.Grid.Fill.Help().Key, "fill"))
	} else {
		parts = append(parts,
			ui.RenderKeyValue(v.styles, "enter", "edit"),
			ui.RenderKeyValue(v.styles, v.keys.Filter.Help().Key, "filter"),
			ui.RenderKeyValue(v.styles, "shift+↑↓←→", "range"),
			ui.RenderKeyValue(v.styles, "?", "help"))
	}
	return fitLine(v.styles.Muted.Render(" ")+strings.Join(parts, v.styles.Muted.Render("  ·  ")), v.width)
}

func (v *GridView) ShortHelp() []components.HelpEntry {
	return []components.HelpEntry{
		{Key: "enter", Desc: "Edit cell (enter saves, esc cancels)"},
		{Key: helpKey(v.keys.Paste), Desc: "Paste from clipboard"},
		{Key: helpKey(v.keys.Filter), Desc: "Filter rows (empty clears)"},
		{Key: helpKey(v.keys.Freeze), Desc: "Freeze through this column"},
		{Key: helpKey(v.keys.Widen) + " " + helpKey(v.keys.Narrow), Desc: "Widen / narrow column"},
		{Key: helpKey(v.keys.Taller) + " " + helpKey(v.keys.Shorter), Desc: "Taller / shorter rows (wrap text)"},
		{Key: "esc", Desc: "Clear range"},
	}
}

// fitLine cuts or pads a rendered line to exactly w cells.
func fitLine(s string, w int) string {
	if w <= 0 {
		return ""
	}
	n := ansi.StringWidth(s)
	switch {
	case n > w:
		return ansi.Truncate(s, w, "")
	case n < w:
		return s + strings.Repeat(" ", w-n)
	}
	return s
}

// columnLabel names a visible column spreadsheet style: A..Z, AA..
func columnLabel(i int) string {
	var b []byte
	for i++; i > 0; i = (i - 1) / 26 {
		b = append([]byte{byte('A' + (i-1)%26)}, b...)
	}
	return string(b)
}

func typeGlyph(t grid.ColumnType) string {
	switch t {
	case grid.TypeNumber:
		return "#"
	case grid.TypeDate:
		return "◷"
	case grid.TypeTime:
		return "◴"
	case grid.TypeSelect:
		return "◉"
	case grid.TypeMultiSelect:
		return "☰"
	case grid.TypeUser:
		return "@"
	case grid.TypeRelation:
		return "↗"
	case grid.TypeAttachment:
		return "⎘"
	case grid.TypeFormula:
		return "ƒ"
	default:
		return "T"
	}
}

var errNoClipboard = errors.New("clipboard unavailable")
