package grid

import (
	"fmt"
	"log"
	"maps"
	"slices"

	"github.com/charmbracelet/bubbles/key"
)

// Structure is the host's column structure at the time of an operation.
type Structure struct {
	Order      []string
	Visibility map[string]bool
	Meta       ColumnMeta
}

// Options wires a controller to its host.
type Options struct {
	Keys      KeyMap
	Mutations Mutations
	Clipboard Clipboard
	IDs       IDGen
	Frame     func() Frame
	Structure func() Structure
}

// Outcome reports what a controller operation did.
type Outcome struct {
	// Handled means the key or event was consumed and its default must not run.
	Handled bool
	// Notice is transient user feedback such as "Copied 6 cells".
	Notice string
	// Err is a refused operation to report to the user.
	Err error
	// Prompt is set when a paste waits for the header decision.
	Prompt *PendingPaste
}

// Controller is the per-grid engine instance. It owns the selection and
// routes keys, paste and drag events to the clipboard and fill engines.
type Controller struct {
	sel     Selection
	keys    KeyMap
	mut     Mutations
	clip    Clipboard
	ids     IDGen
	frame   func() Frame
	struc   func() Structure
	pending *PendingPaste
}

// NewController creates a controller. Frame and Structure are required.
func NewController(opts Options) *Controller {
	if opts.IDs == nil {
		opts.IDs = NewSequence("")
	}
	return &Controller{
		keys:  opts.Keys,
		mut:   opts.Mutations,
		clip:  opts.Clipboard,
		ids:   opts.IDs,
		frame: opts.Frame,
		struc: opts.Structure,
	}
}

// Selection exposes the selection model for rendering.
func (c *Controller) Selection() *Selection { return &c.sel }

// Keys returns the controller key map.
func (c *Controller) Keys() KeyMap { return c.keys }

// Pending returns the paste awaiting a header decision, if any.
func (c *Controller) Pending() *PendingPaste { return c.pending }

// Sync reconciles selection state with a changed frame: stale ranges are
// clamped, an edit on a vanished cell ends, and an empty selection lands on
// the first cell.
func (c *Controller) Sync() {
	f := c.frame()
	c.sel.Clamp(len(f.Rows), len(f.Columns))
	if ed := c.sel.Editing(); !ed.IsZero() && (f.RowIndex(ed.RowID) < 0 || f.ColIndex(ed.ColumnID) < 0) {
		c.sel.EndEdit()
	}
	if c.sel.Selected().IsZero() && len(f.Rows) > 0 && len(f.Columns) > 0 {
		c.sel.SelectCell(f.Rows[0].ID, f.Columns[0].ID)
	}
}

// Cursor returns the visible indices of the selected cell, clamped into the
// frame. ok is false when the frame is empty or nothing is selected.
func (c *Controller) Cursor() (Point, bool) {
	return c.cursorIn(c.frame())
}

func (c *Controller) cursorIn(f Frame) (Point, bool) {
	sel := c.sel.Selected()
	if sel.IsZero() || len(f.Rows) == 0 || len(f.Columns) == 0 {
		return Point{}, false
	}
	return Point{Row: max(f.RowIndex(sel.RowID), 0), Col: max(f.ColIndex(sel.ColumnID), 0)}, true
}

// HandleKey dispatches a key event: copy, then fill, then navigation. Nothing
// fires while a cell is being edited or when no cell is selected.
func (c *Controller) HandleKey(k fmt.Stringer) Outcome {
	if c.sel.IsEditing() || c.sel.Selected().IsZero() {
		return Outcome{}
	}
	f := c.frame()
	c.sel.Clamp(len(f.Rows), len(f.Columns))

	if out, handled := c.handleCopy(k, f); handled {
		return out
	}
	out, handled := c.handleFill(k, f)
	if handled {
		return out
	}
	nav := c.handleNavigation(k, f)
	if !nav.Handled {
		nav.Err = out.Err
	}
	return nav
}

func (c *Controller) handleCopy(k fmt.Stringer, f Frame) (Outcome, bool) {
	if !key.Matches(k, c.keys.Copy) {
		return Outcome{}, false
	}
	text, n := CopyText(f, c.sel.Range())
	if c.clip != nil {
		// Copy is best effort; the notice still reports the cells.
		if err := c.clip.WriteText(text); err != nil {
			log.Printf("grid: copy: %v", err)
		}
	}
	return Outcome{Handled: true, Notice: fmt.Sprintf("Copied %d cells", n)}, true
}

func (c *Controller) handleFill(k fmt.Stringer, f Frame) (Outcome, bool) {
	if !key.Matches(k, c.keys.Fill) {
		return Outcome{}, false
	}
	update, n, ok := fillUpdater(f, c.sel.Range(), c.sel.Selected())
	if !ok {
		return Outcome{Err: ErrNoRange}, false
	}
	if n > 0 && c.mut.SetData != nil {
		c.mut.SetData(update)
	}
	return Outcome{Handled: true, Notice: fmt.Sprintf("Filled %d cells", n)}, true
}

func (c *Controller) handleNavigation(k fmt.Stringer, f Frame) Outcome {
	var dr, dc int
	switch {
	case key.Matches(k, c.keys.Up):
		dr = -1
	case key.Matches(k, c.keys.Down):
		dr = 1
	case key.Matches(k, c.keys.Left), key.Matches(k, c.keys.ShiftTab):
		dc = -1
	case key.Matches(k, c.keys.Right), key.Matches(k, c.keys.Tab):
		dc = 1
	case key.Matches(k, c.keys.Enter):
		if col, ok := f.Column(c.sel.Selected().ColumnID); ok {
			c.sel.BeginEdit(col.Type)
		}
		return Outcome{Handled: true}
	default:
		return Outcome{}
	}

	p, ok := c.cursorIn(f)
	if !ok {
		return Outcome{Handled: true}
	}
	p.Row = clamp(p.Row+dr, 0, len(f.Rows)-1)
	p.Col = clamp(p.Col+dc, 0, len(f.Columns)-1)
	c.sel.SelectCell(f.Rows[p.Row].ID, f.Columns[p.Col].ID)
	return Outcome{Handled: true}
}

// Click selects the cell at p with single-click semantics.
func (c *Controller) Click(p Point) {
	f := c.frame()
	if p.Row < 0 || p.Row >= len(f.Rows) || p.Col < 0 || p.Col >= len(f.Columns) {
		return
	}
	c.sel.SelectCell(f.Rows[p.Row].ID, f.Columns[p.Col].ID)
}

// BeginDrag selects the cell at p and starts a range there.
func (c *Controller) BeginDrag(p Point) {
	f := c.frame()
	if p.Row < 0 || p.Row >= len(f.Rows) || p.Col < 0 || p.Col >= len(f.Columns) {
		return
	}
	c.sel.BeginDrag(f.Rows[p.Row].ID, f.Columns[p.Col].ID, p)
}

// DragTo extends the range while dragging. Repeated events are idempotent.
func (c *Controller) DragTo(p Point) {
	f := c.frame()
	if len(f.Rows) == 0 || len(f.Columns) == 0 {
		return
	}
	c.sel.ExtendRangeTo(clampPoint(p, len(f.Rows), len(f.Columns)))
}

// EndDrag ends a drag wherever the button is released.
func (c *Controller) EndDrag() { c.sel.EndDrag() }

// ExtendSelection grows the range from the active cell by (dr, dc), the
// keyboard counterpart of a drag. The active cell stays the anchor.
func (c *Controller) ExtendSelection(dr, dc int) {
	if c.sel.IsEditing() {
		return
	}
	f := c.frame()
	p, ok := c.cursorIn(f)
	if !ok {
		return
	}
	rng := c.sel.Range()
	start, end := p, p
	if rng.Active() {
		start, end = *rng.Start, *rng.End
	}
	end = clampPoint(Point{Row: end.Row + dr, Col: end.Col + dc}, len(f.Rows), len(f.Columns))
	c.sel.SetRange(&start, &end)
}

// BeginEdit enters edit mode on the selected cell. It returns false for
// read-only columns or when nothing is selected.
func (c *Controller) BeginEdit() bool {
	col, ok := c.frame().Column(c.sel.Selected().ColumnID)
	if !ok {
		return false
	}
	return c.sel.BeginEdit(col.Type)
}

// CancelEdit leaves edit mode without writing.
func (c *Controller) CancelEdit() { c.sel.EndEdit() }

// CommitEdit parses raw by the edited column's type and writes it. A value
// that does not parse is refused and edit mode stays on.
func (c *Controller) CommitEdit(raw string) Outcome {
	ed := c.sel.Editing()
	if ed.IsZero() {
		return Outcome{}
	}
	col, ok := c.frame().Column(ed.ColumnID)
	if !ok {
		c.sel.EndEdit()
		return Outcome{Handled: true, Err: ErrUnknownColumn}
	}
	if col.Type.ReadOnly() {
		c.sel.EndEdit()
		return Outcome{Handled: true}
	}
	v, ok := ParseCell(raw, col)
	if !ok {
		return Outcome{Handled: true, Err: fmt.Errorf("%s %q: %w", col.Type.Label(), raw, ErrInvalidValue)}
	}
	if c.mut.SetData != nil {
		c.mut.SetData(func(prev []Row) []Row {
			next := slices.Clone(prev)
			for i, r := range next {
				if r.ID == ed.RowID {
					next[i] = r.With(col.ID, v)
					break
				}
			}
			return next
		})
	}
	c.sel.EndEdit()
	return Outcome{Handled: true}
}

// Paste handles pasted text. Pastes anchored on the first row, or with no
// selected row, wait for the header decision; others apply immediately.
func (c *Controller) Paste(text string) Outcome {
	if c.sel.IsEditing() {
		return Outcome{}
	}
	matrix := ParseClipboard(text)
	if len(matrix) == 0 {
		return Outcome{}
	}
	f := c.frame()
	c.sel.Clamp(len(f.Rows), len(f.Columns))

	anchor := Point{}
	selected := c.sel.Selected()
	if top, left, _, _, ok := c.sel.Range().Bounds(); ok {
		anchor = Point{Row: top, Col: left}
	} else if p, ok := c.cursorIn(f); ok {
		anchor = p
	}

	if anchor.Row == 0 || selected.RowID == "" {
		c.pending = &PendingPaste{Matrix: matrix, AnchorRow: anchor.Row, AnchorCol: anchor.Col}
		return Outcome{Handled: true, Prompt: c.pending}
	}
	return c.applyPaste(f, matrix, anchor.Row, anchor.Col, false)
}

// ResolvePaste applies the pending paste with the user's header decision.
func (c *Controller) ResolvePaste(useHeader bool) Outcome {
	p := c.pending
	if p == nil {
		return Outcome{}
	}
	c.pending = nil
	return c.applyPaste(c.frame(), p.Matrix, p.AnchorRow, p.AnchorCol, useHeader)
}

// CancelPaste drops a pending paste without mutating anything.
func (c *Controller) CancelPaste() { c.pending = nil }

// ApplyPaste writes matrix at (anchorRow, anchorCol) without prompting.
func (c *Controller) ApplyPaste(matrix [][]string, anchorRow, anchorCol int, useHeader bool) Outcome {
	return c.applyPaste(c.frame(), matrix, anchorRow, anchorCol, useHeader)
}

func (c *Controller) applyPaste(f Frame, matrix [][]string, anchorRow, anchorCol int, useHeader bool) Outcome {
	s := c.struc()
	plan := planPaste(f, s.Meta, matrix, anchorRow, anchorCol, useHeader, c.ids)
	if plan.write == nil {
		return Outcome{Handled: true}
	}

	if (len(plan.renames) > 0 || len(plan.newColumns) > 0) && c.mut.SetColumnMeta != nil {
		c.mut.SetColumnMeta(func(prev ColumnMeta) ColumnMeta {
			next := maps.Clone(prev)
			if next == nil {
				next = ColumnMeta{}
			}
			for id, name := range plan.renames {
				if col, ok := next[id]; ok {
					col.Name = name
					next[id] = col
				}
			}
			for _, col := range plan.newColumns {
				next[col.ID] = col
			}
			return next
		})
	}
	if len(plan.newColumns) > 0 {
		if c.mut.SetColumnOrder != nil {
			c.mut.SetColumnOrder(func(prev []string) []string {
				next := slices.Clone(prev)
				for _, col := range plan.newColumns {
					next = append(next, col.ID)
				}
				return next
			})
		}
		if c.mut.SetColumnVisibility != nil {
			c.mut.SetColumnVisibility(func(prev map[string]bool) map[string]bool {
				next := maps.Clone(prev)
				if next == nil {
					next = map[string]bool{}
				}
				for _, col := range plan.newColumns {
					next[col.ID] = true
				}
				return next
			})
		}
	}
	if c.mut.SetData != nil {
		c.mut.SetData(plan.write)
	}

	notice := fmt.Sprintf("Pasted %d cells", plan.cells)
	if n := len(plan.newColumns); n > 0 {
		notice += fmt.Sprintf(", added %d columns", n)
	}
	return Outcome{Handled: true, Notice: notice}
}

// HideColumn hides a column unless it is the last visible one.
func (c *Controller) HideColumn(id string) error {
	s := c.struc()
	next, err := HideColumn(s.Order, s.Visibility, id)
	if err != nil {
		return err
	}
	if c.mut.SetColumnVisibility != nil {
		c.mut.SetColumnVisibility(func(map[string]bool) map[string]bool { return next })
	}
	c.Sync()
	return nil
}

// ShowColumn makes a column visible.
func (c *Controller) ShowColumn(id string) {
	if c.mut.SetColumnVisibility != nil {
		c.mut.SetColumnVisibility(func(prev map[string]bool) map[string]bool { return ShowColumn(prev, id) })
	}
}

// DeleteColumn removes a column and its cells unless it is the only one.
func (c *Controller) DeleteColumn(id string) error {
	s := c.struc()
	order, meta, err := DeleteColumn(s.Order, s.Meta, id)
	if err != nil {
		return err
	}
	if c.mut.SetColumnOrder != nil {
		c.mut.SetColumnOrder(func([]string) []string { return order })
	}
	if c.mut.SetColumnMeta != nil {
		c.mut.SetColumnMeta(func(ColumnMeta) ColumnMeta { return meta })
	}
	if c.mut.SetData != nil {
		c.mut.SetData(func(prev []Row) []Row {
			next := make([]Row, len(prev))
			for i, r := range prev {
				if _, ok := r.Cells[id]; ok {
					r = r.Clone()
					delete(r.Cells, id)
				}
				next[i] = r
			}
			return next
		})
	}
	if c.sel.Selected().ColumnID == id {
		c.sel.SelectCell("", "")
	}
	c.Sync()
	return nil
}

// MoveColumn reorders the column at position from (in full column order) to position to.
func (c *Controller) MoveColumn(from, to int) {
	if c.mut.SetColumnOrder != nil {
		c.mut.SetColumnOrder(func(prev []string) []string { return MoveColumn(prev, from, to) })
	}
	c.sel.ClearRange()
}

// RenameColumn changes a column's display name.
func (c *Controller) RenameColumn(id, name string) error {
	if _, ok := c.struc().Meta[id]; !ok {
		return ErrUnknownColumn
	}
	if c.mut.SetColumnMeta != nil {
		c.mut.SetColumnMeta(func(prev ColumnMeta) ColumnMeta {
			next := maps.Clone(prev)
			col := next[id]
			col.Name = name
			next[id] = col
			return next
		})
	}
	return nil
}
