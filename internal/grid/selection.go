package grid

// Point is a cell position in visible-row-index / visible-column-index space.
type Point struct {
	Row int
	Col int
}

// CellRef identifies a cell by row and column id. The zero value is "no cell".
type CellRef struct {
	RowID    string
	ColumnID string
}

// IsZero reports whether no cell is referenced.
func (c CellRef) IsZero() bool { return c.RowID == "" || c.ColumnID == "" }

// Range is a rectangular block between an anchor (Start) and a cursor (End).
// Both endpoints are nil or both are set.
type Range struct {
	Start *Point
	End   *Point
}

// Active reports whether both endpoints are set.
func (r Range) Active() bool { return r.Start != nil && r.End != nil }

// Bounds returns the normalized rectangle.
func (r Range) Bounds() (top, left, bottom, right int, ok bool) {
	if !r.Active() {
		return 0, 0, 0, 0, false
	}
	top, bottom = minMax(r.Start.Row, r.End.Row)
	left, right = minMax(r.Start.Col, r.End.Col)
	return top, left, bottom, right, true
}

// Contains reports whether (row, col) lies inside the normalized rectangle.
func (r Range) Contains(row, col int) bool {
	top, left, bottom, right, ok := r.Bounds()
	if !ok {
		return false
	}
	return row >= top && row <= bottom && col >= left && col <= right
}

// Size returns the number of rows and columns covered.
func (r Range) Size() (rows, cols int) {
	top, left, bottom, right, ok := r.Bounds()
	if !ok {
		return 0, 0
	}
	return bottom - top + 1, right - left + 1
}

func minMax(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

// Selection holds the active cell, the in-place edit cell, the range and the
// drag flag. It performs no I/O.
type Selection struct {
	selected CellRef
	editing  CellRef
	rng      Range
	dragging bool
}

// Selected returns the active cell.
func (s *Selection) Selected() CellRef { return s.selected }

// Editing returns the cell in edit mode, or the zero CellRef.
func (s *Selection) Editing() CellRef { return s.editing }

// IsEditing reports whether a cell is in edit mode.
func (s *Selection) IsEditing() bool { return !s.editing.IsZero() }

// Range returns the current range.
func (s *Selection) Range() Range { return s.rng }

// Dragging reports whether a drag selection is in progress.
func (s *Selection) Dragging() bool { return s.dragging }

// SelectCell makes (rowID, colID) the active cell with single-click
// semantics: editing and range are cleared.
func (s *Selection) SelectCell(rowID, colID string) {
	s.selected = CellRef{RowID: rowID, ColumnID: colID}
	s.editing = CellRef{}
	s.rng = Range{}
	s.dragging = false
}

// BeginDrag selects the cell at p and seeds the range at that point.
func (s *Selection) BeginDrag(rowID, colID string, p Point) {
	s.selected = CellRef{RowID: rowID, ColumnID: colID}
	s.editing = CellRef{}
	start, end := p, p
	s.rng = Range{Start: &start, End: &end}
	s.dragging = true
}

// ExtendRangeTo moves the range cursor while dragging; otherwise it is a no-op.
func (s *Selection) ExtendRangeTo(p Point) {
	if !s.dragging || s.rng.Start == nil {
		return
	}
	end := p
	s.rng.End = &end
}

// EndDrag finishes a drag. The range stays.
func (s *Selection) EndDrag() { s.dragging = false }

// SetRange replaces the range directly. Passing a nil endpoint clears it.
func (s *Selection) SetRange(start, end *Point) {
	if start == nil || end == nil {
		s.rng = Range{}
		return
	}
	a, b := *start, *end
	s.rng = Range{Start: &a, End: &b}
}

// ClearRange drops the range.
func (s *Selection) ClearRange() { s.rng = Range{} }

// IsInRange reports whether (row, col) is inside the current range.
func (s *Selection) IsInRange(row, col int) bool { return s.rng.Contains(row, col) }

// BeginEdit puts the active cell into edit mode. It returns false, leaving
// state untouched, when no cell is selected or the column is read-only.
func (s *Selection) BeginEdit(t ColumnType) bool {
	if s.selected.IsZero() || t.ReadOnly() {
		return false
	}
	s.editing = s.selected
	return true
}

// EndEdit leaves edit mode.
func (s *Selection) EndEdit() { s.editing = CellRef{} }

// Clamp fits a stale range into a rows x cols visible area, clearing it
// when the area is empty.
func (s *Selection) Clamp(rows, cols int) {
	if !s.rng.Active() {
		return
	}
	if rows <= 0 || cols <= 0 {
		s.rng = Range{}
		return
	}
	start := clampPoint(*s.rng.Start, rows, cols)
	end := clampPoint(*s.rng.End, rows, cols)
	s.rng = Range{Start: &start, End: &end}
}

func clampPoint(p Point, rows, cols int) Point {
	return Point{Row: clamp(p.Row, 0, rows-1), Col: clamp(p.Col, 0, cols-1)}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
