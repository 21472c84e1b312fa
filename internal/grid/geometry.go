package grid

// Geometry computes column positions for a display-ordered list of visible
// columns. Widths are in terminal cells.
type Geometry struct {
	Order      []string
	Widths     map[string]int
	Fallback   int
	IndexWidth int
	AddWidth   int
}

// WidthOf returns the configured width of a column or the fallback.
func (g Geometry) WidthOf(colID string) int {
	if w, ok := g.Widths[colID]; ok && w > 0 {
		return w
	}
	return g.Fallback
}

// StickyLeft returns the left offset of the column at idx: the index column
// plus every column before it.
func (g Geometry) StickyLeft(idx int) int {
	left := g.IndexWidth
	for i := 0; i < idx && i < len(g.Order); i++ {
		left += g.WidthOf(g.Order[i])
	}
	return left
}

// TotalWidth is the full scrollable content width including the trailing
// add-column slot.
func (g Geometry) TotalWidth() int {
	return g.StickyLeft(len(g.Order)) + g.AddWidth
}

// ColumnAt maps an x offset (in content space) to a column index, or -1 when
// x falls on the index column or past the last column.
func (g Geometry) ColumnAt(x int) int {
	if x < g.IndexWidth {
		return -1
	}
	left := g.IndexWidth
	for i, id := range g.Order {
		w := g.WidthOf(id)
		if x < left+w {
			return i
		}
		left += w
	}
	return -1
}
