package grid

// fillUpdater copies the anchor row's value of each column in the range into
// every other cell of that column within the range. Read-only columns are
// skipped. ok is false when there is nothing to fill.
func fillUpdater(f Frame, rng Range, anchor CellRef) (update func([]Row) []Row, cells int, ok bool) {
	top, left, bottom, right, active := rng.Bounds()
	if !active || anchor.IsZero() {
		return nil, 0, false
	}
	bottom, right = min(bottom, len(f.Rows)-1), min(right, len(f.Columns)-1)
	if top > bottom || left > right {
		return nil, 0, false
	}

	var source Row
	found := false
	for _, r := range f.Rows {
		if r.ID == anchor.RowID {
			source, found = r, true
			break
		}
	}
	if !found {
		return nil, 0, false
	}

	type target struct{ rowID, colID string }
	targets := make([]target, 0, (bottom-top+1)*(right-left+1))
	for c := left; c <= right; c++ {
		col := f.Columns[c]
		if col.Type.ReadOnly() || col.ID == IDColumn {
			continue
		}
		for r := top; r <= bottom; r++ {
			id := f.Rows[r].ID
			if id == anchor.RowID && col.ID == anchor.ColumnID {
				continue
			}
			targets = append(targets, target{rowID: id, colID: col.ID})
		}
	}
	if len(targets) == 0 {
		return func(prev []Row) []Row { return prev }, 0, true
	}

	byRow := make(map[string][]string, bottom-top+1)
	for _, t := range targets {
		byRow[t.rowID] = append(byRow[t.rowID], t.colID)
	}
	update = func(prev []Row) []Row {
		next := make([]Row, len(prev))
		for i, r := range prev {
			cols, hit := byRow[r.ID]
			if !hit {
				next[i] = r
				continue
			}
			r = r.Clone()
			if r.Cells == nil {
				r.Cells = map[string]Value{}
			}
			for _, colID := range cols {
				r.Cells[colID] = source.Get(colID)
			}
			next[i] = r
		}
		return next
	}
	return update, len(targets), true
}
