package grid

import "testing"

func TestRangeContainmentSymmetry(t *testing.T) {
	corners := []struct{ a, b Point }{
		{Point{1, 1}, Point{3, 4}},
		{Point{3, 4}, Point{1, 1}},
		{Point{3, 1}, Point{1, 4}},
		{Point{1, 4}, Point{3, 1}},
	}
	for _, tc := range corners {
		var s Selection
		s.SetRange(&tc.a, &tc.b)
		for r := 0; r <= 5; r++ {
			for c := 0; c <= 5; c++ {
				want := r >= 1 && r <= 3 && c >= 1 && c <= 4
				if got := s.IsInRange(r, c); got != want {
					t.Fatalf("corners %v/%v cell (%d,%d): got %v, want %v", tc.a, tc.b, r, c, got, want)
				}
			}
		}
	}
}

func TestRangeBoundsAndSize(t *testing.T) {
	start, end := Point{Row: 4, Col: 2}, Point{Row: 1, Col: 0}
	r := Range{Start: &start, End: &end}
	top, left, bottom, right, ok := r.Bounds()
	if !ok || top != 1 || left != 0 || bottom != 4 || right != 2 {
		t.Fatalf("got %d,%d..%d,%d", top, left, bottom, right)
	}
	if rows, cols := r.Size(); rows != 4 || cols != 3 {
		t.Fatalf("got %dx%d, want 4x3", rows, cols)
	}
	if (Range{Start: &start}).Active() {
		t.Fatal("half-set range reported active")
	}
}

func TestSelectCellClearsEditAndRange(t *testing.T) {
	var s Selection
	s.BeginDrag("r1", "a", Point{})
	s.ExtendRangeTo(Point{Row: 2, Col: 2})
	s.EndDrag()
	s.BeginEdit(TypeText)

	s.SelectCell("r2", "b")
	if s.IsEditing() || s.Range().Active() || s.Dragging() {
		t.Fatal("SelectCell left stale state")
	}
	if got := s.Selected(); got != (CellRef{RowID: "r2", ColumnID: "b"}) {
		t.Fatalf("got %v", got)
	}
}

func TestExtendRangeOnlyWhileDragging(t *testing.T) {
	var s Selection
	s.ExtendRangeTo(Point{Row: 3, Col: 3})
	if s.Range().Active() {
		t.Fatal("range created without a drag")
	}
	s.BeginDrag("r1", "a", Point{Row: 1, Col: 1})
	s.ExtendRangeTo(Point{Row: 2, Col: 3})
	s.EndDrag()
	s.ExtendRangeTo(Point{Row: 9, Col: 9})
	if rows, cols := s.Range().Size(); rows != 2 || cols != 3 {
		t.Fatalf("got %dx%d, want 2x3", rows, cols)
	}
}

func TestBeginEditRefusesReadOnly(t *testing.T) {
	var s Selection
	if s.BeginEdit(TypeText) {
		t.Fatal("edit began with no selection")
	}
	s.SelectCell("r1", "calc")
	if s.BeginEdit(TypeFormula) {
		t.Fatal("edit began on a formula column")
	}
	if !s.BeginEdit(TypeNumber) || s.Editing() != s.Selected() {
		t.Fatal("edit did not begin on a number column")
	}
}

func TestClampRange(t *testing.T) {
	var s Selection
	a, b := Point{Row: 0, Col: 0}, Point{Row: 8, Col: 8}
	s.SetRange(&a, &b)
	s.Clamp(3, 2)
	if _, _, bottom, right, _ := s.Range().Bounds(); bottom != 2 || right != 1 {
		t.Fatalf("got %d,%d, want 2,1", bottom, right)
	}
	s.Clamp(0, 2)
	if s.Range().Active() {
		t.Fatal("range kept on an empty table")
	}
}
