package grid

import "testing"

func TestComputeVisibleRange(t *testing.T) {
	one := func(int) int { return 1 }
	tests := []struct {
		name        string
		vp          Viewport
		count       int
		overscan    int
		first, last int
	}{
		{"top", Viewport{ScrollOffset: 0, Height: 10}, 100, 0, 0, 9},
		{"top with overscan", Viewport{ScrollOffset: 0, Height: 10}, 100, 3, 0, 12},
		{"middle", Viewport{ScrollOffset: 50, Height: 10}, 100, 2, 48, 61},
		{"bottom", Viewport{ScrollOffset: 95, Height: 10}, 100, 3, 92, 99},
		{"short list", Viewport{ScrollOffset: 0, Height: 10}, 4, 3, 0, 3},
		{"empty", Viewport{ScrollOffset: 0, Height: 10}, 0, 3, 0, -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := ComputeVisibleRange(tc.vp, tc.count, tc.overscan, one)
			if r.First != tc.first || r.Last != tc.last {
				t.Fatalf("got %d..%d, want %d..%d", r.First, r.Last, tc.first, tc.last)
			}
		})
	}
}

func TestComputeVisibleRangeVariableSizes(t *testing.T) {
	// Rows alternate 1 and 3 lines: offsets 0,1,4,5,8,9,...
	size := func(i int) int { return 1 + 2*(i%2) }
	r := ComputeVisibleRange(Viewport{ScrollOffset: 4, Height: 4}, 10, 0, size)
	if r.First != 2 || r.Last != 3 {
		t.Fatalf("got %d..%d, want 2..3", r.First, r.Last)
	}
	if r.Offsets[3] != 5 {
		t.Fatalf("got offset %d, want 5", r.Offsets[3])
	}
}

func TestVirtualizerScrollClamps(t *testing.T) {
	v := NewVirtualizer(20, nil, 0)
	v.SetViewportHeight(5)
	v.ScrollTo(100)
	if got := v.ScrollOffset(); got != 15 {
		t.Fatalf("got %d, want 15", got)
	}
	v.ScrollBy(-100)
	if got := v.ScrollOffset(); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
	v.SetCount(3)
	v.ScrollTo(10)
	if got := v.ScrollOffset(); got != 0 {
		t.Fatalf("short list: got %d, want 0", got)
	}
}

func TestVirtualizerScrollToIndex(t *testing.T) {
	v := NewVirtualizer(50, nil, 1)
	v.SetViewportHeight(10)
	v.ScrollToIndex(25)
	if got := v.ScrollOffset(); got != 16 {
		t.Fatalf("got %d, want 16", got)
	}
	v.ScrollToIndex(20)
	if got := v.ScrollOffset(); got != 16 {
		t.Fatalf("visible item scrolled: got %d", got)
	}
	v.ScrollToIndex(3)
	if got := v.ScrollOffset(); got != 3 {
		t.Fatalf("got %d, want 3", got)
	}
	items := v.VirtualItems()
	if items[0].Index != 2 || items[len(items)-1].Index != 13 {
		t.Fatalf("got %d..%d, want 2..13", items[0].Index, items[len(items)-1].Index)
	}
}

func TestVirtualizerMeasure(t *testing.T) {
	v := NewVirtualizer(5, func(int) int { return 2 }, 0)
	if got := v.TotalSize(); got != 10 {
		t.Fatalf("got %d, want 10", got)
	}
	v.MeasureItem(0, 4)
	if got := v.TotalSize(); got != 12 {
		t.Fatalf("after measure: got %d, want 12", got)
	}
	if got := v.IndexAt(5); got != 1 {
		t.Fatalf("IndexAt: got %d, want 1", got)
	}
	v.SetEstimator(func(int) int { return 1 })
	if got := v.TotalSize(); got != 5 {
		t.Fatalf("after re-estimate: got %d, want 5", got)
	}
	if got := v.IndexAt(99); got != -1 {
		t.Fatalf("past end: got %d, want -1", got)
	}
}

func TestGeometry(t *testing.T) {
	g := Geometry{
		Order:      []string{"a", "b", "c"},
		Widths:     map[string]int{"a": 10, "c": 4},
		Fallback:   8,
		IndexWidth: 5,
		AddWidth:   3,
	}
	if got := g.StickyLeft(0); got != 5 {
		t.Fatalf("got %d, want 5", got)
	}
	if got := g.StickyLeft(2); got != 23 {
		t.Fatalf("got %d, want 23", got)
	}
	if got := g.TotalWidth(); got != 30 {
		t.Fatalf("got %d, want 30", got)
	}
	for x, want := range map[int]int{0: -1, 5: 0, 14: 0, 15: 1, 23: 2, 26: 2, 27: -1} {
		if got := g.ColumnAt(x); got != want {
			t.Fatalf("ColumnAt(%d): got %d, want %d", x, got, want)
		}
	}
}

func TestMoveAndResizeColumn(t *testing.T) {
	order := []string{"a", "b", "c", "d"}
	got := MoveColumn(order, 0, 2)
	if want := []string{"b", "c", "a", "d"}; !equalStrings(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if order[0] != "a" {
		t.Fatal("input mutated")
	}
	if got := MoveColumn(order, 3, 99); !equalStrings(got, order) {
		t.Fatalf("got %v", got)
	}
	w := ResizeColumn(nil, "a", 5, -10, 4)
	if w["a"] != 4 {
		t.Fatalf("got %d, want 4", w["a"])
	}
	if got := ClampFreeze(9, 3); got != 3 {
		t.Fatalf("got %d, want 3", got)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
