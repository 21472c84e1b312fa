package grid

import "sort"

// VirtualItem is one row in the rendered window.
type VirtualItem struct {
	Index int
	Start int
	Size  int
}

// Viewport is the scroll position and visible extent, in lines.
type Viewport struct {
	ScrollOffset int
	Height       int
}

// VisibleRange is the pure windowing function: the first and last item
// intersecting the viewport, extended by overscan, and every item's start.
type VisibleRange struct {
	First   int
	Last    int
	Offsets []int
}

// ComputeVisibleRange returns the items intersecting vp. Last is -1 when
// count is zero.
func ComputeVisibleRange(vp Viewport, count, overscan int, sizeOf func(int) int) VisibleRange {
	offsets := make([]int, count+1)
	for i := 0; i < count; i++ {
		offsets[i+1] = offsets[i] + max(sizeOf(i), 1)
	}
	if count == 0 {
		return VisibleRange{First: 0, Last: -1, Offsets: offsets}
	}
	first := sort.Search(count, func(i int) bool { return offsets[i+1] > vp.ScrollOffset })
	end := vp.ScrollOffset + max(vp.Height, 1)
	last := sort.Search(count, func(i int) bool { return offsets[i] >= end }) - 1
	first = max(first-overscan, 0)
	last = min(max(last, first)+overscan, count-1)
	return VisibleRange{First: first, Last: last, Offsets: offsets}
}

// Virtualizer windows a list of rows. It is a pull-based snapshot:
// VirtualItems is recomputed after every change to count, viewport,
// scroll offset or measurements.
type Virtualizer struct {
	count    int
	estimate func(int) int
	overscan int
	vp       Viewport
	measured map[int]int

	cache *VisibleRange
}

// NewVirtualizer creates a virtualizer with a size estimator and overscan.
func NewVirtualizer(count int, estimate func(int) int, overscan int) *Virtualizer {
	if estimate == nil {
		estimate = func(int) int { return 1 }
	}
	return &Virtualizer{
		count:    count,
		estimate: estimate,
		overscan: max(overscan, 0),
		measured: make(map[int]int),
	}
}

func (v *Virtualizer) sizeOf(i int) int {
	if s, ok := v.measured[i]; ok {
		return s
	}
	return v.estimate(i)
}

func (v *Virtualizer) compute() VisibleRange {
	if v.cache == nil {
		r := ComputeVisibleRange(v.vp, v.count, v.overscan, v.sizeOf)
		v.cache = &r
	}
	return *v.cache
}

func (v *Virtualizer) invalidate() { v.cache = nil }

// SetCount changes the number of rows and clamps the scroll offset.
func (v *Virtualizer) SetCount(n int) {
	if n == v.count {
		return
	}
	v.count = max(n, 0)
	for i := range v.measured {
		if i >= v.count {
			delete(v.measured, i)
		}
	}
	v.invalidate()
	v.ScrollTo(v.vp.ScrollOffset)
}

// Count returns the number of rows.
func (v *Virtualizer) Count() int { return v.count }

// SetEstimator swaps the size estimator (for example after a row-height
// change) and re-measures.
func (v *Virtualizer) SetEstimator(estimate func(int) int) {
	if estimate != nil {
		v.estimate = estimate
	}
	v.Measure()
}

// SetViewportHeight records the visible height after a resize.
func (v *Virtualizer) SetViewportHeight(h int) {
	if h == v.vp.Height {
		return
	}
	v.vp.Height = max(h, 0)
	v.invalidate()
	v.ScrollTo(v.vp.ScrollOffset)
}

// Viewport returns the current viewport.
func (v *Virtualizer) Viewport() Viewport { return v.vp }

// ScrollOffset returns the current scroll offset in lines.
func (v *Virtualizer) ScrollOffset() int { return v.vp.ScrollOffset }

// ScrollTo sets the scroll offset, clamped to the scrollable extent.
func (v *Virtualizer) ScrollTo(offset int) {
	maxOffset := max(v.TotalSize()-v.vp.Height, 0)
	offset = clamp(offset, 0, maxOffset)
	if offset != v.vp.ScrollOffset {
		v.vp.ScrollOffset = offset
		v.invalidate()
	}
}

// ScrollBy scrolls by delta lines.
func (v *Virtualizer) ScrollBy(delta int) { v.ScrollTo(v.vp.ScrollOffset + delta) }

// ScrollToIndex scrolls the minimum amount needed to show item i fully.
func (v *Virtualizer) ScrollToIndex(i int) {
	if i < 0 || i >= v.count {
		return
	}
	r := v.compute()
	start, end := r.Offsets[i], r.Offsets[i+1]
	switch {
	case start < v.vp.ScrollOffset:
		v.ScrollTo(start)
	case end > v.vp.ScrollOffset+v.vp.Height:
		v.ScrollTo(end - v.vp.Height)
	}
}

// Measure drops every measurement and cached offset.
func (v *Virtualizer) Measure() {
	clear(v.measured)
	v.invalidate()
	v.ScrollTo(v.vp.ScrollOffset)
}

// MeasureItem records the real size of item i.
func (v *Virtualizer) MeasureItem(i, size int) {
	if i < 0 || i >= v.count || size <= 0 || v.measured[i] == size {
		return
	}
	v.measured[i] = size
	v.invalidate()
}

// VirtualItems returns the rows to render, in order.
func (v *Virtualizer) VirtualItems() []VirtualItem {
	r := v.compute()
	if r.Last < r.First {
		return nil
	}
	items := make([]VirtualItem, 0, r.Last-r.First+1)
	for i := r.First; i <= r.Last; i++ {
		items = append(items, VirtualItem{Index: i, Start: r.Offsets[i], Size: r.Offsets[i+1] - r.Offsets[i]})
	}
	return items
}

// TotalSize returns the total scrollable height.
func (v *Virtualizer) TotalSize() int {
	r := v.compute()
	return r.Offsets[len(r.Offsets)-1]
}

// IndexAt returns the item covering the content-space line y, or -1.
func (v *Virtualizer) IndexAt(y int) int {
	r := v.compute()
	if y < 0 || v.count == 0 || y >= r.Offsets[v.count] {
		return -1
	}
	return sort.Search(v.count, func(i int) bool { return r.Offsets[i+1] > y })
}
