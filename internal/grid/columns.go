package grid

import (
	"errors"
	"maps"
	"slices"
)

// Errors returned when an operation would violate a structural invariant or
// has nothing to act on. Callers report them to the user; state is unchanged.
var (
	ErrLastVisibleColumn = errors.New("at least one column must stay visible")
	ErrLastColumn        = errors.New("cannot delete the only column")
	ErrNoRange           = errors.New("select a range first")
	ErrNoSelection       = errors.New("no cell selected")
	ErrReadOnlyColumn    = errors.New("column is computed and read-only")
	ErrInvalidValue      = errors.New("value does not match the column type")
	ErrUnknownColumn     = errors.New("unknown column")
)

// IsVisible applies the visibility default: absent means visible.
func IsVisible(visibility map[string]bool, id string) bool {
	v, ok := visibility[id]
	return !ok || v
}

// VisibleColumns returns the display-ordered visible columns. Ids without
// metadata are skipped.
func VisibleColumns(order []string, visibility map[string]bool, meta ColumnMeta) []Column {
	out := make([]Column, 0, len(order))
	for _, id := range order {
		c, ok := meta[id]
		if !ok || !IsVisible(visibility, id) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// countVisible counts visible columns other than the id column.
func countVisible(order []string, visibility map[string]bool) int {
	n := 0
	for _, id := range order {
		if id != IDColumn && IsVisible(visibility, id) {
			n++
		}
	}
	return n
}

// HideColumn returns the visibility map with id hidden, refusing to hide the
// last visible non-id column.
func HideColumn(order []string, visibility map[string]bool, id string) (map[string]bool, error) {
	if !slices.Contains(order, id) {
		return visibility, ErrUnknownColumn
	}
	if !IsVisible(visibility, id) {
		return visibility, nil
	}
	if id != IDColumn && countVisible(order, visibility) <= 1 {
		return visibility, ErrLastVisibleColumn
	}
	next := maps.Clone(visibility)
	if next == nil {
		next = map[string]bool{}
	}
	next[id] = false
	return next, nil
}

// ShowColumn returns the visibility map with id visible.
func ShowColumn(visibility map[string]bool, id string) map[string]bool {
	next := maps.Clone(visibility)
	if next == nil {
		next = map[string]bool{}
	}
	next[id] = true
	return next
}

// DeleteColumn removes id from order and meta, refusing to delete the only
// remaining non-id column.
func DeleteColumn(order []string, meta ColumnMeta, id string) ([]string, ColumnMeta, error) {
	if _, ok := meta[id]; !ok {
		return order, meta, ErrUnknownColumn
	}
	remaining := 0
	for _, cid := range order {
		if cid != IDColumn {
			remaining++
		}
	}
	if id != IDColumn && remaining <= 1 {
		return order, meta, ErrLastColumn
	}
	nextOrder := slices.DeleteFunc(slices.Clone(order), func(s string) bool { return s == id })
	nextMeta := maps.Clone(meta)
	delete(nextMeta, id)
	return nextOrder, nextMeta, nil
}

// MoveColumn moves the column at from to position to, clamping to.
func MoveColumn(order []string, from, to int) []string {
	if from < 0 || from >= len(order) {
		return order
	}
	to = clamp(to, 0, len(order)-1)
	if from == to {
		return order
	}
	next := slices.Clone(order)
	id := next[from]
	next = slices.Delete(next, from, from+1)
	return slices.Insert(next, to, id)
}

// ResizeColumn returns the width map with id's width changed by delta and
// kept at or above minWidth.
func ResizeColumn(widths map[string]int, id string, current, delta, minWidth int) map[string]int {
	next := maps.Clone(widths)
	if next == nil {
		next = map[string]int{}
	}
	next[id] = max(current+delta, minWidth, 1)
	return next
}

// ClampFreeze keeps a freeze count within [0, visible].
func ClampFreeze(n, visible int) int { return clamp(n, 0, max(visible, 0)) }
