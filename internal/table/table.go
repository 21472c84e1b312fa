// Package table holds the document edited by zgrid: rows, column structure,
// view settings and color rules, plus its persistence and editing session.
package table

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/Akashdeep-Patra/zgrid/internal/grid"
)

// Table is the in-memory document. Values are treated as immutable
// snapshots: every change produces a new Table via Clone.
type Table struct {
	Name         string
	Rows         []grid.Row
	Meta         grid.ColumnMeta
	Order        []string
	Visibility   map[string]bool
	Widths       map[string]int
	Freeze       int
	ColumnColors map[string]string
	Rules        []grid.ColorRule
	Filter       *grid.ConditionNode
}

// New returns an empty table with a single text column.
func New(name string) *Table {
	t := &Table{
		Name:       name,
		Meta:       grid.ColumnMeta{"name": {ID: "name", Name: "Name", Type: grid.TypeText}},
		Order:      []string{"name"},
		Visibility: map[string]bool{},
		Widths:     map[string]int{},
	}
	return t
}

// Clone returns a copy whose slices and maps may be replaced independently.
// Rows themselves are shared; they are copy-on-write.
func (t *Table) Clone() *Table {
	c := *t
	c.Rows = slices.Clone(t.Rows)
	c.Meta = maps.Clone(t.Meta)
	c.Order = slices.Clone(t.Order)
	c.Visibility = maps.Clone(t.Visibility)
	c.Widths = maps.Clone(t.Widths)
	c.ColumnColors = maps.Clone(t.ColumnColors)
	c.Rules = slices.Clone(t.Rules)
	return &c
}

// Columns returns every column in display order, visible or not.
func (t *Table) Columns() []grid.Column {
	out := make([]grid.Column, 0, len(t.Order))
	for _, id := range t.Order {
		if c, ok := t.Meta[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

// VisibleColumns returns the visible columns in display order.
func (t *Table) VisibleColumns() []grid.Column {
	return grid.VisibleColumns(t.Order, t.Visibility, t.Meta)
}

// Rule returns the index of the rule with the given id, or -1.
func (t *Table) Rule(id string) int {
	return slices.IndexFunc(t.Rules, func(r grid.ColorRule) bool { return r.ID == id })
}

// normalize repairs structure loaded from disk: order and meta agree, cell
// values are coerced to their column types, and freeze is in range.
func (t *Table) normalize() {
	if t.Meta == nil {
		t.Meta = grid.ColumnMeta{}
	}
	seen := make(map[string]bool, len(t.Order))
	order := t.Order[:0]
	for _, id := range t.Order {
		if _, ok := t.Meta[id]; ok && !seen[id] {
			seen[id] = true
			order = append(order, id)
		}
	}
	for _, id := range slices.Sorted(maps.Keys(t.Meta)) {
		if !seen[id] {
			order = append(order, id)
		}
	}
	t.Order = order
	if t.Visibility == nil {
		t.Visibility = map[string]bool{}
	}
	if t.Widths == nil {
		t.Widths = map[string]int{}
	}
	for i, r := range t.Rows {
		for id, v := range r.Cells {
			if col, ok := t.Meta[id]; ok {
				r.Cells[id] = grid.Coerce(v, col)
			}
		}
		t.Rows[i] = r
	}
	t.Freeze = grid.ClampFreeze(t.Freeze, len(t.VisibleColumns()))
}

// document is the on-disk JSON shape.
type document struct {
	Name         string              `json:"name,omitempty"`
	Columns      []columnDoc         `json:"columns"`
	Freeze       int                 `json:"freeze,omitempty"`
	ColumnColors map[string]string   `json:"columnColors,omitempty"`
	Rules        []grid.ColorRule    `json:"rules,omitempty"`
	Filter       *grid.ConditionNode `json:"filter,omitempty"`
	Rows         []grid.Row          `json:"rows"`
}

type columnDoc struct {
	grid.Column
	Hidden bool `json:"hidden,omitempty"`
	Width  int  `json:"width,omitempty"`
}

// MarshalJSON writes the columns as an ordered list carrying their view settings.
func (t *Table) MarshalJSON() ([]byte, error) {
	doc := document{
		Name:         t.Name,
		Columns:      make([]columnDoc, 0, len(t.Order)),
		Freeze:       t.Freeze,
		ColumnColors: t.ColumnColors,
		Rules:        t.Rules,
		Filter:       t.Filter,
		Rows:         t.Rows,
	}
	if doc.Rows == nil {
		doc.Rows = []grid.Row{}
	}
	for _, c := range t.Columns() {
		doc.Columns = append(doc.Columns, columnDoc{
			Column: c,
			Hidden: !grid.IsVisible(t.Visibility, c.ID),
			Width:  t.Widths[c.ID],
		})
	}
	return json.Marshal(doc)
}

// UnmarshalJSON reads a document and normalizes it.
func (t *Table) UnmarshalJSON(data []byte) error {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	next := Table{
		Name:         doc.Name,
		Rows:         doc.Rows,
		Meta:         make(grid.ColumnMeta, len(doc.Columns)),
		Order:        make([]string, 0, len(doc.Columns)),
		Visibility:   map[string]bool{},
		Widths:       map[string]int{},
		Freeze:       doc.Freeze,
		ColumnColors: doc.ColumnColors,
		Rules:        doc.Rules,
		Filter:       doc.Filter,
	}
	for _, c := range doc.Columns {
		if c.ID == "" {
			return fmt.Errorf("column %q without id", c.Name)
		}
		if c.Type == "" {
			c.Type = grid.TypeText
		}
		if c.Name == "" {
			c.Name = c.ID
		}
		next.Meta[c.ID] = c.Column
		next.Order = append(next.Order, c.ID)
		if c.Hidden {
			next.Visibility[c.ID] = false
		}
		if c.Width > 0 {
			next.Widths[c.ID] = c.Width
		}
	}
	for _, r := range next.Rules {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	next.normalize()
	*t = next
	return nil
}
