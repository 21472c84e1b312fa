// Package grid implements the interactive grid engine: selection and range
// tracking, the keyboard controller, clipboard copy/paste, drag-fill, column
// geometry, row virtualization, and rule-based cell coloring.
//
// The engine never owns row or column data. Every change leaves through the
// host-supplied Mutations callbacks as a pure prev => next updater.
package grid

import "strings"

// ColumnType identifies how a column's values are parsed, formatted and matched.
type ColumnType string

// Supported column types.
const (
	TypeText        ColumnType = "text"
	TypeNumber      ColumnType = "number"
	TypeDate        ColumnType = "date"
	TypeTime        ColumnType = "time"
	TypeSelect      ColumnType = "select"
	TypeMultiSelect ColumnType = "multiSelect"
	TypeUser        ColumnType = "user"
	TypeRelation    ColumnType = "relation"
	TypeAttachment  ColumnType = "attachment"
	TypeFormula     ColumnType = "formula"
)

// ReadOnly reports whether values of this type are computed and may never be
// the target of paste, fill or direct edit.
func (t ColumnType) ReadOnly() bool { return t == TypeFormula }

// Label returns a short human-readable name for the type.
func (t ColumnType) Label() string {
	switch t {
	case TypeNumber:
		return "Number"
	case TypeDate:
		return "Date"
	case TypeTime:
		return "Time"
	case TypeSelect:
		return "Select"
	case TypeMultiSelect:
		return "Multi-select"
	case TypeUser:
		return "User"
	case TypeRelation:
		return "Relation"
	case TypeAttachment:
		return "Attachment"
	case TypeFormula:
		return "Formula"
	default:
		return "Text"
	}
}

// AllTypes lists every column type in display order.
var AllTypes = []ColumnType{
	TypeText, TypeNumber, TypeDate, TypeTime, TypeSelect, TypeMultiSelect,
	TypeUser, TypeRelation, TypeAttachment, TypeFormula,
}

// ParseColumnType resolves a type by id or label, ignoring case.
func ParseColumnType(s string) (ColumnType, bool) {
	for _, t := range AllTypes {
		if strings.EqualFold(s, string(t)) || strings.EqualFold(s, t.Label()) {
			return t, true
		}
	}
	return "", false
}

// SelectOption is one choice of a select or multiSelect column.
// Matching is by ID, display is by Label.
type SelectOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Column describes a single column.
type Column struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Type    ColumnType     `json:"type"`
	Options []SelectOption `json:"options,omitempty"`
}

// Option returns the option whose id or label equals s.
func (c Column) Option(s string) (SelectOption, bool) {
	for _, o := range c.Options {
		if o.ID == s {
			return o, true
		}
	}
	for _, o := range c.Options {
		if o.Label == s {
			return o, true
		}
	}
	return SelectOption{}, false
}

// ColumnMeta maps column id to its descriptor.
type ColumnMeta map[string]Column

// Type returns the declared type of a column, defaulting to text for unknown ids.
func (m ColumnMeta) Type(id string) ColumnType {
	if c, ok := m[id]; ok && c.Type != "" {
		return c.Type
	}
	return TypeText
}

// IDColumn is the reserved id of the row identity column. It never counts
// towards the "at least one visible column" invariant.
const IDColumn = "id"

// Mutations are the host callbacks through which the engine changes data.
// Each receives a pure updater; the host applies it synchronously to its
// current state.
type Mutations struct {
	SetData             func(func(prev []Row) []Row)
	SetColumnMeta       func(func(prev ColumnMeta) ColumnMeta)
	SetColumnOrder      func(func(prev []string) []string)
	SetColumnVisibility func(func(prev map[string]bool) map[string]bool)
}

// Frame is the engine's read view of the host state at the time of an
// operation. Rows and Columns are the visible, display-ordered slices that
// define the selection index space.
type Frame struct {
	Rows    []Row
	Columns []Column
}

// RowIndex returns the visible index of the row with the given id.
func (f Frame) RowIndex(id string) int {
	for i, r := range f.Rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// ColIndex returns the visible index of the column with the given id.
func (f Frame) ColIndex(id string) int {
	for i, c := range f.Columns {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Column returns the visible column with the given id.
func (f Frame) Column(id string) (Column, bool) {
	if i := f.ColIndex(id); i >= 0 {
		return f.Columns[i], true
	}
	return Column{}, false
}
