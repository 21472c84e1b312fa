package grid

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
	"strings"
	"time"
)

// Kind tags the variant held by a Value.
type Kind uint8

// Value kinds.
const (
	KindEmpty Kind = iota
	KindText
	KindNumber
	KindDate
	KindTime
	KindRef
	KindRefs
)

// Ref is a reference to a select option, user or related record.
type Ref struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Value is a single cell value. The column's declared type decides which
// kinds are legal; Coerce converts loosely typed input.
type Value struct {
	kind Kind
	text string
	num  float64
	at   time.Time
	refs []Ref
}

// Empty returns the empty value.
func Empty() Value { return Value{} }

// Text returns a text value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Date returns a date value.
func Date(t time.Time) Value { return Value{kind: KindDate, at: t} }

// Clock returns a time-of-day value normalized to HH:mm:ss.
func Clock(hhmmss string) Value { return Value{kind: KindTime, text: hhmmss} }

// RefOf returns a single reference value.
func RefOf(r Ref) Value { return Value{kind: KindRef, refs: []Ref{r}} }

// RefsOf returns a multi-reference value. The slice is copied.
func RefsOf(rs ...Ref) Value {
	return Value{kind: KindRefs, refs: append([]Ref(nil), rs...)}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// Str returns the text of a Text or Time value.
func (v Value) Str() string { return v.text }

// Num returns the number of a Number value.
func (v Value) Num() float64 { return v.num }

// At returns the instant of a Date value.
func (v Value) At() time.Time { return v.at }

// Refs returns the references of a Ref or Refs value.
func (v Value) Refs() []Ref { return v.refs }

// IsEmpty reports whether the value counts as empty for isEmpty/notEmpty:
// nothing, the empty string, or an empty array.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindEmpty:
		return true
	case KindText, KindTime:
		return v.text == ""
	case KindRefs:
		return len(v.refs) == 0
	}
	return false
}

// Equal reports deep equality. Dates compare at day granularity.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindText, KindTime:
		return v.text == o.text
	case KindNumber:
		return v.num == o.num
	case KindDate:
		return SameDay(v.at, o.at)
	case KindRef, KindRefs:
		if len(v.refs) != len(o.refs) {
			return false
		}
		for i := range v.refs {
			if v.refs[i] != o.refs[i] {
				return false
			}
		}
	}
	return true
}

// String renders the value the way a plain string coercion would.
func (v Value) String() string {
	switch v.kind {
	case KindText, KindTime:
		return v.text
	case KindNumber:
		return FormatNumber(v.num)
	case KindDate:
		return v.at.Format(DateLayout)
	case KindRef, KindRefs:
		labels := make([]string, len(v.refs))
		for i, r := range v.refs {
			labels[i] = r.Label
		}
		return strings.Join(labels, ", ")
	}
	return ""
}

// FormatNumber renders f without trailing zeros or exponent for common magnitudes.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// MarshalJSON encodes the value as plain JSON.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindText, KindTime:
		return json.Marshal(v.text)
	case KindNumber:
		return json.Marshal(v.num)
	case KindDate:
		if h, m, s := v.at.Clock(); h == 0 && m == 0 && s == 0 {
			return json.Marshal(v.at.Format(DateLayout))
		}
		return json.Marshal(v.at.Format(time.RFC3339))
	case KindRef:
		return json.Marshal(v.refs[0])
	case KindRefs:
		if v.refs == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.refs)
	}
	return []byte("null"), nil
}

// UnmarshalJSON decodes plain JSON. Strings stay text until Coerce is applied
// with the column type.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Empty()
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
	case '{':
		r, err := decodeRef(data)
		if err != nil {
			return err
		}
		*v = RefOf(r)
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		refs := make([]Ref, 0, len(raw))
		for _, item := range raw {
			r, err := decodeRef(item)
			if err != nil {
				return err
			}
			refs = append(refs, r)
		}
		*v = RefsOf(refs...)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = Text(strconv.FormatBool(b))
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("cell value %s: %w", data, err)
		}
		*v = Number(f)
	}
	return nil
}

// decodeRef accepts {id,label} objects, bare strings and numbers.
func decodeRef(data []byte) (Ref, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var r Ref
		if err := json.Unmarshal(data, &r); err != nil {
			return Ref{}, err
		}
		if r.Label == "" {
			r.Label = r.ID
		}
		return r, nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var f float64
		if ferr := json.Unmarshal(data, &f); ferr != nil {
			return Ref{}, fmt.Errorf("reference %s: %w", data, err)
		}
		s = FormatNumber(f)
	}
	return Ref{ID: s, Label: s}, nil
}

// Coerce converts a loosely typed value into the shape the column type expects.
// Values that cannot be converted are returned unchanged.
func Coerce(v Value, col Column) Value {
	switch col.Type {
	case TypeNumber:
		if v.kind == KindText {
			if f, ok := ParseNumber(v.text); ok {
				return Number(f)
			}
		}
	case TypeDate:
		if v.kind == KindText {
			if t, ok := ParseDate(v.text); ok {
				return Date(t)
			}
		}
	case TypeTime:
		if v.kind == KindText {
			if s, ok := ParseTime(v.text); ok {
				return Clock(s)
			}
		}
	case TypeSelect, TypeUser:
		if v.kind == KindText && v.text != "" {
			if o, ok := col.Option(v.text); ok {
				return RefOf(Ref(o))
			}
			return RefOf(Ref{ID: v.text, Label: v.text})
		}
	case TypeMultiSelect, TypeRelation, TypeAttachment:
		switch v.kind {
		case KindRef:
			return RefsOf(v.refs...)
		case KindRefs:
			if col.Type != TypeMultiSelect {
				return v
			}
			out := make([]Ref, len(v.refs))
			for i, r := range v.refs {
				if o, ok := col.Option(r.ID); ok {
					r = Ref(o)
				}
				out[i] = r
			}
			return RefsOf(out...)
		}
	}
	return v
}

// DefaultValue is the placeholder written into new rows and backfilled into
// existing rows for new columns.
func DefaultValue(t ColumnType) Value {
	if t == TypeNumber {
		return Number(0)
	}
	return Empty()
}

// Row is a record keyed by column id with a stable unique ID.
type Row struct {
	ID    string
	Cells map[string]Value
}

// Get returns the value of a column, or Empty.
func (r Row) Get(colID string) Value {
	if colID == IDColumn {
		return Text(r.ID)
	}
	return r.Cells[colID]
}

// With returns a copy of r with one cell replaced. r is not modified.
func (r Row) With(colID string, v Value) Row {
	cells := make(map[string]Value, len(r.Cells)+1)
	maps.Copy(cells, r.Cells)
	cells[colID] = v
	return Row{ID: r.ID, Cells: cells}
}

// Clone returns a deep copy of the row's cell map.
func (r Row) Clone() Row {
	return Row{ID: r.ID, Cells: maps.Clone(r.Cells)}
}

// MarshalJSON encodes the row as a flat object with an "id" key.
func (r Row) MarshalJSON() ([]byte, error) {
	out := make(map[string]Value, len(r.Cells)+1)
	maps.Copy(out, r.Cells)
	out[IDColumn] = Text(r.ID)
	return json.Marshal(out)
}

// UnmarshalJSON decodes a flat object. The "id" key is required.
func (r *Row) UnmarshalJSON(data []byte) error {
	var raw map[string]Value
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	id, ok := raw[IDColumn]
	if !ok || id.String() == "" {
		return fmt.Errorf("row without id")
	}
	delete(raw, IDColumn)
	r.ID = id.String()
	r.Cells = raw
	return nil
}
