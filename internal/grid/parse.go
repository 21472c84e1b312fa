package grid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the serialized form of date cells.
const DateLayout = "2006-01-02"

var (
	numberPattern = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?$`)
	timePattern   = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2})(?:\.(\d{1,3}))?)?$`)
)

// dateLayouts are tried in order by ParseDate.
var dateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"2006/1/2",
	"2006-1-2",
	"2006.01.02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"January 2, 2006",
	"January 2 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Mon, 02 Jan 2006",
	"Mon Jan 2 2006",
	time.RFC1123,
	time.RFC1123Z,
	"2006年1月2日",
}

// ParseNumber accepts a trimmed numeric string after thousands separators are
// stripped. Partial matches ("12abc") are rejected.
func ParseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if !numberPattern.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseDate accepts the common calendar spellings. Results without a zone are UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseTime accepts HH:mm[:ss[.SSS]] and normalizes to HH:mm:ss.
func ParseTime(s string) (string, bool) {
	m := timePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", false
	}
	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	sec := 0
	if m[3] != "" {
		sec, _ = strconv.Atoi(m[3])
	}
	if h > 23 || mm > 59 || sec > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, mm, sec), true
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// dayOf truncates t to its calendar day for day-granularity comparisons.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// InferType picks a column type for a brand-new column from pasted samples.
// Empty samples are ignored; with no samples the column is text.
func InferType(samples []string) ColumnType {
	var values []string
	for _, s := range samples {
		if s = strings.TrimSpace(s); s != "" {
			values = append(values, s)
		}
	}
	if len(values) == 0 {
		return TypeText
	}
	if all(values, func(s string) bool { _, ok := ParseNumber(s); return ok }) {
		return TypeNumber
	}
	if all(values, func(s string) bool { _, ok := ParseDate(s); return ok }) {
		return TypeDate
	}
	if all(values, func(s string) bool { _, ok := ParseTime(s); return ok }) {
		return TypeTime
	}
	return TypeText
}

func all(values []string, pred func(string) bool) bool {
	for _, v := range values {
		if !pred(v) {
			return false
		}
	}
	return true
}

// ParseCell converts raw text into a value for the column's declared type.
// ok is false when the text does not parse; callers must then leave the
// existing value untouched.
func ParseCell(raw string, col Column) (Value, bool) {
	switch col.Type {
	case TypeFormula:
		return Value{}, false
	case TypeNumber:
		f, ok := ParseNumber(raw)
		if !ok {
			return Value{}, false
		}
		return Number(f), true
	case TypeDate:
		t, ok := ParseDate(raw)
		if !ok {
			return Value{}, false
		}
		return Date(t), true
	case TypeTime:
		s, ok := ParseTime(raw)
		if !ok {
			return Value{}, false
		}
		return Clock(s), true
	case TypeSelect:
		s := strings.TrimSpace(raw)
		if s == "" {
			return Empty(), true
		}
		o, ok := matchOption(col, s)
		if !ok {
			return Value{}, false
		}
		return RefOf(Ref(o)), true
	case TypeMultiSelect:
		s := strings.TrimSpace(raw)
		if s == "" {
			return RefsOf(), true
		}
		parts := strings.Split(s, ",")
		refs := make([]Ref, 0, len(parts))
		for _, p := range parts {
			o, ok := matchOption(col, strings.TrimSpace(p))
			if !ok {
				return Value{}, false
			}
			refs = append(refs, Ref(o))
		}
		return RefsOf(refs...), true
	case TypeUser, TypeRelation, TypeAttachment:
		return Value{}, false
	default:
		return Text(raw), true
	}
}

// matchOption finds an option by exact id, then case-insensitive label.
func matchOption(col Column, s string) (SelectOption, bool) {
	for _, o := range col.Options {
		if o.ID == s {
			return o, true
		}
	}
	for _, o := range col.Options {
		if strings.EqualFold(o.Label, s) {
			return o, true
		}
	}
	return SelectOption{}, false
}

// FormatCell serializes a value for the clipboard. Types without a text
// form serialize as the empty string.
func FormatCell(v Value, t ColumnType) string {
	switch t {
	case TypeNumber:
		if v.kind == KindNumber {
			return FormatNumber(v.num)
		}
		return ""
	case TypeText:
		return v.String()
	case TypeDate:
		switch v.kind {
		case KindDate:
			return v.at.Format(DateLayout)
		case KindText:
			if d, ok := ParseDate(v.text); ok {
				return d.Format(DateLayout)
			}
		}
		return ""
	}
	return ""
}

// DisplayValue renders a value for on-screen display in a column.
func DisplayValue(v Value, t ColumnType) string {
	switch v.kind {
	case KindEmpty:
		return ""
	case KindDate:
		if t == TypeDate {
			return v.at.Format(DateLayout)
		}
		return v.at.Format("2006-01-02 15:04")
	}
	return v.String()
}
