package grid

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestInferType(t *testing.T) {
	tests := []struct {
		samples []string
		want    ColumnType
	}{
		{[]string{"1", "2.5", "-3", "1,200"}, TypeNumber},
		{[]string{"12", "abc"}, TypeText},
		{[]string{"2024-01-01", "2024/2/3", "Jan 5, 2024"}, TypeDate},
		{[]string{"09:30", "17:45:10"}, TypeTime},
		{[]string{"", "  ", "4"}, TypeNumber},
		{[]string{"", ""}, TypeText},
		{nil, TypeText},
		{[]string{"12abc"}, TypeText},
	}
	for _, tc := range tests {
		if got := InferType(tc.samples); got != tc.want {
			t.Fatalf("%q: got %s, want %s", tc.samples, got, tc.want)
		}
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"9:05", "09:05:00", true},
		{"23:59:59", "23:59:59", true},
		{"12:00:00.250", "12:00:00", true},
		{"24:00", "", false},
		{"12:60", "", false},
		{"noon", "", false},
	}
	for _, tc := range tests {
		got, ok := ParseTime(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("%q: got %q,%v want %q,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseCell(t *testing.T) {
	stage := Column{ID: "stage", Type: TypeSelect, Options: []SelectOption{{ID: "o1", Label: "Open"}, {ID: "c1", Label: "Closed"}}}
	tags := Column{ID: "tags", Type: TypeMultiSelect, Options: stage.Options}
	tests := []struct {
		name string
		raw  string
		col  Column
		want Value
		ok   bool
	}{
		{"text verbatim", " a b ", Column{Type: TypeText}, Text(" a b "), true},
		{"number", "1,234.5", Column{Type: TypeNumber}, Number(1234.5), true},
		{"bad number", "12x", Column{Type: TypeNumber}, Value{}, false},
		{"date", "2024-03-09", Column{Type: TypeDate}, Date(day("2024-03-09")), true},
		{"time", "7:15", Column{Type: TypeTime}, Clock("07:15:00"), true},
		{"select by label", "open", stage, RefOf(Ref{ID: "o1", Label: "Open"}), true},
		{"select by id", "c1", stage, RefOf(Ref{ID: "c1", Label: "Closed"}), true},
		{"select unknown", "later", stage, Value{}, false},
		{"multi", "Open, closed", tags, RefsOf(Ref{ID: "o1", Label: "Open"}, Ref{ID: "c1", Label: "Closed"}), true},
		{"multi empty", "", tags, RefsOf(), true},
		{"formula", "1", Column{Type: TypeFormula}, Value{}, false},
		{"user", "bob", Column{Type: TypeUser}, Value{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseCell(tc.raw, tc.col)
			if ok != tc.ok {
				t.Fatalf("got ok=%v, want %v", ok, tc.ok)
			}
			if ok && !got.Equal(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFormatCell(t *testing.T) {
	tests := []struct {
		v    Value
		t    ColumnType
		want string
	}{
		{Number(10), TypeNumber, "10"},
		{Number(0.125), TypeNumber, "0.125"},
		{Text("10"), TypeNumber, ""},
		{Text("a"), TypeText, "a"},
		{Number(3), TypeText, "3"},
		{Date(day("2024-01-02")), TypeDate, "2024-01-02"},
		{Text("2024/1/2"), TypeDate, "2024-01-02"},
		{RefOf(Ref{ID: "o", Label: "Open"}), TypeSelect, ""},
		{Empty(), TypeText, ""},
	}
	for _, tc := range tests {
		if got := FormatCell(tc.v, tc.t); got != tc.want {
			t.Fatalf("%v as %s: got %q, want %q", tc.v, tc.t, got, tc.want)
		}
	}
}

func TestParseClipboard(t *testing.T) {
	tests := []struct {
		in   string
		want [][]string
	}{
		{"a\tb\r\nc\td\r\n", [][]string{{"a", "b"}, {"c", "d"}}},
		{"a,b\nc,d", [][]string{{"a", "b"}, {"c", "d"}}},
		{"a,b\tc", [][]string{{"a,b", "c"}}},
		{"single", [][]string{{"single"}}},
		{"", nil},
	}
	for _, tc := range tests {
		if got := ParseClipboard(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%q: got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRowJSON(t *testing.T) {
	r := mustRow(t, `{"id":"r1","title":"x","qty":2,"tags":[{"id":"a","label":"A"}]}`)
	if r.ID != "r1" || !r.Get("qty").Equal(Number(2)) || r.Get("tags").Kind() != KindRefs {
		t.Fatalf("got %+v", r)
	}
	out, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	back := mustRow(t, string(out))
	for col, v := range r.Cells {
		if !back.Get(col).Equal(v) {
			t.Fatalf("col %s: got %v, want %v", col, back.Get(col), v)
		}
	}

	var bad Row
	if err := json.Unmarshal([]byte(`{"title":"x"}`), &bad); err == nil {
		t.Fatal("row without id accepted")
	}
}

func TestCoerce(t *testing.T) {
	stage := Column{Type: TypeSelect, Options: []SelectOption{{ID: "o1", Label: "Open"}}}
	if got := Coerce(Text("Open"), stage); !got.Equal(RefOf(Ref{ID: "o1", Label: "Open"})) {
		t.Fatalf("got %v", got)
	}
	if got := Coerce(Text("2024-01-01"), Column{Type: TypeDate}); got.Kind() != KindDate {
		t.Fatalf("got kind %v, want date", got.Kind())
	}
	if got := Coerce(Text("abc"), Column{Type: TypeNumber}); !got.Equal(Text("abc")) {
		t.Fatalf("unconvertible value changed: %v", got)
	}
}
