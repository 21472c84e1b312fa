package grid

import (
	"encoding/json"
	"testing"
)

func mustRow(t *testing.T, s string) Row {
	t.Helper()
	var r Row
	if err := json.Unmarshal([]byte(s), &r); err != nil {
		t.Fatalf("row %s: %v", s, err)
	}
	return r
}

func mustCondition(t *testing.T, s string) ConditionNode {
	t.Helper()
	var n ConditionNode
	if err := json.Unmarshal([]byte(s), &n); err != nil {
		t.Fatalf("condition %s: %v", s, err)
	}
	return n
}

func TestConditionExamples(t *testing.T) {
	meta := ColumnMeta{
		"qty":   {ID: "qty", Type: TypeNumber},
		"title": {ID: "title", Type: TypeText},
		"tags":  {ID: "tags", Type: TypeMultiSelect},
		"due":   {ID: "due", Type: TypeDate},
		"stage": {ID: "stage", Type: TypeSelect},
	}
	tests := []struct {
		name string
		row  string
		cond string
		want bool
	}{
		{"number gt", `{"id":"r","qty":10}`, `{"fieldId":"qty","operator":"gt","value":"5"}`, true},
		{"number gt numeric value", `{"id":"r","qty":10}`, `{"fieldId":"qty","operator":"gt","value":50}`, false},
		{"number lt", `{"id":"r","qty":10}`, `{"fieldId":"qty","operator":"lt","value":"11"}`, true},
		{"number eq string cell", `{"id":"r","qty":"10"}`, `{"fieldId":"qty","operator":"eq","value":"10.0"}`, true},
		{"isEmpty blank", `{"id":"r","title":""}`, `{"fieldId":"title","operator":"isEmpty"}`, true},
		{"notEmpty blank", `{"id":"r","title":""}`, `{"fieldId":"title","operator":"notEmpty"}`, false},
		{"isEmpty missing", `{"id":"r"}`, `{"fieldId":"title","operator":"isEmpty"}`, true},
		{"isEmpty empty array", `{"id":"r","tags":[]}`, `{"fieldId":"tags","operator":"isEmpty"}`, true},
		{"multi eq by id", `{"id":"r","tags":["alpha",{"id":"beta","label":"Beta"}]}`, `{"fieldId":"tags","operator":"eq","value":"beta"}`, true},
		{"multi eq by label", `{"id":"r","tags":[{"id":"b1","label":"Beta"}]}`, `{"fieldId":"tags","operator":"eq","value":"Beta"}`, true},
		{"multi contains label", `{"id":"r","tags":[{"id":"b1","label":"Beta"}]}`, `{"fieldId":"tags","operator":"contains","value":"ET"}`, true},
		{"select eq", `{"id":"r","stage":{"id":"s1","label":"Open"}}`, `{"fieldId":"stage","operator":"eq","value":"Open"}`, true},
		{"text contains is case-insensitive", `{"id":"r","title":"Hello World"}`, `{"fieldId":"title","operator":"contains","value":"world"}`, true},
		{"text eq is exact", `{"id":"r","title":"Hello"}`, `{"fieldId":"title","operator":"eq","value":"hello"}`, false},
		{"date eq by day", `{"id":"r","due":"2024-05-01T18:30:00Z"}`, `{"fieldId":"due","operator":"eq","value":"2024-05-01"}`, true},
		{"date after", `{"id":"r","due":"2024-05-02"}`, `{"fieldId":"due","operator":"gt","value":"2024-05-01"}`, true},
		{"date same day not after", `{"id":"r","due":"2024-05-01T23:00:00Z"}`, `{"fieldId":"due","operator":"gt","value":"2024-05-01"}`, false},
		{"unparseable date", `{"id":"r","due":"soon"}`, `{"fieldId":"due","operator":"lt","value":"2024-05-01"}`, false},
		{"empty and", `{"id":"r"}`, `{"operator":"AND","conditions":[]}`, true},
		{"empty or", `{"id":"r"}`, `{"operator":"OR","conditions":[]}`, false},
		{"nested or", `{"id":"r","qty":3,"title":"x"}`,
			`{"operator":"OR","conditions":[{"fieldId":"qty","operator":"gt","value":"5"},{"operator":"AND","conditions":[{"fieldId":"title","operator":"eq","value":"x"}]}]}`, true},
		{"unknown group operator is and", `{"id":"r","qty":3}`,
			`{"operator":"XOR","conditions":[{"fieldId":"qty","operator":"gt","value":"1"},{"fieldId":"qty","operator":"gt","value":"5"}]}`, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			row := mustRow(t, tc.row)
			for id, col := range meta {
				if v, ok := row.Cells[id]; ok {
					row.Cells[id] = Coerce(v, col)
				}
			}
			if got := mustCondition(t, tc.cond).Matches(row, meta); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFilterRows(t *testing.T) {
	meta := ColumnMeta{"qty": {ID: "qty", Type: TypeNumber}}
	rows := []Row{
		{ID: "a", Cells: map[string]Value{"qty": Number(1)}},
		{ID: "b", Cells: map[string]Value{"qty": Number(7)}},
		{ID: "c", Cells: map[string]Value{"qty": Number(9)}},
	}
	if got := FilterRows(rows, nil, meta); len(got) != 3 {
		t.Fatalf("nil filter: got %d rows, want 3", len(got))
	}
	node := Leaf(Condition{FieldID: "qty", Operator: OpGt, Value: "5"})
	got := FilterRows(rows, &node, meta)
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "c" {
		t.Fatalf("got %v", got)
	}
}

func TestParseQuickFilter(t *testing.T) {
	cols := []Column{{ID: "qty", Name: "Quantity"}, {ID: "title", Name: "Title"}}
	tests := []struct {
		in      string
		want    Condition
		wantErr bool
	}{
		{in: "quantity > 5", want: Condition{FieldID: "qty", Operator: OpGt, Value: "5"}},
		{in: "title ~ big apple", want: Condition{FieldID: "title", Operator: OpContains, Value: "big apple"}},
		{in: `Title = "x"`, want: Condition{FieldID: "title", Operator: OpEq, Value: "x"}},
		{in: "title empty", want: Condition{FieldID: "title", Operator: OpIsEmpty}},
		{in: "title", wantErr: true},
		{in: "price > 3", wantErr: true},
		{in: "title ?? 3", wantErr: true},
		{in: "title =", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseQuickFilter(tc.in, cols)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%q: got %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestConditionNodeJSON(t *testing.T) {
	in := `{"operator":"OR","conditions":[{"fieldId":"qty","operator":"gt","value":"5"}]}`
	n := mustCondition(t, in)
	if n.Group == nil || n.Group.Operator != LogicOr || len(n.Group.Conditions) != 1 {
		t.Fatalf("got %+v", n)
	}
	out, err := json.Marshal(n)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != in {
		t.Fatalf("got %s, want %s", out, in)
	}
	if s := n.String(); s != `(qty gt "5")` {
		t.Fatalf("got %s", s)
	}
}
