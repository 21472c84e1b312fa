package grid

import (
	"encoding/json"
	"testing"
)

func TestColorPrecedence(t *testing.T) {
	const red, cyan, gray = "#ff0000", "#00ffff", "#888888"
	meta := ColumnMeta{"qty": {ID: "qty", Type: TypeNumber}}
	row := Row{ID: "r", Cells: map[string]Value{"qty": Number(10)}}
	big := Leaf(Condition{FieldID: "qty", Operator: OpGt, Value: "5"})

	rowRule := ColorRule{ID: "1", Scope: ScopeRow, Color: red, Enabled: true, Condition: &big}
	colRule := ColorRule{ID: "2", Scope: ScopeColumn, ColumnID: "qty", Color: cyan, Enabled: true}
	disabledCell := ColorRule{ID: "3", Scope: ScopeCell, ColumnID: "qty", Color: gray, Enabled: false}

	tests := []struct {
		name  string
		rules []ColorRule
		want  string
	}{
		{"column beats row", []ColorRule{rowRule, colRule}, cyan},
		{"column beats row regardless of order", []ColorRule{colRule, rowRule}, cyan},
		{"row only", []ColorRule{rowRule}, red},
		{"disabled rule never applies", []ColorRule{colRule, disabledCell}, cyan},
		{"no rules", nil, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := EvaluateColors(tc.rules, row, "qty", nil, meta).Background()
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestColorRulesLaterWins(t *testing.T) {
	row := Row{ID: "r"}
	rules := []ColorRule{
		{ID: "1", Scope: ScopeCell, ColumnID: "a", Color: "#111111", Enabled: true},
		{ID: "2", Scope: ScopeColumn, ColumnID: "a", Color: "#222222", Enabled: true},
	}
	if got := EvaluateColors(rules, row, "a", nil, nil).Cell; got != "#222222" {
		t.Fatalf("got %q, want #222222", got)
	}
	if got := EvaluateColors(rules, row, "b", map[string]string{"b": "#333333"}, nil).Cell; got != "#333333" {
		t.Fatalf("base color: got %q, want #333333", got)
	}
}

func TestColorRuleConditionGates(t *testing.T) {
	meta := ColumnMeta{"qty": {ID: "qty", Type: TypeNumber}}
	small := Row{ID: "r", Cells: map[string]Value{"qty": Number(1)}}
	big := Leaf(Condition{FieldID: "qty", Operator: OpGt, Value: "5"})
	rules := []ColorRule{{ID: "1", Scope: ScopeRow, Color: "#ff0000", Enabled: true, Condition: &big}}
	if got := EvaluateColors(rules, small, "qty", nil, meta).Background(); got != "" {
		t.Fatalf("got %q, want no color", got)
	}
}

func TestColorRuleEnabledDefault(t *testing.T) {
	var r ColorRule
	if err := json.Unmarshal([]byte(`{"id":"x","scope":"row","color":"#abcdef"}`), &r); err != nil {
		t.Fatal(err)
	}
	if !r.Enabled {
		t.Fatal("missing enabled should mean enabled")
	}
	if err := json.Unmarshal([]byte(`{"id":"x","scope":"row","color":"#abcdef","enabled":false}`), &r); err != nil {
		t.Fatal(err)
	}
	if r.Enabled {
		t.Fatal("explicit false ignored")
	}
}

func TestColorRuleValidate(t *testing.T) {
	tests := []struct {
		rule    ColorRule
		wantErr bool
	}{
		{ColorRule{ID: "a", Scope: ScopeRow, Color: "#aabbcc"}, false},
		{ColorRule{ID: "b", Scope: ScopeColumn, Color: "#aabbcc"}, true},
		{ColorRule{ID: "c", Scope: ScopeCell, ColumnID: "x", Color: "blue"}, true},
		{ColorRule{ID: "d", Scope: "table", Color: "#aabbcc"}, true},
	}
	for _, tc := range tests {
		if err := tc.rule.Validate(); (err != nil) != tc.wantErr {
			t.Fatalf("%s: got err %v, wantErr %v", tc.rule.ID, err, tc.wantErr)
		}
	}
}

func TestTint(t *testing.T) {
	if got := Tint("#000000", "#ffffff", 0); got != "#000000" {
		t.Fatalf("amount 0: got %s", got)
	}
	if got := Tint("#000000", "#ffffff", 1); got != "#ffffff" {
		t.Fatalf("amount 1: got %s", got)
	}
	if got := Tint("", "#123456", 0.5); got != "#123456" {
		t.Fatalf("invalid base: got %s", got)
	}
	if got := Tint("#123456", "nope", 0.5); got != "#123456" {
		t.Fatalf("invalid overlay: got %s", got)
	}
}
