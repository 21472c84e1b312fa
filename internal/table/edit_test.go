package table

import (
	"testing"

	"github.com/Akashdeep-Patra/zgrid/internal/grid"
)

func ruleColumns() []grid.Column {
	return []grid.Column{
		{ID: "title", Name: "Title", Type: grid.TypeText},
		{ID: "qty", Name: "Qty", Type: grid.TypeNumber},
		{ID: "c2", Name: "Due Date", Type: grid.TypeDate},
	}
}

func TestParseRule(t *testing.T) {
	tests := []struct {
		spec  string
		scope grid.Scope
		col   string
		color string
		cond  string
	}{
		{"row #F38BA8", grid.ScopeRow, "", "#f38ba8", ""},
		{"row #f38ba8 where qty > 5", grid.ScopeRow, "", "#f38ba8", `qty gt "5"`},
		{"column Qty #a6e3a1 where qty > 5 and title contains x", grid.ScopeColumn, "qty", "#a6e3a1", `(qty gt "5" AND title contains "x")`},
		{"cell due date #89b4fa where c2 empty or title eq a", grid.ScopeCell, "c2", "#89b4fa", `(c2 isEmpty OR title eq "a")`},
	}
	for _, tc := range tests {
		t.Run(tc.spec, func(t *testing.T) {
			r, err := ParseRule(tc.spec, ruleColumns(), "rule_1")
			if err != nil {
				t.Fatal(err)
			}
			if r.Scope != tc.scope || r.ColumnID != tc.col || r.Color != tc.color || !r.Enabled {
				t.Fatalf("got %+v", r)
			}
			got := ""
			if r.Condition != nil {
				got = r.Condition.String()
			}
			if got != tc.cond {
				t.Fatalf("condition: got %s, want %s", got, tc.cond)
			}
		})
	}
}

func TestParseRuleErrors(t *testing.T) {
	for _, spec := range []string{
		"",
		"row",
		"row red",
		"column #ff0000",
		"column nope #ff0000",
		"diagonal #ff0000",
		"row #ff0000 where qty",
		"row #ff0000 extra",
	} {
		if _, err := ParseRule(spec, ruleColumns(), "r"); err == nil {
			t.Fatalf("%q: expected error", spec)
		}
	}
}

func TestNextRuleIDAndMove(t *testing.T) {
	tbl := New("t")
	tbl.Rules = []grid.ColorRule{{ID: "rule_2"}, {ID: "custom"}, {ID: "rule_7"}}
	if got := tbl.NextRuleID(); got != "rule_8" {
		t.Fatalf("got %s, want rule_8", got)
	}
	orig := tbl.Rules
	if j := tbl.MoveRule(0, 1); j != 1 || tbl.Rules[1].ID != "rule_2" {
		t.Fatalf("got %d, %v", j, tbl.Rules)
	}
	if orig[0].ID != "rule_2" {
		t.Fatal("MoveRule mutated the shared slice")
	}
	if j := tbl.MoveRule(2, 1); j != 2 {
		t.Fatalf("move past end: got %d", j)
	}
}

func TestAddColumnAndRetype(t *testing.T) {
	tbl := New("t")
	tbl.Rows = []grid.Row{
		{ID: "r1", Cells: map[string]grid.Value{"name": grid.Text("12")}},
		{ID: "r2", Cells: map[string]grid.Value{"name": grid.Text("abc")}},
	}
	tbl.AddColumn(grid.Column{ID: "n", Name: "N", Type: grid.TypeNumber})
	if got := tbl.Rows[1].Get("n"); !got.Equal(grid.Number(0)) {
		t.Fatalf("backfill: got %v, want 0", got)
	}
	if err := tbl.Retype("name", grid.TypeNumber); err != nil {
		t.Fatal(err)
	}
	if got := tbl.Rows[0].Get("name"); !got.Equal(grid.Number(12)) {
		t.Fatalf("got %v, want 12", got)
	}
	if got := tbl.Rows[1].Get("name"); !got.Equal(grid.Text("abc")) {
		t.Fatalf("unparseable value changed: %v", got)
	}
	if err := tbl.Retype("missing", grid.TypeText); err == nil {
		t.Fatal("expected unknown column error")
	}
}

func TestParseColumnSpec(t *testing.T) {
	tests := []struct {
		spec string
		name string
		typ  grid.ColumnType
	}{
		{"Price number", "Price", grid.TypeNumber},
		{"Due Date date", "Due Date", grid.TypeDate},
		{"Notes", "Notes", grid.TypeText},
		{"date", "date", grid.TypeText},
	}
	for _, tc := range tests {
		name, typ, err := ParseColumnSpec(tc.spec)
		if err != nil {
			t.Fatal(err)
		}
		if name != tc.name || typ != tc.typ {
			t.Fatalf("%q: got %q %s, want %q %s", tc.spec, name, typ, tc.name, tc.typ)
		}
	}
	if _, _, err := ParseColumnSpec("  "); err == nil {
		t.Fatal("expected error for empty spec")
	}
}
