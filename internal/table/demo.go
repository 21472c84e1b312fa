package table

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	lorem "github.com/drhodes/golorem"

	"github.com/Akashdeep-Patra/zgrid/internal/grid"
)

var demoStages = []grid.SelectOption{
	{ID: "todo", Label: "Todo"},
	{ID: "doing", Label: "Doing"},
	{ID: "done", Label: "Done"},
}

// Demo builds a table of n rows of placeholder text with a column of every
// editable type and a few color rules.
func Demo(n int) *Table {
	t := New("demo")
	t.Meta = grid.ColumnMeta{
		"title": {ID: "title", Name: "Title", Type: grid.TypeText},
		"qty":   {ID: "qty", Name: "Qty", Type: grid.TypeNumber},
		"due":   {ID: "due", Name: "Due", Type: grid.TypeDate},
		"at":    {ID: "at", Name: "At", Type: grid.TypeTime},
		"stage": {ID: "stage", Name: "Stage", Type: grid.TypeSelect, Options: demoStages},
		"notes": {ID: "notes", Name: "Notes", Type: grid.TypeText},
	}
	t.Order = []string{"title", "qty", "due", "at", "stage", "notes"}
	t.Widths = map[string]int{"title": 24, "qty": 8, "at": 10, "notes": 40}
	t.Freeze = 1

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	t.Rows = make([]grid.Row, n)
	for i := range t.Rows {
		stage := demoStages[rand.IntN(len(demoStages))]
		t.Rows[i] = grid.Row{
			ID: fmt.Sprintf("row_%d", i+1),
			Cells: map[string]grid.Value{
				"title": grid.Text(titleCase(lorem.Word(4, 10) + " " + lorem.Word(3, 8))),
				"qty":   grid.Number(float64(rand.IntN(100))),
				"due":   grid.Date(start.AddDate(0, 0, rand.IntN(365))),
				"at":    grid.Clock(fmt.Sprintf("%02d:%02d:00", rand.IntN(24), rand.IntN(4)*15)),
				"stage": grid.RefOf(grid.Ref(stage)),
				"notes": grid.Text(lorem.Sentence(4, 12)),
			},
		}
	}

	t.Rules = []grid.ColorRule{
		{ID: "rule_1", Scope: grid.ScopeColumn, ColumnID: "stage", Color: "#313244", Enabled: true},
		{ID: "rule_2", Scope: grid.ScopeRow, Color: "#45475a", Enabled: true, Condition: demoCondition("stage", grid.OpEq, "done")},
		{ID: "rule_3", Scope: grid.ScopeCell, ColumnID: "qty", Color: "#a6e3a1", Enabled: true, Condition: demoCondition("qty", grid.OpGt, "80")},
	}
	return t
}

func demoCondition(field string, op grid.Operator, value string) *grid.ConditionNode {
	n := grid.Leaf(grid.Condition{FieldID: field, Operator: op, Value: value})
	return &n
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
