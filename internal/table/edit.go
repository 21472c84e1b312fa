package table

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/Akashdeep-Patra/zgrid/internal/grid"
)

// AddColumn appends col to the structure and backfills every row with the
// type's default value.
func (t *Table) AddColumn(col grid.Column) {
	t.Meta[col.ID] = col
	t.Order = append(t.Order, col.ID)
	def := grid.DefaultValue(col.Type)
	if def.IsEmpty() {
		return
	}
	for i, r := range t.Rows {
		t.Rows[i] = r.With(col.ID, def)
	}
}

// Retype changes a column's type and converts existing values through their
// displayed text. Values the new type cannot parse are kept as text.
func (t *Table) Retype(id string, typ grid.ColumnType) error {
	col, ok := t.Meta[id]
	if !ok {
		return grid.ErrUnknownColumn
	}
	old := col.Type
	col.Type = typ
	t.Meta[id] = col
	for i, r := range t.Rows {
		v := r.Get(id)
		if v.IsEmpty() {
			continue
		}
		t.Rows[i] = r.With(id, grid.Coerce(grid.Text(grid.DisplayValue(v, old)), col))
	}
	return nil
}

// ParseColumnSpec reads "<name> [type]". The type defaults to text.
func ParseColumnSpec(spec string) (string, grid.ColumnType, error) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return "", "", fmt.Errorf("column: want <name> [type]")
	}
	if len(fields) > 1 {
		if typ, ok := grid.ParseColumnType(fields[len(fields)-1]); ok {
			return strings.Join(fields[:len(fields)-1], " "), typ, nil
		}
	}
	return strings.Join(fields, " "), grid.TypeText, nil
}

var ruleIDPattern = regexp.MustCompile(`^rule_(\d+)$`)

// NextRuleID returns the first unused "rule_N" id.
func (t *Table) NextRuleID() string {
	n := 0
	for _, r := range t.Rules {
		if m := ruleIDPattern.FindStringSubmatch(r.ID); m != nil {
			if k, _ := strconv.Atoi(m[1]); k > n {
				n = k
			}
		}
	}
	return "rule_" + strconv.Itoa(n+1)
}

// MoveRule shifts the rule at i by delta positions. Later rules win, so
// moving a rule down raises its priority.
func (t *Table) MoveRule(i, delta int) int {
	j := i + delta
	if i < 0 || i >= len(t.Rules) || j < 0 || j >= len(t.Rules) {
		return i
	}
	t.Rules = slices.Clone(t.Rules)
	t.Rules[i], t.Rules[j] = t.Rules[j], t.Rules[i]
	return j
}

// ParseRule builds a color rule from a one-line spec:
//
//	row #f38ba8
//	row #f38ba8 where qty > 5
//	column Qty #a6e3a1 where qty > 5 and stage eq Open
//	cell title #89b4fa where title contains urgent or title contains asap
//
// A condition joins its clauses with either "and" or "or", not both.
func ParseRule(spec string, columns []grid.Column, id string) (grid.ColorRule, error) {
	head, cond, hasCond := cutWord(spec, "where")
	fields := strings.Fields(head)
	if len(fields) < 2 {
		return grid.ColorRule{}, fmt.Errorf("rule: want <scope> [column] <#color> [where <condition>]")
	}
	rule := grid.ColorRule{ID: id, Scope: grid.Scope(strings.ToLower(fields[0])), Enabled: true}
	rest := fields[1:]
	if rule.Scope == grid.ScopeColumn || rule.Scope == grid.ScopeCell {
		if len(rest) < 2 {
			return grid.ColorRule{}, fmt.Errorf("rule: %s scope needs a column and a color", rule.Scope)
		}
		colID, ok := findColumn(strings.Join(rest[:len(rest)-1], " "), columns)
		if !ok {
			return grid.ColorRule{}, fmt.Errorf("rule: unknown column %q", strings.Join(rest[:len(rest)-1], " "))
		}
		rule.ColumnID = colID
		rest = rest[len(rest)-1:]
	}
	if len(rest) != 1 {
		return grid.ColorRule{}, fmt.Errorf("rule: unexpected %q", strings.Join(rest, " "))
	}
	rule.Color = strings.ToLower(rest[0])

	if hasCond {
		node, err := parseConditions(cond, columns)
		if err != nil {
			return grid.ColorRule{}, err
		}
		rule.Condition = &node
	}
	if err := rule.Validate(); err != nil {
		return grid.ColorRule{}, err
	}
	return rule, nil
}

func parseConditions(s string, columns []grid.Column) (grid.ConditionNode, error) {
	logic := grid.LogicAnd
	parts := splitWord(s, "and")
	if len(parts) == 1 {
		if or := splitWord(s, "or"); len(or) > 1 {
			logic, parts = grid.LogicOr, or
		}
	}
	nodes := make([]grid.ConditionNode, 0, len(parts))
	for _, p := range parts {
		c, err := grid.ParseQuickFilter(p, columns)
		if err != nil {
			return grid.ConditionNode{}, err
		}
		nodes = append(nodes, grid.Leaf(c))
	}
	if len(nodes) == 1 {
		return nodes[0], nil
	}
	return grid.Group(logic, nodes...), nil
}

// cutWord splits s around the first standalone, case-insensitive word.
func cutWord(s, word string) (before, after string, found bool) {
	fields := strings.Fields(s)
	for i, f := range fields {
		if strings.EqualFold(f, word) {
			return strings.Join(fields[:i], " "), strings.Join(fields[i+1:], " "), true
		}
	}
	return s, "", false
}

func splitWord(s, word string) []string {
	var parts []string
	for {
		before, after, ok := cutWord(s, word)
		if !ok {
			return append(parts, s)
		}
		parts = append(parts, before)
		s = after
	}
}

func findColumn(name string, columns []grid.Column) (string, bool) {
	for _, c := range columns {
		if c.ID == name {
			return c.ID, true
		}
	}
	for _, c := range columns {
		if strings.EqualFold(c.Name, name) {
			return c.ID, true
		}
	}
	return "", false
}
