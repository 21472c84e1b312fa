package grid

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Operator is a leaf condition's comparison.
type Operator string

// Condition operators.
const (
	OpEq       Operator = "eq"
	OpContains Operator = "contains"
	OpGt       Operator = "gt"
	OpLt       Operator = "lt"
	OpIsEmpty  Operator = "isEmpty"
	OpNotEmpty Operator = "notEmpty"
)

// Valid reports whether op is a known operator.
func (op Operator) Valid() bool {
	switch op {
	case OpEq, OpContains, OpGt, OpLt, OpIsEmpty, OpNotEmpty:
		return true
	}
	return false
}

// Logic joins the children of a condition group.
type Logic string

// Group operators.
const (
	LogicAnd Logic = "AND"
	LogicOr  Logic = "OR"
)

// Condition is a leaf predicate on one field.
type Condition struct {
	FieldID  string   `json:"fieldId"`
	Operator Operator `json:"operator"`
	Value    string   `json:"value,omitempty"`
}

// UnmarshalJSON accepts string, number and boolean values.
func (c *Condition) UnmarshalJSON(data []byte) error {
	var raw struct {
		FieldID  string          `json:"fieldId"`
		Operator Operator        `json:"operator"`
		Value    json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.FieldID = raw.FieldID
	c.Operator = raw.Operator
	c.Value = ""
	v := bytes.TrimSpace(raw.Value)
	switch {
	case len(v) == 0 || bytes.Equal(v, []byte("null")):
	case v[0] == '"':
		if err := json.Unmarshal(v, &c.Value); err != nil {
			return err
		}
	default:
		c.Value = string(v)
	}
	return nil
}

// ConditionGroup is an AND/OR node of the condition tree.
type ConditionGroup struct {
	Operator   Logic           `json:"operator"`
	Conditions []ConditionNode `json:"conditions"`
}

// ConditionNode is either a leaf or a group; exactly one field is set.
type ConditionNode struct {
	Leaf  *Condition
	Group *ConditionGroup
}

// Leaf wraps a condition into a node.
func Leaf(c Condition) ConditionNode { return ConditionNode{Leaf: &c} }

// Group builds a group node.
func Group(op Logic, children ...ConditionNode) ConditionNode {
	return ConditionNode{Group: &ConditionGroup{Operator: op, Conditions: children}}
}

// MarshalJSON encodes whichever variant is set.
func (n ConditionNode) MarshalJSON() ([]byte, error) {
	switch {
	case n.Group != nil:
		return json.Marshal(n.Group)
	case n.Leaf != nil:
		return json.Marshal(n.Leaf)
	}
	return []byte("null"), nil
}

// UnmarshalJSON tells groups from leaves by the presence of "conditions".
func (n *ConditionNode) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("condition: %w", err)
	}
	if _, ok := fields["conditions"]; ok {
		var g ConditionGroup
		if err := json.Unmarshal(data, &g); err != nil {
			return err
		}
		if g.Operator != LogicOr {
			g.Operator = LogicAnd
		}
		*n = ConditionNode{Group: &g}
		return nil
	}
	var c Condition
	if err := json.Unmarshal(data, &c); err != nil {
		return err
	}
	*n = ConditionNode{Leaf: &c}
	return nil
}

// Normalize turns a bare condition into a one-element AND group.
func (n ConditionNode) Normalize() ConditionGroup {
	switch {
	case n.Group != nil:
		return *n.Group
	case n.Leaf != nil:
		return ConditionGroup{Operator: LogicAnd, Conditions: []ConditionNode{n}}
	}
	return ConditionGroup{Operator: LogicAnd}
}

// Matches evaluates the node against a row.
func (n ConditionNode) Matches(row Row, meta ColumnMeta) bool {
	return MatchesGroup(row, n.Normalize(), meta)
}

// String renders the tree in a compact infix form.
func (n ConditionNode) String() string {
	switch {
	case n.Leaf != nil:
		c := n.Leaf
		if c.Operator == OpIsEmpty || c.Operator == OpNotEmpty {
			return c.FieldID + " " + string(c.Operator)
		}
		return fmt.Sprintf("%s %s %q", c.FieldID, c.Operator, c.Value)
	case n.Group != nil:
		parts := make([]string, len(n.Group.Conditions))
		for i, child := range n.Group.Conditions {
			parts[i] = child.String()
		}
		return "(" + strings.Join(parts, " "+string(n.Group.Operator)+" ") + ")"
	}
	return ""
}

// MatchesGroup evaluates a group depth-first. An empty AND is true; an empty OR is false.
func MatchesGroup(row Row, g ConditionGroup, meta ColumnMeta) bool {
	if g.Operator == LogicOr {
		for _, child := range g.Conditions {
			if child.Matches(row, meta) {
				return true
			}
		}
		return false
	}
	for _, child := range g.Conditions {
		if !child.Matches(row, meta) {
			return false
		}
	}
	return true
}

// MatchesCondition evaluates a leaf against a row, dispatching on the field's
// declared type.
func MatchesCondition(row Row, c Condition, meta ColumnMeta) bool {
	v := row.Get(c.FieldID)
	t := meta.Type(c.FieldID)
	if v.kind == KindRefs {
		t = TypeMultiSelect
	}

	switch c.Operator {
	case OpIsEmpty:
		return v.IsEmpty()
	case OpNotEmpty:
		return !v.IsEmpty()
	case OpEq:
		return matchEq(v, t, c.Value)
	case OpContains:
		return matchContains(v, t, c.Value)
	case OpGt, OpLt:
		return matchOrder(v, t, c.Operator, c.Value)
	}
	return false
}

func matchEq(v Value, t ColumnType, target string) bool {
	switch t {
	case TypeNumber:
		a, ok1 := toNumber(v)
		b, ok2 := parseFloat(target)
		return ok1 && ok2 && a == b
	case TypeDate:
		a, ok1 := toDate(v)
		b, ok2 := ParseDate(target)
		return ok1 && ok2 && SameDay(a, b)
	case TypeSelect, TypeUser, TypeRelation, TypeMultiSelect:
		return refsAny(v, func(r Ref) bool { return r.Label == target || r.ID == target })
	}
	return v.String() == target
}

func matchContains(v Value, t ColumnType, target string) bool {
	needle := strings.ToLower(target)
	switch t {
	case TypeNumber:
		if v.kind == KindNumber {
			return strings.Contains(FormatNumber(v.num), target)
		}
		return strings.Contains(v.String(), target)
	case TypeDate:
		d, ok := toDate(v)
		return ok && strings.Contains(d.Format(DateLayout), target)
	case TypeSelect, TypeUser, TypeRelation, TypeMultiSelect:
		return refsAny(v, func(r Ref) bool { return strings.Contains(strings.ToLower(r.Label), needle) })
	}
	return strings.Contains(strings.ToLower(v.String()), needle)
}

func matchOrder(v Value, t ColumnType, op Operator, target string) bool {
	if t == TypeDate {
		a, ok1 := toDate(v)
		b, ok2 := ParseDate(target)
		if !ok1 || !ok2 {
			return false
		}
		if op == OpGt {
			return dayOf(a).After(dayOf(b))
		}
		return dayOf(a).Before(dayOf(b))
	}
	a, ok1 := toNumber(v)
	b, ok2 := parseFloat(target)
	if !ok1 || !ok2 {
		return false
	}
	if op == OpGt {
		return a > b
	}
	return a < b
}

// refsAny applies pred to each referenced element. Text values act as a
// single reference whose id and label are the text.
func refsAny(v Value, pred func(Ref) bool) bool {
	switch v.kind {
	case KindRef, KindRefs:
		for _, r := range v.refs {
			if pred(r) {
				return true
			}
		}
		return false
	case KindEmpty:
		return false
	}
	s := v.String()
	return pred(Ref{ID: s, Label: s})
}

func toNumber(v Value) (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindText:
		return parseFloat(v.text)
	}
	return 0, false
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

func toDate(v Value) (time.Time, bool) {
	switch v.kind {
	case KindDate:
		return v.at, true
	case KindText:
		return ParseDate(v.text)
	}
	return time.Time{}, false
}

// FilterRows keeps the rows matching node. A nil node keeps every row.
func FilterRows(rows []Row, node *ConditionNode, meta ColumnMeta) []Row {
	if node == nil || (node.Leaf == nil && node.Group == nil) {
		return rows
	}
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if node.Matches(r, meta) {
			out = append(out, r)
		}
	}
	return out
}

// quickFilterOps maps prompt spellings to operators.
var quickFilterOps = map[string]Operator{
	"=": OpEq, "==": OpEq, "eq": OpEq, "is": OpEq,
	"~": OpContains, "contains": OpContains, "has": OpContains,
	">": OpGt, "gt": OpGt, "after": OpGt,
	"<": OpLt, "lt": OpLt, "before": OpLt,
	"empty": OpIsEmpty, "isempty": OpIsEmpty,
	"!empty": OpNotEmpty, "notempty": OpNotEmpty, "set": OpNotEmpty,
}

// ParseQuickFilter builds a leaf condition from "<field> <op> [value]".
// The field may be a column id or a case-insensitive column name.
func ParseQuickFilter(s string, columns []Column) (Condition, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) < 2 {
		return Condition{}, fmt.Errorf("filter %q: want <field> <op> [value]", s)
	}
	field, ok := resolveField(fields[0], columns)
	if !ok {
		return Condition{}, fmt.Errorf("filter %q: unknown column %q", s, fields[0])
	}
	op, ok := quickFilterOps[strings.ToLower(fields[1])]
	if !ok {
		return Condition{}, fmt.Errorf("filter %q: unknown operator %q", s, fields[1])
	}
	c := Condition{FieldID: field, Operator: op}
	if op != OpIsEmpty && op != OpNotEmpty {
		if len(fields) < 3 {
			return Condition{}, fmt.Errorf("filter %q: operator %s needs a value", s, op)
		}
		c.Value = strings.Trim(strings.Join(fields[2:], " "), `"`)
	}
	return c, nil
}

func resolveField(name string, columns []Column) (string, bool) {
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
