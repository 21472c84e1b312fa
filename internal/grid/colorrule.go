package grid

import (
	"encoding/json"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Scope is the granularity a color rule applies at.
type Scope string

// Rule scopes.
const (
	ScopeColumn Scope = "column"
	ScopeRow    Scope = "row"
	ScopeCell   Scope = "cell"
)

// ColorRule paints a background when its optional condition matches.
// Rules form an ordered list; later rules win within the same tier.
type ColorRule struct {
	ID        string         `json:"id"`
	Scope     Scope          `json:"scope"`
	ColumnID  string         `json:"columnId,omitempty"`
	Color     string         `json:"color"`
	Enabled   bool           `json:"enabled"`
	Condition *ConditionNode `json:"condition,omitempty"`
}

// UnmarshalJSON treats a missing "enabled" as true; only an explicit false disables.
func (r *ColorRule) UnmarshalJSON(data []byte) error {
	type plain ColorRule
	var raw struct {
		plain
		Enabled *bool `json:"enabled"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = ColorRule(raw.plain)
	r.Enabled = raw.Enabled == nil || *raw.Enabled
	return nil
}

// Validate checks the scope and that the color is a #rrggbb hex value.
func (r ColorRule) Validate() error {
	switch r.Scope {
	case ScopeRow:
	case ScopeColumn, ScopeCell:
		if r.ColumnID == "" {
			return fmt.Errorf("rule %s: %s scope needs a column", r.ID, r.Scope)
		}
	default:
		return fmt.Errorf("rule %s: unknown scope %q", r.ID, r.Scope)
	}
	if _, err := colorful.Hex(r.Color); err != nil {
		return fmt.Errorf("rule %s: color %q: %w", r.ID, r.Color, err)
	}
	return nil
}

// Colors is the evaluator output. Either slot may be empty.
type Colors struct {
	Cell string
	Row  string
}

// Background applies tier precedence: cell/column beats row.
func (c Colors) Background() string {
	if c.Cell != "" {
		return c.Cell
	}
	return c.Row
}

// EvaluateColors resolves the background slots for one cell. Rules are walked
// in list order; disabled rules and rules whose condition fails are skipped.
func EvaluateColors(rules []ColorRule, row Row, columnID string, base map[string]string, meta ColumnMeta) Colors {
	out := Colors{Cell: base[columnID]}
	for _, rule := range rules {
		if !rule.Enabled {
			continue
		}
		if rule.Condition != nil && !MatchesGroup(row, rule.Condition.Normalize(), meta) {
			continue
		}
		switch rule.Scope {
		case ScopeRow:
			out.Row = rule.Color
		case ScopeCell, ScopeColumn:
			if rule.ColumnID == columnID {
				out.Cell = rule.Color
			}
		}
	}
	return out
}

// Tint blends a base background towards an overlay color. Invalid or empty
// inputs fall back to whichever side is valid.
func Tint(base, overlay string, amount float64) string {
	o, err := colorful.Hex(overlay)
	if err != nil {
		return base
	}
	b, err := colorful.Hex(base)
	if err != nil {
		return o.Hex()
	}
	return b.BlendLab(o, amount).Clamped().Hex()
}
