package views

import (
	"strings"

	"github.com/Akashdeep-Patra/zgrid/internal/config"
	"github.com/Akashdeep-Patra/zgrid/internal/grid"
	"github.com/charmbracelet/bubbles/key"
)

// Keys are the view-level bindings. Grid holds the bindings the grid
// controller dispatches itself.
type Keys struct {
	Grid    grid.KeyMap
	Paste   key.Binding
	Filter  key.Binding
	Freeze  key.Binding
	Widen   key.Binding
	Narrow  key.Binding
	Taller  key.Binding
	Shorter key.Binding
}

// NewKeys builds the view bindings from the configured key bindings.
func NewKeys(kb config.KeyBindings) Keys {
	g := grid.DefaultKeyMap()
	g.Copy = binding(kb.Copy, "copy")
	g.Fill = binding(kb.Fill, "fill range")
	return Keys{
		Grid:    g,
		Paste:   binding(kb.Paste, "paste"),
		Filter:  binding(kb.Filter, "filter"),
		Freeze:  binding(kb.Freeze, "freeze columns"),
		Widen:   binding(kb.Widen, "widen column"),
		Narrow:  binding(kb.Narrow, "narrow column"),
		Taller:  binding(kb.Taller, "taller rows"),
		Shorter: binding(kb.Shorter, "shorter rows"),
	}
}

func binding(keys []string, desc string) key.Binding {
	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], desc))
}

// helpKey formats a binding's keys for the help overlay.
func helpKey(b key.Binding) string {
	return strings.Join(b.Keys(), " / ")
}
