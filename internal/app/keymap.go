package app

import (
	"github.com/Akashdeep-Patra/zgrid/internal/config"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the global keybindings used across the application.
// They are checked before a key reaches the active view, unless the view
// is capturing text input.
type KeyMap struct {
	Quit    key.Binding
	Help    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Undo    key.Binding
	Redo    key.Binding
	Save    key.Binding
	Reload  key.Binding
	Back    key.Binding

	// Alt+key tab shortcuts never conflict with view-level bindings.
	TabGrid    key.Binding
	TabColumns key.Binding
	TabRules   key.Binding
}

// NewKeyMap builds the global bindings from the configured key bindings.
func NewKeyMap(kb config.KeyBindings) KeyMap {
	return KeyMap{
		Quit:    binding(kb.Quit, "quit"),
		Help:    binding(kb.Help, "help"),
		NextTab: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next tab")),
		PrevTab: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev tab")),
		Undo:    binding(kb.Undo, "undo"),
		Redo:    binding(kb.Redo, "redo"),
		Save:    binding(kb.Save, "save"),
		Reload:  binding(kb.Reload, "reload from disk"),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),

		TabGrid:    key.NewBinding(key.WithKeys("alt+g"), key.WithHelp("alt+g", "grid")),
		TabColumns: key.NewBinding(key.WithKeys("alt+c"), key.WithHelp("alt+c", "columns")),
		TabRules:   key.NewBinding(key.WithKeys("alt+r"), key.WithHelp("alt+r", "rules")),
	}
}

// DefaultKeyMap returns the bindings for the default configuration.
func DefaultKeyMap() KeyMap { return NewKeyMap(config.DefaultKeyBindings()) }

func binding(keys []string, desc string) key.Binding {
	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], desc))
}
