package config

// KeyBindings defines the mapping of actions to keys. Every entry can be
// overridden under the "keys" table of the config file.
type KeyBindings struct {
	Quit    []string `mapstructure:"quit"`
	Help    []string `mapstructure:"help"`
	Copy    []string `mapstructure:"copy"`
	Fill    []string `mapstructure:"fill"`
	Paste   []string `mapstructure:"paste"`
	Undo    []string `mapstructure:"undo"`
	Redo    []string `mapstructure:"redo"`
	Save    []string `mapstructure:"save"`
	Reload  []string `mapstructure:"reload"`
	Filter  []string `mapstructure:"filter"`
	Freeze  []string `mapstructure:"freeze"`
	Widen   []string `mapstructure:"widen"`
	Narrow  []string `mapstructure:"narrow"`
	Taller  []string `mapstructure:"taller"`
	Shorter []string `mapstructure:"shorter"`
}

// DefaultKeyBindings returns the default key bindings. Terminals cannot
// report Cmd, so Ctrl stands in for it.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Quit:    []string{"q", "ctrl+q"},
		Help:    []string{"?"},
		Copy:    []string{"ctrl+c"},
		Fill:    []string{"ctrl+d", "ctrl+enter"},
		Paste:   []string{"ctrl+v"},
		Undo:    []string{"ctrl+z", "u"},
		Redo:    []string{"ctrl+y", "U"},
		Save:    []string{"ctrl+s"},
		Reload:  []string{"ctrl+r"},
		Filter:  []string{"/"},
		Freeze:  []string{"F"},
		Widen:   []string{">"},
		Narrow:  []string{"<"},
		Taller:  []string{"+", "="},
		Shorter: []string{"-"},
	}
}

func (k KeyBindings) byName() map[string][]string {
	return map[string][]string{
		"quit":    k.Quit,
		"help":    k.Help,
		"copy":    k.Copy,
		"fill":    k.Fill,
		"paste":   k.Paste,
		"undo":    k.Undo,
		"redo":    k.Redo,
		"save":    k.Save,
		"reload":  k.Reload,
		"filter":  k.Filter,
		"freeze":  k.Freeze,
		"widen":   k.Widen,
		"narrow":  k.Narrow,
		"taller":  k.Taller,
		"shorter": k.Shorter,
	}
}
