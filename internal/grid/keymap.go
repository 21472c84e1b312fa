package grid

import "github.com/charmbracelet/bubbles/key"

// KeyMap is the key surface consumed by the controller. Any key not bound
// here passes through to the host.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Enter    key.Binding
	Tab      key.Binding
	ShiftTab key.Binding
	Copy     key.Binding
	Fill     key.Binding
}

// DefaultKeyMap returns the grid bindings. Terminals cannot report Cmd, so
// Ctrl stands in for it.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit cell")),
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next column")),
		ShiftTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous column")),
		Copy:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy")),
		Fill:     key.NewBinding(key.WithKeys("ctrl+d", "ctrl+enter"), key.WithHelp("ctrl+d", "fill range")),
	}
}

// Bindings lists every binding, for help rendering.
func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Tab, k.ShiftTab, k.Enter, k.Copy, k.Fill}
}
