package common

import (
	"github.com/Akashdeep-Patra/zgrid/internal/ui/components"
	tea "github.com/charmbracelet/bubbletea"
)

// ── Tab identifiers ─────────────────────────────────────────────────────────

// TabID identifies which view/tab is active.
type TabID int

const (
	TabGrid TabID = iota
	TabColumns
	TabRules
)

// TabMeta describes a tab for display purposes.
type TabMeta struct {
	ID       TabID
	Name     string // Display name shown in the tab bar.
	Icon     string // Unicode icon (nerdfont-free, works in all terminals).
	Shortcut string // Mnemonic shortcut hint displayed in the tab (e.g., "g").
	Group    string // Logical group: "data" or "structure".
}

// AllTabs is the ordered list of all tabs.
// Navigation: [ and ] cycle through them, or use alt+shortcut.
var AllTabs = []TabMeta{
	{TabGrid, "Grid", "▦", "g", "data"},

	{TabColumns, "Columns", "▥", "c", "structure"},
	{TabRules, "Rules", "◐", "r", "structure"},
}

// ── Custom messages ─────────────────────────────────────────────────────────

// RefreshMsg signals views that the table changed underneath them (undo,
// redo, reload) and their cached state must be reconciled.
type RefreshMsg struct{}

// FileChangedMsg reports that the table file was modified on disk.
type FileChangedMsg struct{}

// ErrMsg carries an error to be displayed.
type ErrMsg struct{ Err error }

// InfoMsg carries an informational message.
type InfoMsg struct{ Text string }

// SwitchTabMsg requests a tab switch.
type SwitchTabMsg struct{ Tab TabID }

// ToggleHelpMsg toggles the help overlay.
type ToggleHelpMsg struct{}

// OpenDialogMsg asks the app to show a modal dialog. The DialogResult is
// delivered back to the active view.
type OpenDialogMsg struct{ Dialog components.Dialog }

// CmdRefresh returns a RefreshMsg (use as return from tea.Cmd).
func CmdRefresh() tea.Msg { return RefreshMsg{} }

// CmdErr creates a tea.Cmd that sends an ErrMsg.
func CmdErr(err error) tea.Cmd {
	return func() tea.Msg { return ErrMsg{Err: err} }
}

// CmdInfo creates a tea.Cmd that sends an InfoMsg.
func CmdInfo(text string) tea.Cmd {
	return func() tea.Msg { return InfoMsg{Text: text} }
}

// CmdDialog creates a tea.Cmd that opens d.
func CmdDialog(d components.Dialog) tea.Cmd {
	return func() tea.Msg { return OpenDialogMsg{Dialog: d} }
}

// ── View interface ──────────────────────────────────────────────────────────

// View is the interface every tab view must implement.
type View interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (View, tea.Cmd)
	View() string
	SetSize(width, height int)
	ShortHelp() []components.HelpEntry

	// InputCapture returns true when the view is in a text-input mode
	// (cell editor, filter prompt, rename) and wants to capture letters,
	// etc. instead of letting the app handle them for tab switching.
	InputCapture() bool
}
