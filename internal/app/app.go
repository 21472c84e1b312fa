package app

import (
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Akashdeep-Patra/zgrid/internal/common"
	"github.com/Akashdeep-Patra/zgrid/internal/config"
	"github.com/Akashdeep-Patra/zgrid/internal/table"
	"github.com/Akashdeep-Patra/zgrid/internal/ui"
	"github.com/Akashdeep-Patra/zgrid/internal/ui/components"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	tagQuit   = "app-quit"
	tagReload = "app-reload"
)

// autosaveDelay is how long the table must stay unchanged before an
// autosave writes it.
const autosaveDelay = 1500 * time.Millisecond

// Model is the top-level Bubbletea model that orchestrates tabs and views.
type Model struct {
	sess      *table.Session
	cfg       *config.Config
	styles    ui.Styles
	keys      KeyMap
	width     int
	height    int
	activeTab common.TabID
	views     map[common.TabID]common.View
	showHelp  bool
	statusMsg string
	statusErr bool
	statusExp time.Time
	dialog    *components.Dialog

	// version the last autosave tick was scheduled for
	autosaveAt int

	// viewStale tracks which views need a re-init on next switch.
	viewStale map[common.TabID]bool
}

// positioner is implemented by views that track a cell cursor.
type positioner interface {
	Position() (cell, rng string)
}

// autosaveMsg fires autosaveDelay after the change that produced version.
type autosaveMsg struct{ version int }

// New creates a new application model.
func New(sess *table.Session, cfg *config.Config, styles ui.Styles, views map[common.TabID]common.View) Model {
	return Model{
		sess:       sess,
		cfg:        cfg,
		styles:     styles,
		keys:       NewKeyMap(cfg.Keys),
		activeTab:  common.TabGrid,
		views:      views,
		autosaveAt: -1,
		viewStale:  make(map[common.TabID]bool),
	}
}

// Init initialises the active view.
func (m Model) Init() tea.Cmd {
	if v, ok := m.views[m.activeTab]; ok {
		return v.Init()
	}
	return nil
}

// Update processes messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.sess.Version()
	next, cmd := m.update(msg)
	nm := next.(Model)
	if nm.sess.Version() != before {
		for id := range nm.views {
			if id != nm.activeTab {
				nm.viewStale[id] = true
			}
		}
	}
	autosave := nm.scheduleAutosave()
	return nm, tea.Batch(cmd, autosave)
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Dialog has exclusive input when visible.
	if m.dialog != nil && m.dialog.Visible() {
		d, cmd := m.dialog.Update(msg)
		m.dialog = &d
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		contentH := m.contentHeight()
		for _, v := range m.views {
			v.SetSize(m.width, contentH)
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		// A view capturing text input (cell editor, filter prompt) or
		// receiving a bracketed paste gets every key.
		if v, ok := m.views[m.activeTab]; ok && (v.InputCapture() || msg.Paste) {
			return m, m.forward(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.sess.Dirty() {
				return m, common.CmdDialog(components.NewConfirmDialog(m.styles,
					"Quit", "Discard unsaved changes and quit?", tagQuit))
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.NextTab):
			m.cycleTab(1)
			return m, m.initActiveView()
		case key.Matches(msg, m.keys.PrevTab):
			m.cycleTab(-1)
			return m, m.initActiveView()
		case key.Matches(msg, m.keys.TabGrid):
			return m, m.switchTo(common.TabGrid)
		case key.Matches(msg, m.keys.TabColumns):
			return m, m.switchTo(common.TabColumns)
		case key.Matches(msg, m.keys.TabRules):
			return m, m.switchTo(common.TabRules)

		case key.Matches(msg, m.keys.Undo):
			if !m.sess.Undo() {
				return m, common.CmdInfo("Nothing to undo")
			}
			return m, tea.Batch(common.CmdInfo("Undone"), common.CmdRefresh)
		case key.Matches(msg, m.keys.Redo):
			if !m.sess.Redo() {
				return m, common.CmdInfo("Nothing to redo")
			}
			return m, tea.Batch(common.CmdInfo("Redone"), common.CmdRefresh)
		case key.Matches(msg, m.keys.Save):
			return m, m.save()
		case key.Matches(msg, m.keys.Reload):
			if m.sess.Dirty() {
				return m, common.CmdDialog(components.NewConfirmDialog(m.styles,
					"Reload", "Discard unsaved changes and reload from disk?", tagReload))
			}
			return m, m.reload()

		case key.Matches(msg, m.keys.Back):
			if m.showHelp {
				m.showHelp = false
				return m, nil
			}
		}
		// Keys not handled globally are forwarded to the active view below.

	case common.OpenDialogMsg:
		d := msg.Dialog
		m.dialog = &d
		return m, nil

	case common.RefreshMsg:
		// Only the active view refreshes now; the others catch up when
		// they are switched to.
		cmds = append(cmds, m.forward(msg))
		for id := range m.views {
			if id != m.activeTab {
				m.viewStale[id] = true
			}
		}
		return m, tea.Batch(cmds...)

	case common.FileChangedMsg:
		if !m.sess.ChangedOnDisk() {
			return m, nil
		}
		if m.sess.Dirty() {
			return m, common.CmdErr(fmt.Errorf("%s changed on disk; %s reloads and discards your edits",
				filepath.Base(m.sess.Path()), m.keys.Reload.Help().Key))
		}
		return m, m.reload()

	case autosaveMsg:
		if msg.version == m.sess.Version() && m.sess.Dirty() {
			if err := m.sess.Save(); err != nil {
				log.Printf("app: autosave: %v", err)
				return m, common.CmdErr(fmt.Errorf("autosave: %w", err))
			}
		}
		return m, nil

	case common.ErrMsg:
		m.statusMsg = msg.Err.Error()
		m.statusErr = true
		m.statusExp = time.Now().Add(5 * time.Second)
		return m, nil

	case common.InfoMsg:
		m.statusMsg = msg.Text
		m.statusErr = false
		m.statusExp = time.Now().Add(3 * time.Second)
		return m, nil

	case common.SwitchTabMsg:
		return m, m.switchTo(msg.Tab)

	case common.ToggleHelpMsg:
		m.showHelp = !m.showHelp
		return m, nil

	case components.DialogResult:
		m.dialog = nil
		switch msg.Tag {
		case tagQuit:
			if msg.Confirmed {
				return m, tea.Quit
			}
			return m, nil
		case tagReload:
			if msg.Confirmed {
				return m, m.reload()
			}
			return m, nil
		}
	}

	// Forward unhandled messages to the active view.
	cmds = append(cmds, m.forward(msg))
	return m, tea.Batch(cmds...)
}

// forward hands msg to the active view.
func (m Model) forward(msg tea.Msg) tea.Cmd {
	v, ok := m.views[m.activeTab]
	if !ok {
		return nil
	}
	updated, cmd := v.Update(msg)
	m.views[m.activeTab] = updated
	return cmd
}

func (m Model) save() tea.Cmd {
	if err := m.sess.Save(); err != nil {
		return common.CmdErr(err)
	}
	return common.CmdInfo("Saved " + filepath.Base(m.sess.Path()))
}

func (m Model) reload() tea.Cmd {
	if err := m.sess.Reload(); err != nil {
		return common.CmdErr(err)
	}
	return tea.Batch(common.CmdInfo("Reloaded "+filepath.Base(m.sess.Path())), common.CmdRefresh)
}

// scheduleAutosave arms a delayed save for the current version. Each new
// change supersedes the previous tick, so typing never saves mid-burst.
func (m *Model) scheduleAutosave() tea.Cmd {
	if !m.cfg.Autosave || m.sess.Path() == "" || !m.sess.Dirty() {
		return nil
	}
	v := m.sess.Version()
	if v == m.autosaveAt {
		return nil
	}
	m.autosaveAt = v
	return tea.Tick(autosaveDelay, func(time.Time) tea.Msg { return autosaveMsg{version: v} })
}

// View renders the entire UI. This is a pure function with no I/O.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showHelp {
		sections := components.GlobalHelpEntries()
		tabName := ""
		for _, t := range common.AllTabs {
			if t.ID == m.activeTab {
				tabName = t.Name
				break
			}
		}
		if v, ok := m.views[m.activeTab]; ok && tabName != "" {
			sections[tabName] = v.ShortHelp()
		}
		return components.RenderHelp(m.styles, "Keyboard Shortcuts", sections, m.width, m.height)
	}

	tabBar := components.RenderTabs(m.styles, m.buildTabInfos(), m.width)

	content := ""
	if v, ok := m.views[m.activeTab]; ok {
		content = v.View()
	}
	content = lipgloss.NewStyle().Width(m.width).Height(m.contentHeight()).MaxHeight(m.contentHeight()).Render(content)

	barData := m.barData()
	if m.statusMsg != "" && time.Now().Before(m.statusExp) {
		barData.Message = m.statusMsg
		barData.IsError = m.statusErr
	}
	statusBar := components.RenderStatusBar(m.styles, barData, m.width)

	screen := lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)

	if m.dialog != nil && m.dialog.Visible() {
		screen = ui.PlaceCentre(m.width, m.height, m.dialog.View())
	}

	return screen
}

// barData summarises the session for the status bar.
func (m Model) barData() components.StatusBarData {
	t := m.sess.Table()
	data := components.StatusBarData{
		Table:     t.Name,
		Rows:      len(m.sess.Frame().Rows),
		TotalRows: len(t.Rows),
		Columns:   len(t.VisibleColumns()),
		Dirty:     m.sess.Dirty(),
		Filtered:  t.Filter != nil,
		Stale:     m.sess.OutOfDate(),
		Path:      m.sess.Path(),
	}
	if p, ok := m.views[common.TabGrid].(positioner); ok {
		data.Cell, data.Range = p.Position()
	}
	return data
}

func (m Model) contentHeight() int {
	// height - tab bar - statusBar(1) - bottomPadding(1)
	return max(m.height-components.TabBarHeight-2, 1)
}

func (m *Model) cycleTab(delta int) {
	n := len(common.AllTabs)
	cur := m.tabIndex()
	next := (cur + delta + n) % n
	m.activeTab = common.AllTabs[next].ID
	delete(m.viewStale, m.activeTab)
}

// tabIndex returns the index of the active tab in AllTabs.
func (m Model) tabIndex() int {
	for i, t := range common.AllTabs {
		if t.ID == m.activeTab {
			return i
		}
	}
	return 0
}

// switchTo changes the active tab and lazily initialises the target view.
func (m *Model) switchTo(tab common.TabID) tea.Cmd {
	m.activeTab = tab
	delete(m.viewStale, tab)
	return m.initActiveView()
}

// initActiveView calls Init on the current tab so it picks up changes made
// while it was hidden.
func (m Model) initActiveView() tea.Cmd {
	if v, ok := m.views[m.activeTab]; ok {
		return v.Init()
	}
	return nil
}

// handleMouse routes tab bar clicks and wheel events, and forwards every
// other event to the active view with Y relative to the content area.
// Motion and release events are forwarded even outside the content area so
// a drag can continue past its edges.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	tabBarH := components.TabBarHeight
	inBar := msg.Y < tabBarH

	switch {
	case inBar && (msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown):
		if msg.Button == tea.MouseButtonWheelUp {
			m.cycleTab(-1)
		} else {
			m.cycleTab(1)
		}
		return m, m.initActiveView()

	case inBar && msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		if tab, ok := m.tabAt(msg.X, msg.Y); ok && tab != m.activeTab {
			return m, m.switchTo(tab)
		}
		return m, nil

	case inBar && msg.Action == tea.MouseActionPress:
		return m, nil
	}

	msg.Y -= tabBarH
	return m, m.forward(msg)
}

// tabAt determines which tab was clicked given screen X and Y coordinates.
// Only the tab row is clickable, not its underline.
func (m Model) tabAt(x, y int) (common.TabID, bool) {
	if y != 0 {
		return 0, false
	}
	for _, zone := range components.TabZones(m.buildTabInfos(), m.width) {
		if x >= zone.Start && x < zone.End {
			return common.AllTabs[zone.Index].ID, true
		}
	}
	return 0, false
}

func (m Model) buildTabInfos() []components.TabInfo {
	t := m.sess.Table()
	infos := make([]components.TabInfo, len(common.AllTabs))
	for i, tab := range common.AllTabs {
		info := components.TabInfo{
			Name:     tab.Name,
			Icon:     tab.Icon,
			Shortcut: tab.Shortcut,
			Active:   tab.ID == m.activeTab,
			Group:    tab.Group,
		}
		switch tab.ID {
		case common.TabColumns:
			info.Badge = strconv.Itoa(len(t.Order))
		case common.TabRules:
			if n := len(t.Rules); n > 0 {
				info.Badge = strconv.Itoa(n)
			}
		}
		if m.viewStale[tab.ID] && tab.ID != m.activeTab {
			info.Badge += "•"
		}
		infos[i] = info
	}
	return infos
}
