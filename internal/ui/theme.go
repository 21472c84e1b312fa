package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds all colours for the application. Colours are hex strings so
// the grid can blend rule backgrounds with the selection tint.
type Theme struct {
	Bg            lipgloss.Color
	Surface       lipgloss.Color
	SurfaceHover  lipgloss.Color
	Border        lipgloss.Color
	BorderFocused lipgloss.Color

	Text        lipgloss.Color
	TextMuted   lipgloss.Color
	TextSubtle  lipgloss.Color
	TextInverse lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	// Grid
	Header    lipgloss.Color
	Frozen    lipgloss.Color
	Cursor    lipgloss.Color
	RangeTint lipgloss.Color
	Gridline  lipgloss.Color
	ReadOnly  lipgloss.Color

	// Swatches offered when adding a color rule.
	Swatches []lipgloss.Color
}

// DarkTheme returns the default dark theme (Catppuccin Mocha).
func DarkTheme() Theme {
	return Theme{
		Bg:            lipgloss.Color("#1e1e2e"),
		Surface:       lipgloss.Color("#282840"),
		SurfaceHover:  lipgloss.Color("#313152"),
		Border:        lipgloss.Color("#3b3b5c"),
		BorderFocused: lipgloss.Color("#7c7cf0"),

		Text:        lipgloss.Color("#cdd6f4"),
		TextMuted:   lipgloss.Color("#9399b2"),
		TextSubtle:  lipgloss.Color("#6c7086"),
		TextInverse: lipgloss.Color("#1e1e2e"),

		Primary:   lipgloss.Color("#89b4fa"),
		Secondary: lipgloss.Color("#b4befe"),
		Accent:    lipgloss.Color("#f5c2e7"),

		Success: lipgloss.Color("#a6e3a1"),
		Warning: lipgloss.Color("#f9e2af"),
		Error:   lipgloss.Color("#f38ba8"),
		Info:    lipgloss.Color("#89b4fa"),

		Header:    lipgloss.Color("#282840"),
		Frozen:    lipgloss.Color("#24243a"),
		Cursor:    lipgloss.Color("#89b4fa"),
		RangeTint: lipgloss.Color("#89b4fa"),
		Gridline:  lipgloss.Color("#3b3b5c"),
		ReadOnly:  lipgloss.Color("#6c7086"),

		Swatches: []lipgloss.Color{
			"#f38ba8", "#fab387", "#f9e2af", "#a6e3a1",
			"#89dceb", "#89b4fa", "#cba6f7", "#f5c2e7",
		},
	}
}

// LightTheme returns a light theme (Catppuccin Latte).
func LightTheme() Theme {
	return Theme{
		Bg:            lipgloss.Color("#eff1f5"),
		Surface:       lipgloss.Color("#e6e9ef"),
		SurfaceHover:  lipgloss.Color("#dce0e8"),
		Border:        lipgloss.Color("#bcc0cc"),
		BorderFocused: lipgloss.Color("#7287fd"),

		Text:        lipgloss.Color("#4c4f69"),
		TextMuted:   lipgloss.Color("#6c6f85"),
		TextSubtle:  lipgloss.Color("#9ca0b0"),
		TextInverse: lipgloss.Color("#eff1f5"),

		Primary:   lipgloss.Color("#1e66f5"),
		Secondary: lipgloss.Color("#7287fd"),
		Accent:    lipgloss.Color("#ea76cb"),

		Success: lipgloss.Color("#40a02b"),
		Warning: lipgloss.Color("#df8e1d"),
		Error:   lipgloss.Color("#d20f39"),
		Info:    lipgloss.Color("#1e66f5"),

		Header:    lipgloss.Color("#e6e9ef"),
		Frozen:    lipgloss.Color("#e9ecf2"),
		Cursor:    lipgloss.Color("#1e66f5"),
		RangeTint: lipgloss.Color("#1e66f5"),
		Gridline:  lipgloss.Color("#bcc0cc"),
		ReadOnly:  lipgloss.Color("#9ca0b0"),

		Swatches: []lipgloss.Color{
			"#d20f39", "#fe640b", "#df8e1d", "#40a02b",
			"#04a5e5", "#1e66f5", "#8839ef", "#ea76cb",
		},
	}
}

// ThemeByName resolves a configured theme name, defaulting to dark.
func ThemeByName(name string) Theme {
	if strings.EqualFold(strings.TrimSpace(name), "light") {
		return LightTheme()
	}
	return DarkTheme()
}

// Styles holds pre-computed lipgloss styles derived from a Theme.
type Styles struct {
	Theme Theme

	// Layout
	TabBar    lipgloss.Style
	TabActive lipgloss.Style
	TabItem   lipgloss.Style
	Content   lipgloss.Style
	StatusBar lipgloss.Style
	HelpBar   lipgloss.Style

	// Panels
	Panel        lipgloss.Style
	PanelFocused lipgloss.Style
	PanelTitle   lipgloss.Style

	// List items
	ListItem     lipgloss.Style
	ListSelected lipgloss.Style
	ListDimmed   lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	Code     lipgloss.Style
	KeyBind  lipgloss.Style
	KeyDesc  lipgloss.Style

	// Grid
	GridHeader       lipgloss.Style
	GridHeaderFrozen lipgloss.Style
	GridHeaderActive lipgloss.Style
	GridIndex        lipgloss.Style
	GridCell         lipgloss.Style
	GridReadOnly     lipgloss.Style
	GridCursor       lipgloss.Style
	GridEditor       lipgloss.Style
	GridAdd          lipgloss.Style

	// Dialogs
	Dialog       lipgloss.Style
	DialogTitle  lipgloss.Style
	DialogButton lipgloss.Style
}

// NewStyles builds all styles from the given theme.
func NewStyles(t Theme) Styles {
	s := Styles{Theme: t}

	s.TabBar = lipgloss.NewStyle().Padding(0, 1).Background(t.Surface)
	s.TabActive = lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Padding(0, 2).
		Background(t.Bg).BorderBottom(true).BorderStyle(lipgloss.ThickBorder()).BorderBottomForeground(t.Primary)
	s.TabItem = lipgloss.NewStyle().Foreground(t.TextMuted).Padding(0, 2)
	s.Content = lipgloss.NewStyle().Padding(1, 2)
	s.StatusBar = lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Padding(0, 1)
	s.HelpBar = lipgloss.NewStyle().Foreground(t.TextSubtle).Padding(0, 1)

	s.Panel = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 1)
	s.PanelFocused = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.BorderFocused).Padding(0, 1)
	s.PanelTitle = lipgloss.NewStyle().Foreground(t.Text).Bold(true).Padding(0, 1)

	s.ListItem = lipgloss.NewStyle().Foreground(t.Text).PaddingLeft(2)
	s.ListSelected = lipgloss.NewStyle().Foreground(t.Text).Background(t.SurfaceHover).Bold(true).PaddingLeft(1)
	s.ListDimmed = lipgloss.NewStyle().Foreground(t.TextSubtle).PaddingLeft(2)

	s.Title = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	s.Subtitle = lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true)
	s.Body = lipgloss.NewStyle().Foreground(t.Text)
	s.Muted = lipgloss.NewStyle().Foreground(t.TextMuted)
	s.Bold = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	s.Code = lipgloss.NewStyle().Foreground(t.Primary).Background(t.Surface).Padding(0, 1)
	s.KeyBind = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	s.KeyDesc = lipgloss.NewStyle().Foreground(t.TextMuted)

	s.GridHeader = lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Header).Bold(true)
	s.GridHeaderFrozen = lipgloss.NewStyle().Foreground(t.Secondary).Background(t.Header).Bold(true)
	s.GridHeaderActive = lipgloss.NewStyle().Foreground(t.Primary).Background(t.Header).Bold(true).Underline(true)
	s.GridIndex = lipgloss.NewStyle().Foreground(t.TextSubtle).Background(t.Header)
	s.GridCell = lipgloss.NewStyle().Foreground(t.Text)
	s.GridReadOnly = lipgloss.NewStyle().Foreground(t.ReadOnly).Italic(true)
	s.GridCursor = lipgloss.NewStyle().Foreground(t.TextInverse).Background(t.Cursor).Bold(true)
	s.GridEditor = lipgloss.NewStyle().Foreground(t.Text).Background(t.SurfaceHover)
	s.GridAdd = lipgloss.NewStyle().Foreground(t.TextSubtle).Background(t.Header)

	s.Dialog = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(t.Primary).Padding(1, 2).Width(60)
	s.DialogTitle = lipgloss.NewStyle().Foreground(t.Text).Bold(true).Align(lipgloss.Center)
	s.DialogButton = lipgloss.NewStyle().Foreground(t.TextInverse).Background(t.Primary).Padding(0, 3).Bold(true)

	return s
}

// DefaultStyles returns styles using the dark theme.
func DefaultStyles() Styles {
	return NewStyles(DarkTheme())
}
