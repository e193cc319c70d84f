package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/jasperwreed/toolfind/internal/palette"
)

// KeyMap holds the browser and palette bindings.
type KeyMap struct {
	Open   key.Binding
	Focus  key.Binding
	Close  key.Binding
	Up     key.Binding
	Down   key.Binding
	Select key.Binding

	// Zero-query view cursor.
	NextItem key.Binding
	PrevItem key.Binding

	ClearHistory key.Binding
	CopyLink     key.Binding
	ClearFilter  key.Binding
	Quit         key.Binding
}

var DefaultKeyMap = KeyMap{
	Open: key.NewBinding(
		key.WithKeys(palette.OpenShortcut),
		key.WithHelp("C-k", "search"),
	),
	Focus: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑/C-p", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓/C-n", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	NextItem: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next"),
	),
	PrevItem: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-tab", "prev"),
	),
	ClearHistory: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("C-d", "clear history"),
	),
	CopyLink: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("C-y", "copy link"),
	),
	ClearFilter: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "all tools"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// paletteKeys is the help.KeyMap shown inside the open palette.
type paletteKeys struct {
	KeyMap
	empty bool
}

func (k paletteKeys) ShortHelp() []key.Binding {
	if k.empty {
		return []key.Binding{k.NextItem, k.Select, k.ClearHistory, k.Close}
	}
	return []key.Binding{k.Up, k.Down, k.Select, k.CopyLink, k.Close}
}

func (k paletteKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// browserKeys is the help.KeyMap shown in the status bar while closed.
type browserKeys struct {
	KeyMap
}

func (k browserKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Focus, k.Select, k.ClearFilter, k.Quit}
}

func (k browserKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
