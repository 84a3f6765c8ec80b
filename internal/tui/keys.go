package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the application
type KeyMap struct {
	// Slider
	Lower key.Binding
	Raise key.Binding

	// Tabs
	NextTab key.Binding
	PrevTab key.Binding

	// Actions
	Edit  key.Binding
	Reset key.Binding
	Help  key.Binding
	Quit  key.Binding

	// Editor
	Up     key.Binding
	Down   key.Binding
	Add    key.Binding
	Remove key.Binding
	Save   key.Binding
	Cancel key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Lower: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "lower"),
		),
		Raise: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "raise"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next zone"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev zone"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit strategies"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r r", "reset to defaults"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "shift+tab"),
			key.WithHelp("↑", "previous entry"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "tab"),
			key.WithHelp("↓", "next entry"),
		),
		Add: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "add strategy"),
		),
		Remove: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "remove strategy"),
		),
		Save: key.NewBinding(
			key.WithKeys("enter", "ctrl+s"),
			key.WithHelp("enter/ctrl+s", "save changes"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp returns the main view bindings
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Lower, k.Raise, k.NextTab, k.Edit, k.Help, k.Quit}
}

// FullHelp returns every binding grouped by view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Lower, k.Raise, k.NextTab, k.PrevTab},
		{k.Edit, k.Reset, k.Help, k.Quit},
		{k.Up, k.Down, k.Add, k.Remove, k.Save, k.Cancel},
	}
}

// editorKeys is the help-line view of the editor bindings
type editorKeys KeyMap

func (k editorKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Add, k.Remove, k.Save, k.Cancel}
}

func (k editorKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
