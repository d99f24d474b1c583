package explorer

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the explorer TUI
type KeyMap struct {
	Up            key.Binding
	Down          key.Binding
	PageUp        key.Binding
	PageDown      key.Binding
	GoToTop       key.Binding
	GoToBottom    key.Binding
	ToggleFold    key.Binding
	ToggleGroup   key.Binding
	ToggleKinds   key.Binding
	DeleteIssue   key.Binding
	CompleteIssue key.Binding
	Report        key.Binding
	Help          key.Binding
	Quit          key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.GoToTop, k.GoToBottom},
		{k.ToggleFold, k.ToggleGroup, k.ToggleKinds},
		{k.DeleteIssue, k.CompleteIssue, k.Report},
		{k.Help, k.Quit},
	}
}

var keys = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "page down"),
	),
	GoToTop: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("g", "go to top"),
	),
	GoToBottom: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("G", "go to bottom"),
	),
	ToggleFold: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "expand/collapse"),
	),
	ToggleGroup: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "toggle file grouping"),
	),
	ToggleKinds: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "toggle kind groups"),
	),
	DeleteIssue: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete issue"),
	),
	CompleteIssue: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "mark complete"),
	),
	Report: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "report"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
