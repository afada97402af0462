// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// EditorKeyMap defines the keybindings of the editing view.
type EditorKeyMap struct {
	// Motion
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding

	// Selection
	SelectLeft  key.Binding
	SelectRight key.Binding
	SelectUp    key.Binding
	SelectDown  key.Binding
	SelectAll   key.Binding
	Deselect    key.Binding

	// Editing
	Backspace key.Binding
	Delete    key.Binding

	// General
	Reload       key.Binding
	Outline      key.Binding
	Choose       key.Binding
	ToggleStatus key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// Editor holds the default editor keybindings.
var Editor = DefaultKeyMap()

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() EditorKeyMap {
	return EditorKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "move right"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "move down"),
		),

		SelectLeft: key.NewBinding(
			key.WithKeys("shift+left"),
			key.WithHelp("shift+←", "extend selection left"),
		),
		SelectRight: key.NewBinding(
			key.WithKeys("shift+right"),
			key.WithHelp("shift+→", "extend selection right"),
		),
		SelectUp: key.NewBinding(
			key.WithKeys("shift+up"),
			key.WithHelp("shift+↑", "extend selection up"),
		),
		SelectDown: key.NewBinding(
			key.WithKeys("shift+down"),
			key.WithHelp("shift+↓", "extend selection down"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "select all"),
		),
		Deselect: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear selection"),
		),

		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "delete left"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete", "ctrl+x"),
			key.WithHelp("del", "delete selection"),
		),

		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload file"),
		),
		Outline: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "toggle outline"),
		),
		Choose: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "jump to outline entry"),
		),
		ToggleStatus: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "toggle status bar"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("ctrl+q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k EditorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view, grouped as motion,
// selection, editing and general.
func (k EditorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.SelectLeft, k.SelectRight, k.SelectUp, k.SelectDown, k.SelectAll, k.Deselect},
		{k.Backspace, k.Delete},
		{k.Reload, k.Outline, k.Choose, k.ToggleStatus, k.Help, k.Quit},
	}
}
