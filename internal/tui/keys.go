package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application.
type KeyMap struct {
	// Tree navigation
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Toggle key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Library edits
	AddBookmark   key.Binding
	AddFolder     key.Binding
	Edit          key.Binding
	Delete        key.Binding
	TogglePrivate key.Binding

	// Reparenting
	Cut       key.Binding
	Paste     key.Binding
	PasteRoot key.Binding

	Filter  key.Binding
	YankURL key.Binding
	Help    key.Binding
	Cancel  key.Binding
	Quit    key.Binding
}

func bind(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// DefaultKeyMap returns the default vim-style key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:     bind("j/k", "move", "k", "up"),
		Down:   bind("j/k", "move", "j", "down"),
		Left:   bind("h", "collapse/up", "h", "left"),
		Right:  bind("l/enter", "expand/open", "l", "right", "enter"),
		Toggle: bind("space", "toggle", " ", "tab"),
		Top:    bind("gg", "top", "g"),
		Bottom: bind("G", "bottom", "G"),

		AddBookmark:   bind("a", "add bookmark", "a"),
		AddFolder:     bind("A", "add folder", "A"),
		Edit:          bind("e", "edit", "e"),
		Delete:        bind("d", "delete", "d"),
		TogglePrivate: bind("*", "private", "*"),

		Cut:       bind("x", "cut", "x"),
		Paste:     bind("p", "paste into", "p"),
		PasteRoot: bind("P", "paste at root", "P"),

		Filter:  bind("/", "filter", "/"),
		YankURL: bind("Y", "yank url", "Y"),
		Help:    bind("?", "help", "?"),
		Cancel:  bind("esc", "clear", "esc"),
		Quit:    bind("q", "quit", "q", "ctrl+c"),
	}
}

// helpGroup is one titled column section of the help overlay.
type helpGroup struct {
	title    string
	bindings []key.Binding
}

// helpColumns lays the key map out for the help overlay.
func (k KeyMap) helpColumns() [2][]helpGroup {
	return [2][]helpGroup{
		{
			{"nav", []key.Binding{k.Down, k.Top, k.Bottom, k.Right, k.Left, k.Toggle}},
			{"act", []key.Binding{k.YankURL, k.Filter, k.Cancel}},
		},
		{
			{"edit", []key.Binding{k.AddBookmark, k.AddFolder, k.Edit, k.Delete, k.TogglePrivate}},
			{"move", []key.Binding{k.Cut, k.Paste, k.PasteRoot}},
		},
	}
}
