package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Exposure
	NextCondition     key.Binding
	PrevCondition     key.Binding
	NextFilter        key.Binding
	BracketUp         key.Binding
	BracketDown       key.Binding
	ISOUp             key.Binding
	ISODown           key.Binding
	ToggleReciprocity key.Binding

	// Framing
	ToggleOrientation key.Binding
	NextFormat        key.Binding

	// Application
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextCondition: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "next condition"),
		),
		PrevCondition: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "previous condition"),
		),
		NextFilter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "cycle filter"),
		),
		BracketUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "bracket +1"),
		),
		BracketDown: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "bracket -1"),
		),
		ISOUp: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "faster film"),
		),
		ISODown: key.NewBinding(
			key.WithKeys("I"),
			key.WithHelp("I", "slower film"),
		),
		ToggleReciprocity: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reciprocity"),
		),
		ToggleOrientation: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "rotate film"),
		),
		NextFormat: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "film format"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/Esc", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextCondition, k.NextFilter, k.BracketUp, k.BracketDown, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextCondition, k.PrevCondition, k.NextFilter, k.ToggleReciprocity},
		{k.BracketUp, k.BracketDown, k.ISOUp, k.ISODown},
		{k.ToggleOrientation, k.NextFormat},
		{k.Help, k.Quit},
	}
}
