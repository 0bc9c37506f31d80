package editor

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the editor's command keys. None of them is a hex digit, so
// they never collide with typing into an input.
type KeyMap struct {
	NextField key.Binding
	PrevField key.Binding
	Apply     key.Binding
	ClearRow  key.Binding

	Reset     key.Binding
	Save      key.Binding
	SaveAs    key.Binding
	Options   key.Binding
	NextMatch key.Binding
	Copy      key.Binding
	Help      key.Binding
	Quit      key.Binding

	Confirm key.Binding
	Cancel  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		ClearRow: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("^U", "clear row"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r", "R"),
			key.WithHelp("r", "reset"),
		),
		Save: key.NewBinding(
			key.WithKeys("s", "S", "ctrl+s"),
			key.WithHelp("s", "save"),
		),
		SaveAs: key.NewBinding(
			key.WithKeys("w", "W"),
			key.WithHelp("w", "save as"),
		),
		Options: key.NewBinding(
			key.WithKeys("o", "O"),
			key.WithHelp("o", "options"),
		),
		NextMatch: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n", "next match"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "copy hex"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "H", "?"),
			key.WithHelp("h", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "Q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "no"),
		),
	}
}

// legend lists the bindings shown in the top bar.
func (k KeyMap) legend() []key.Binding {
	return []key.Binding{k.Quit, k.Help, k.Save, k.SaveAs, k.Options, k.Reset, k.NextMatch, k.Copy, k.NextField, k.Apply}
}
