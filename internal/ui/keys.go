package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every global binding. Admin input mode only honours Quit,
// Back and Enter so the secret can contain any character.
type keyMap struct {
	Home      key.Binding
	About     key.Binding
	Admin     key.Binding
	Open      key.Binding
	Back      key.Binding
	Reload    key.Binding
	Share     key.Binding
	Top       key.Binding
	Generate  key.Binding
	Lock      key.Binding
	Theme     key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Home: key.NewBinding(
			key.WithKeys("1", "h"),
			key.WithHelp("1/h", "home"),
		),
		About: key.NewBinding(
			key.WithKeys("2", "a"),
			key.WithHelp("2/a", "about"),
		),
		Admin: key.NewBinding(
			key.WithKeys("3", "A"),
			key.WithHelp("3/A", "admin"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Share: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "copy link"),
		),
		Top: key.NewBinding(
			key.WithKeys("t", "home"),
			key.WithHelp("t", "top"),
		),
		Generate: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "generate"),
		),
		Lock: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "lock"),
		),
		Theme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// helpSections groups bindings for the help overlay.
func (k keyMap) helpSections() []helpSection {
	return []helpSection{
		{title: "Navigation", bindings: []key.Binding{k.Home, k.About, k.Admin, k.Open, k.Back}},
		{title: "Reading", bindings: []key.Binding{k.Top, k.Share, k.Reload}},
		{title: "Admin", bindings: []key.Binding{k.Generate, k.Lock}},
		{title: "General", bindings: []key.Binding{k.Theme, k.Help, k.Quit}},
	}
}

type helpSection struct {
	title    string
	bindings []key.Binding
}
