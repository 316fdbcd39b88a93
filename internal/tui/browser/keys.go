package browser

import "github.com/charmbracelet/bubbles/key"

type browserKeyMap struct {
	selectEntry key.Binding
	cycleType   key.Binding
	tagEntry    key.Binding
	refresh     key.Binding
	submitTag   key.Binding
	exitTag     key.Binding
	quit        key.Binding
}

func newBrowserKeyMap() *browserKeyMap {
	return &browserKeyMap{
		selectEntry: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "select"),
		),
		cycleType: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "cycle type filter"),
		),
		tagEntry: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "tag"),
		),
		refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "refresh"),
		),
		submitTag: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "apply tag"),
		),
		exitTag: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel tag"),
		),
		quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

func (m browserKeyMap) shortHelp() []key.Binding {
	return []key.Binding{
		m.selectEntry,
		m.cycleType,
		m.tagEntry,
		m.refresh,
	}
}
