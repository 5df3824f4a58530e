package tui

import "github.com/charmbracelet/bubbles/key"

// listKeys holds key bindings for the list screen.
type listKeys struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	More   key.Binding
	Search key.Binding
	Clear  key.Binding
	Random key.Binding
	Retry  key.Binding
	Quit   key.Binding
}

// ShortHelp returns the list bindings for the help bar.
func (k listKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.More, k.Search, k.Random, k.Retry, k.Quit}
}

// FullHelp returns the list bindings grouped for expanded help.
func (k listKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open},
		{k.More, k.Search, k.Clear},
		{k.Random, k.Retry, k.Quit},
	}
}

// detailKeys holds key bindings for the detail screen.
type detailKeys struct {
	Back   key.Binding
	Random key.Binding
	Retry  key.Binding
	Quit   key.Binding
}

// ShortHelp returns the detail bindings for the help bar.
func (k detailKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Random, k.Retry, k.Quit}
}

// FullHelp returns the detail bindings grouped for expanded help.
func (k detailKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Back, k.Random}, {k.Retry, k.Quit}}
}

// searchKeys holds key bindings while the search box has focus.
type searchKeys struct {
	Submit key.Binding
	Accept key.Binding
	Cancel key.Binding
}

// ShortHelp returns the search bindings for the help bar.
func (k searchKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Accept, k.Cancel}
}

// FullHelp returns the search bindings grouped for expanded help.
func (k searchKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Submit, k.Accept, k.Cancel}}
}

// ListKeyMap returns the key bindings for the list screen.
func ListKeyMap() listKeys {
	return listKeys{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		More: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "load more"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear search"),
		),
		Random: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "random"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// DetailKeyMap returns the key bindings for the detail screen.
func DetailKeyMap() detailKeys {
	return detailKeys{
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Random: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "random"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// SearchKeyMap returns the key bindings for the focused search box.
func SearchKeyMap() searchKeys {
	return searchKeys{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Accept: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "complete"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}
