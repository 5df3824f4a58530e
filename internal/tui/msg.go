// Package tui implements the interactive terminal viewer: a paginated list
// with search and autocomplete, and a detail screen. All fetches run as
// tea.Cmds; their results come back as messages carrying the view.Token they
// were issued with, and the view state machines drop anything stale.
package tui

import (
	"github.com/pokeview/pokeview/internal/catalog"
	"github.com/pokeview/pokeview/internal/view"
)

// Screen identifies which screen has the terminal.
type Screen int

const (
	ScreenList   Screen = iota // Paginated list or search results.
	ScreenDetail               // Single record.
)

// pageLoadedMsg carries the outcome of a page fetch. More is true when the
// page extends an already loaded list.
type pageLoadedMsg struct {
	Token  view.Token
	More   bool
	Result catalog.PageResult
	Err    error
}

// searchDoneMsg carries the hydrated records of a search.
type searchDoneMsg struct {
	Token   view.Token
	Records []catalog.Record
	Err     error
}

// detailLoadedMsg carries a single record for the detail screen.
type detailLoadedMsg struct {
	Token  view.Token
	Record catalog.Record
	Err    error
}

// suggestionsMsg carries autocomplete names for the term that was typed.
type suggestionsMsg struct {
	Term  string
	Names []string
}
