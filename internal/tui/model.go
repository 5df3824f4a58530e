package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pokeview/pokeview/internal/catalog"
	"github.com/pokeview/pokeview/internal/view"
)

// Catalog is the read API the viewer drives; *dex.Service satisfies it.
type Catalog interface {
	PageSize() int
	Page(ctx context.Context, pageNumber, pageSize int) (catalog.PageResult, error)
	Search(ctx context.Context, term string) ([]catalog.Record, error)
	Suggest(ctx context.Context, term string) ([]catalog.Entry, error)
	Detail(ctx context.Context, ident string) (catalog.Record, error)
	Random(ctx context.Context) (catalog.Record, error)
}

// Model is the root Bubble Tea model of the viewer.
type Model struct {
	ctx context.Context
	svc Catalog

	list   *view.List
	detail *view.Detail

	screen      Screen
	cursor      int
	inputActive bool
	input       textinput.Model
	spinner     spinner.Model
	help        help.Model
	listKeys    listKeys
	detailKeys  detailKeys
	searchKeys  searchKeys

	width  int
	height int
	done   bool
}

// NewModel creates a viewer on the list screen. ctx bounds every fetch.
func NewModel(ctx context.Context, svc Catalog) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	s := spinner.New()
	s.Spinner = spinner.Dot

	in := textinput.New()
	in.Placeholder = "Search a Pokémon"
	in.Prompt = "/ "
	in.ShowSuggestions = true
	in.CharLimit = 64
	in.Cursor.SetMode(cursor.CursorStatic)

	return Model{
		ctx:        ctx,
		svc:        svc,
		list:       view.NewList(),
		detail:     view.NewDetail(),
		screen:     ScreenList,
		input:      in,
		spinner:    s,
		help:       help.New(),
		listKeys:   ListKeyMap(),
		detailKeys: DetailKeyMap(),
		searchKeys: SearchKeyMap(),
	}
}

// Init starts the spinner and the first page load.
func (m Model) Init() tea.Cmd {
	tok := m.list.BeginLoad()
	return tea.Batch(m.spinner.Tick, m.fetchPage(tok, 1, false))
}

// Update routes messages to the view state machines and key handlers.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pageLoadedMsg:
		if msg.More {
			m.list.ApplyMore(msg.Token, msg.Result, msg.Err)
		} else if m.list.ApplyPage(msg.Token, msg.Result, msg.Err) {
			m.cursor = 0
		}
		m.clampCursor()
		return m, nil

	case searchDoneMsg:
		if m.list.ApplySearch(msg.Token, msg.Records, msg.Err) {
			m.cursor = 0
		}
		return m, nil

	case detailLoadedMsg:
		m.detail.Apply(msg.Token, msg.Record, msg.Err)
		return m, nil

	case suggestionsMsg:
		if m.inputActive && msg.Term == m.input.Value() {
			m.input.SetSuggestions(msg.Names)
		}
		return m, nil

	case tea.KeyMsg:
		if m.inputActive {
			return m.handleSearchKey(msg)
		}
		if m.screen == ScreenDetail {
			return m.handleDetailKey(msg)
		}
		return m.handleListKey(msg)
	}

	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.listKeys.Quit):
		m.done = true
		return m, tea.Quit

	case key.Matches(msg, m.listKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.listKeys.Down):
		if m.cursor < len(m.list.Records())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.listKeys.Open):
		records := m.list.Records()
		if m.list.Status() != view.StatusReady || len(records) == 0 {
			return m, nil
		}
		ident := strconv.Itoa(records[m.cursor].SequenceID)
		m.screen = ScreenDetail
		tok := m.detail.Begin(ident)
		return m, m.fetchDetail(tok, ident)

	case key.Matches(msg, m.listKeys.More):
		tok, ok := m.list.BeginLoadMore()
		if !ok {
			return m, nil
		}
		return m, m.fetchPage(tok, m.list.NextPage(), true)

	case key.Matches(msg, m.listKeys.Search):
		m.inputActive = true
		m.input.SetValue(m.list.Term())
		m.input.CursorEnd()
		return m, m.input.Focus()

	case key.Matches(msg, m.listKeys.Clear):
		if m.list.Searching() {
			m.list.ExitSearch()
			m.input.Reset()
			m.cursor = 0
		}
		return m, nil

	case key.Matches(msg, m.listKeys.Random):
		return m.openRandom()

	case key.Matches(msg, m.listKeys.Retry):
		return m, m.retryList()
	}

	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.detailKeys.Quit):
		m.done = true
		return m, tea.Quit

	case key.Matches(msg, m.detailKeys.Back):
		m.detail.Reset()
		m.screen = ScreenList
		return m, nil

	case key.Matches(msg, m.detailKeys.Random):
		return m.openRandom()

	case key.Matches(msg, m.detailKeys.Retry):
		if m.detail.Status() != view.StatusNotFound {
			return m, nil
		}
		ident := m.detail.Ident()
		if ident == "" {
			return m.openRandom()
		}
		tok := m.detail.Begin(ident)
		return m, m.fetchDetail(tok, ident)
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.done = true
		return m, tea.Quit

	case key.Matches(msg, m.searchKeys.Submit):
		term := m.input.Value()
		m.inputActive = false
		m.input.Blur()
		m.cursor = 0
		tok, ok := m.list.BeginSearch(term)
		if !ok {
			m.input.Reset()
			return m, nil
		}
		return m, m.fetchSearch(tok, m.list.Term())

	case key.Matches(msg, m.searchKeys.Cancel):
		m.inputActive = false
		m.input.Blur()
		m.input.Reset()
		if m.list.Searching() {
			m.list.ExitSearch()
			m.cursor = 0
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != before && value != "" {
		return m, tea.Batch(cmd, m.fetchSuggestions(value))
	}
	return m, cmd
}

func (m Model) openRandom() (tea.Model, tea.Cmd) {
	m.screen = ScreenDetail
	tok := m.detail.Begin("")
	return m, m.fetchRandom(tok)
}

// retryList re-issues whichever list request failed last.
func (m Model) retryList() tea.Cmd {
	kind, tok := m.list.Retry()
	switch kind {
	case view.RequestPage:
		return m.fetchPage(tok, 1, false)
	case view.RequestMore:
		return m.fetchPage(tok, m.list.NextPage(), true)
	case view.RequestSearch:
		return m.fetchSearch(tok, m.list.Term())
	default:
		return nil
	}
}

func (m *Model) clampCursor() {
	n := len(m.list.Records())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) fetchPage(tok view.Token, page int, more bool) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		result, err := svc.Page(ctx, page, svc.PageSize())
		return pageLoadedMsg{Token: tok, More: more, Result: result, Err: err}
	}
}

func (m Model) fetchSearch(tok view.Token, term string) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		records, err := svc.Search(ctx, term)
		return searchDoneMsg{Token: tok, Records: records, Err: err}
	}
}

func (m Model) fetchDetail(tok view.Token, ident string) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		record, err := svc.Detail(ctx, ident)
		return detailLoadedMsg{Token: tok, Record: record, Err: err}
	}
}

func (m Model) fetchRandom(tok view.Token) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		record, err := svc.Random(ctx)
		return detailLoadedMsg{Token: tok, Record: record, Err: err}
	}
}

// fetchSuggestions resolves autocomplete names against the cached index.
// Errors are dropped: suggestions are a convenience only.
func (m Model) fetchSuggestions(term string) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		entries, err := svc.Suggest(ctx, term)
		if err != nil {
			return suggestionsMsg{Term: term}
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name)
		}
		return suggestionsMsg{Term: term, Names: names}
	}
}

// Screen returns the active screen.
func (m Model) Screen() Screen { return m.screen }

// Done reports whether the user asked to quit.
func (m Model) Done() bool { return m.done }
