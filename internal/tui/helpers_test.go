package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pokeview/pokeview/internal/catalog"
)

// stripANSI removes ANSI escape sequences from a string.
func stripANSI(s string) string {
	var out []byte
	i := 0
	for i < len(s) {
		if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && (s[j] < 'A' || s[j] > 'Z') && (s[j] < 'a' || s[j] > 'z') {
				j++
			}
			if j < len(s) {
				j++
			}
			i = j
		} else {
			out = append(out, s[i])
			i++
		}
	}
	return string(out)
}

// containsPlainText checks if s contains sub after stripping ANSI escapes.
func containsPlainText(s, sub string) bool {
	return strings.Contains(stripANSI(s), sub)
}

// execBatch executes a tea.Cmd, handling both single commands and batch
// commands. Spinner ticks are skipped to avoid infinite recursion.
func execBatch(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			if c == nil {
				continue
			}
			result := c()
			if _, isTick := result.(spinner.TickMsg); !isTick {
				msgs = append(msgs, result)
			}
		}
		return msgs
	}
	return []tea.Msg{msg}
}

// feed runs cmd and sends every resulting message back into m.
func feed(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range execBatch(t, cmd) {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func press(t *testing.T, m Model, keys string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch keys {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "backspace":
		msg = tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// stubCatalog serves records from memory; failPages makes Page fail for
// the listed page numbers.
type stubCatalog struct {
	mu        sync.Mutex
	pageSize  int
	records   []catalog.Record
	failPages map[int]bool
	searchErr error
	calls     []string
}

func newStubCatalog(n, pageSize int) *stubCatalog {
	names := []string{"bulbasaur", "ivysaur", "venusaur", "charmander", "charmeleon", "charizard", "squirtle", "wartortle", "blastoise", "caterpie"}
	records := make([]catalog.Record, 0, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("mon-%d", i+1)
		if i < len(names) {
			name = names[i]
		}
		records = append(records, catalog.Record{
			SequenceID: i + 1,
			Name:       name,
			Types:      []string{"grass"},
			Stats:      []catalog.Stat{{Name: "hp", Value: 45}},
			Height:     7,
			Weight:     69,
		})
	}
	return &stubCatalog{pageSize: pageSize, records: records, failPages: map[int]bool{}}
}

func (s *stubCatalog) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
}

func (s *stubCatalog) PageSize() int { return s.pageSize }

func (s *stubCatalog) Page(_ context.Context, pageNumber, pageSize int) (catalog.PageResult, error) {
	s.record(fmt.Sprintf("page:%d", pageNumber))
	if s.failPages[pageNumber] {
		return catalog.PageResult{}, &catalog.FetchError{URL: "stub", Status: 500}
	}
	start := (pageNumber - 1) * pageSize
	end := start + pageSize
	if start > len(s.records) {
		start = len(s.records)
	}
	if end > len(s.records) {
		end = len(s.records)
	}
	return catalog.PageResult{
		Entries:     append([]catalog.Record(nil), s.records[start:end]...),
		TotalCount:  len(s.records),
		HasMore:     end < len(s.records),
		CurrentPage: pageNumber,
	}, nil
}

func (s *stubCatalog) Search(_ context.Context, term string) ([]catalog.Record, error) {
	s.record("search:" + term)
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	var out []catalog.Record
	for _, r := range s.records {
		if strings.Contains(r.Name, strings.ToLower(term)) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubCatalog) Suggest(ctx context.Context, term string) ([]catalog.Entry, error) {
	var out []catalog.Entry
	for _, r := range s.records {
		if strings.Contains(r.Name, strings.ToLower(term)) {
			out = append(out, catalog.Entry{Name: r.Name, SequenceID: r.SequenceID})
		}
	}
	return out, nil
}

func (s *stubCatalog) Detail(_ context.Context, ident string) (catalog.Record, error) {
	s.record("detail:" + ident)
	for _, r := range s.records {
		if fmt.Sprint(r.SequenceID) == ident || r.Name == ident {
			return r, nil
		}
	}
	return catalog.Record{}, catalog.ErrNotFound
}

func (s *stubCatalog) Random(_ context.Context) (catalog.Record, error) {
	s.record("random")
	if len(s.records) == 0 {
		return catalog.Record{}, errors.New("empty")
	}
	return s.records[len(s.records)-1], nil
}
