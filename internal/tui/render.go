package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/pokeview/pokeview/internal/view"
)

// chromeHeight is the number of lines used by the title, counter, footer and help bar.
const chromeHeight = 6

// defaultRows is the visible row count before the first WindowSizeMsg.
const defaultRows = 15

// View renders the active screen followed by the help bar.
func (m Model) View() string {
	if m.done {
		return ""
	}

	var body string
	if m.screen == ScreenDetail {
		body = m.viewDetail()
	} else {
		body = m.viewList()
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, "", m.help.View(m.helpKeys()))
}

func (m Model) helpKeys() help.KeyMap {
	switch {
	case m.inputActive:
		return m.searchKeys
	case m.screen == ScreenDetail:
		return m.detailKeys
	default:
		return m.listKeys
	}
}

func (m Model) viewList() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Pokédex"))
	b.WriteString("\n")

	if m.inputActive || m.list.Searching() {
		if m.inputActive {
			b.WriteString(m.input.View())
		} else {
			b.WriteString(dimStyle.Render("/ " + m.list.Term()))
		}
		b.WriteString("\n")
	}

	switch m.list.Status() {
	case view.StatusIdle, view.StatusLoading:
		fmt.Fprintf(&b, "%s Loading...\n", m.spinner.View())
		return b.String()
	case view.StatusError:
		b.WriteString(errorStyle.Render("Could not load Pokémon: " + m.list.Err().Error()))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("press r to try again"))
		return b.String()
	}

	b.WriteString(dimStyle.Render(m.list.Counter()))
	b.WriteString("\n")

	records := m.list.Records()
	if len(records) == 0 {
		b.WriteString("No Pokémon found.\n")
	}
	start, end := m.visibleRange(len(records))
	for i := start; i < end; i++ {
		r := records[i]
		line := fmt.Sprintf("%s %s", dimStyle.Render(r.Number()), nameStyle.Render(Capitalize(r.Name)))
		if i == m.cursor {
			line = selectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		if len(r.Types) > 0 {
			line += " " + TypeBadges(r.Types)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if !m.list.Searching() {
		b.WriteString(m.listFooter())
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) listFooter() string {
	switch {
	case m.list.LoadingMore():
		return fmt.Sprintf("%s Loading more...", m.spinner.View())
	case m.list.MoreErr() != nil:
		return errorStyle.Render("Could not load more: press r to try again")
	case !m.list.HasMore():
		return dimStyle.Render("You have seen them all.")
	default:
		return dimStyle.Render("press m to load more")
	}
}

// visibleRange keeps the cursor inside a window sized to the terminal.
func (m Model) visibleRange(n int) (int, int) {
	rows := defaultRows
	if m.height > 0 {
		rows = m.height - chromeHeight
	}
	if rows < 1 {
		rows = 1
	}
	if n <= rows {
		return 0, n
	}
	start := m.cursor - rows/2
	if start < 0 {
		start = 0
	}
	end := start + rows
	if end > n {
		end = n
		start = n - rows
	}
	return start, end
}

func (m Model) viewDetail() string {
	var b strings.Builder
	switch m.detail.Status() {
	case view.StatusIdle, view.StatusLoading:
		fmt.Fprintf(&b, "%s Loading...", m.spinner.View())
		return b.String()
	case view.StatusNotFound:
		b.WriteString(errorStyle.Render("Pokémon not found."))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("press esc to go back"))
		return b.String()
	}

	r := m.detail.Record()
	fmt.Fprintf(&b, "%s %s\n", dimStyle.Render(r.Number()), titleStyle.Render(Capitalize(r.Name)))
	if len(r.Types) > 0 {
		b.WriteString(TypeBadges(r.Types))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nHeight %.1f m   Weight %.1f kg\n\n", r.HeightMeters(), r.WeightKilograms())
	for _, s := range r.Stats {
		b.WriteString(StatBar(s))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%-16s %3d", "Total", r.TotalStats())
	return b.String()
}
