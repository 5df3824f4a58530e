package tui

import (
	"context"
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// ErrNotTerminal is returned when the viewer is started without a TTY.
var ErrNotTerminal = errors.New("browse: requires a terminal (TTY)")

// IsTerminal reports whether f is a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Run starts the viewer on the alternate screen and blocks until the user
// quits or ctx is cancelled.
func Run(ctx context.Context, svc Catalog, in, out *os.File) error {
	if !IsTerminal(out) {
		return ErrNotTerminal
	}
	prog := tea.NewProgram(
		NewModel(ctx, svc),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	_, err := prog.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
