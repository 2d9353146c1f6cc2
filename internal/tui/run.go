package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive menu and blocks until the user quits.
// Cancelling ctx stops the program; a fatal storage failure ends the
// session and is returned to the caller.
func Run(ctx context.Context, store Store) error {
	program := tea.NewProgram(NewModel(ctx, store), tea.WithAltScreen(), tea.WithContext(ctx))

	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("menu terminated: %w", err)
	}

	if m, ok := final.(Model); ok && m.Err() != nil {
		return fmt.Errorf("storage failure: %w", m.Err())
	}
	return nil
}
