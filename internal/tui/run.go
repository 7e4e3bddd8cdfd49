package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the inventory screen until the user quits or ctx is canceled.
func Run(ctx context.Context, opts ...Option) error {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Pantry == nil {
		return fmt.Errorf("pantry is required")
	}

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	final, err := tea.NewProgram(newModel(cfg), programOpts...).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", err)
	}

	// An edit still open at exit has not been saved.
	if m, ok := final.(Model); ok && m.state == StateEditing {
		if cancelErr := cfg.Pantry.Editor().Cancel(); cancelErr != nil {
			return fmt.Errorf("failed to close edit session: %w", cancelErr)
		}
	}
	return nil
}
