package tui

import (
	"context"
	"fmt"
	"os"

	"github.com/Veraticus/pinhole/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the viewfinder on the terminal and blocks until the user quits
// or ctx is cancelled. Settings written by anyone else while it runs, such as
// the HTTP API sharing the same store, are pushed to the screen.
func Run(ctx context.Context, opts ...Option) error {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Store == nil {
		return fmt.Errorf("settings store is required")
	}

	// Size is reported by the first WindowSizeMsg.
	m := newModel(cfg)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithOutput(os.Stdout),
	)

	store := cfg.Store
	unsubscribe := store.Subscribe(func(model.CameraSettings) {
		cur, rev := store.Current()
		p.Send(settingsChangedMsg{settings: cur, revision: rev})
	})
	defer unsubscribe()

	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("viewfinder: %w", err)
	}
	return nil
}
