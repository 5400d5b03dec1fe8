package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hexvoid/voidpanel/internal/config"
	"github.com/hexvoid/voidpanel/internal/state"
	"github.com/hexvoid/voidpanel/internal/voidshell"
)

// Options configure the UI runtime.
type Options struct {
	Context   context.Context
	Client    *voidshell.Client
	Store     *state.Store
	Config    config.Config
	ThemeName string
	PrefsPath string
}

// The UI redraws from the store faster than the daemon is polled so
// spinners and progress bars stay smooth.
const uiRefreshEvery = time.Second

// Run wires up the Bubble Tea program and blocks until the context is
// cancelled or the user quits.
func Run(opts Options) error {
	if opts.Store == nil {
		return fmt.Errorf("ui requires a data store")
	}
	if opts.Client == nil {
		return fmt.Errorf("ui requires a daemon client")
	}

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	model := newModel(ctx, opts)
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
