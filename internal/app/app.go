package app

import (
	"context"
	"fmt"
	"time"

	"github.com/hexvoid/voidpanel/internal/config"
	"github.com/hexvoid/voidpanel/internal/prefs"
	"github.com/hexvoid/voidpanel/internal/state"
	"github.com/hexvoid/voidpanel/internal/ui"
	"github.com/hexvoid/voidpanel/internal/voidshell"
)

// Options configure the voidpanel application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/voidpanel/prefs.toml
	Host       string // overrides the configured daemon address
	PollEvery  int    // seconds; zero uses default
}

// resolvePollInterval picks the monitor cadence: an explicit flag wins,
// otherwise the config file's poll_seconds (which defaults itself).
func resolvePollInterval(cfg config.Config, flagSeconds int) time.Duration {
	if flagSeconds > 0 {
		return time.Duration(flagSeconds) * time.Second
	}
	return cfg.PollEvery()
}

// Run boots the panel TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load panel config: %w", err)
	}
	if opts.Host != "" {
		cfg.APIBind = opts.Host
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	client, err := voidshell.NewClient(cfg.APIBind)
	if err != nil {
		return fmt.Errorf("init voidshell client: %w", err)
	}

	store := &state.Store{}

	interval := resolvePollInterval(cfg, opts.PollEvery)

	StartMonitor(ctx, store, client, interval)

	// Populate the store before the UI draws its first frame. Failures
	// are tolerated; the panel starts in its offline-pending state.
	_ = RefreshLibrary(ctx, store, client)

	return ui.Run(ui.Options{
		Context:   ctx,
		Client:    client,
		Store:     store,
		Config:    cfg,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	})
}
