package app

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/hexvoid/voidpanel/internal/state"
	"github.com/hexvoid/voidpanel/internal/voidshell"
)

const defaultPollInterval = 3 * time.Second

// StartMonitor launches a background goroutine that polls daemon
// telemetry at a fixed cadence and feeds the store. It returns
// immediately; the goroutine exits when ctx is cancelled.
func StartMonitor(ctx context.Context, store *state.Store, src voidshell.TelemetrySource, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			pollOnce(ctx, store, src)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

func pollOnce(ctx context.Context, store *state.Store, src voidshell.TelemetrySource) {
	stats, err := src.FetchStats(ctx)
	if err != nil {
		// A poll aborted by view teardown is not a connectivity
		// failure and must not touch the store.
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return
		}
		store.Update(nil, err)
		log.Printf("stats poll failed: %v", err)
		return
	}
	store.Update(stats, nil)
}

// RefreshLibrary fetches the game library into the store. Called at
// startup and after an explicit rescan rather than on every poll.
func RefreshLibrary(ctx context.Context, store *state.Store, src voidshell.TelemetrySource) error {
	games, err := src.FetchLibrary(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return err
		}
		log.Printf("library fetch failed: %v", err)
		return err
	}
	store.SetLibrary(games)
	return nil
}
