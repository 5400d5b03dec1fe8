package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/hexvoid/voidpanel/internal/voidshell"
)

// failThreshold is how many consecutive poll failures it takes to
// declare the daemon offline. Recovery needs just one success, so a
// single dropped poll never flips the badge.
const failThreshold = 2

// Snapshot represents the latest daemon data available to the UI.
type Snapshot struct {
	Stats               voidshell.Stats
	HasStats            bool
	Library             []voidshell.Game
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true once the API has been unreachable for multiple
// consecutive polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= failThreshold
}

// Store coordinates concurrent updates to the snapshot between the
// connection monitor and the UI.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update records one poll outcome. On success the telemetry replaces the
// stored copy and the failure streak resets; on failure the previous
// telemetry is kept and the streak grows.
func (s *Store) Update(stats *voidshell.Stats, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	if stats != nil {
		s.snapshot.Stats = *stats
		s.snapshot.HasStats = true
	}
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// SetLibrary replaces the cached game library. The library refreshes on
// its own cadence (startup and explicit rescans), not every poll.
func (s *Store) SetLibrary(games []voidshell.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Library = cloneLibrary(games)
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Library = cloneLibrary(s.snapshot.Library)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneLibrary(games []voidshell.Game) []voidshell.Game {
	if len(games) == 0 {
		return nil
	}
	dup := make([]voidshell.Game, len(games))
	copy(dup, games)
	return dup
}
