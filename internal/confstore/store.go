package confstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hexvoid/voidpanel/internal/iniconf"
	"github.com/hexvoid/voidpanel/internal/voidshell"
)

// Well-known section names the daemon's UI surfaces depend on. Load
// guarantees they exist so no consumer ever dereferences an absent
// section.
const (
	SectionSettings  = "Settings"
	SectionFan       = "FanControl"
	SectionSentinel  = "Sentinel"
	SectionWhitelist = "SentinelWhitelist"
	SectionDelays    = "SentinelGames"
	SectionPaths     = "CustomPaths"
	SectionBlacklist = "Blacklist"
)

var wellKnownSections = []string{
	SectionSettings,
	SectionFan,
	SectionSentinel,
	SectionWhitelist,
	SectionDelays,
	SectionPaths,
	SectionBlacklist,
}

// defaultDebounce is the quiet period after the last edit before a
// scheduled save fires. Long enough to coalesce a slider drag, short
// enough that the operator never wonders whether anything happened.
const defaultDebounce = 400 * time.Millisecond

// saveTimeout bounds the background write a debounced save performs.
const saveTimeout = 5 * time.Second

// Store owns the in-memory config document for one settings session.
// All mutation flows through its methods; callers never hold the
// underlying document, which preserves the section-existence invariant.
type Store struct {
	rw voidshell.ConfigRW

	mu       sync.Mutex
	cfg      *iniconf.Config
	debounce time.Duration
	timer    *time.Timer
	closed   bool

	// onSaved receives the outcome of every debounced save. Failures
	// are surfaced, never retried.
	onSaved func(error)
}

// New returns a Store bound to the given raw-config transport. The
// store starts with an empty well-known-sections skeleton, so it is
// usable before (or without) a successful Load.
func New(rw voidshell.ConfigRW) *Store {
	s := &Store{rw: rw, debounce: defaultDebounce}
	s.cfg = skeleton()
	return s
}

// SetDebounce overrides the debounce quiet period. Zero or negative
// restores the default.
func (s *Store) SetDebounce(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d <= 0 {
		d = defaultDebounce
	}
	s.debounce = d
}

// OnSaved registers a callback for debounced-save outcomes. The
// callback runs on the timer goroutine.
func (s *Store) OnSaved(fn func(error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSaved = fn
}

// Load fetches and decodes the daemon config, ensuring the well-known
// sections exist. It fails soft: on any fetch error the store installs
// an empty skeleton so the editor stays usable, and the error is
// returned for display only.
func (s *Store) Load(ctx context.Context) error {
	text, err := s.rw.FetchRawConfig(ctx)

	var cfg *iniconf.Config
	if err != nil {
		cfg = iniconf.New()
	} else {
		cfg = iniconf.Decode(text)
	}
	for _, name := range wellKnownSections {
		cfg.Ensure(name)
	}

	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return nil
}

// SetScalar overwrites a single key's value in memory. Non-string
// values are stringified. No network call happens here; persistence is
// explicit via Save or ScheduleSave.
func (s *Store) SetScalar(section, key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Ensure(section).Set(key, fmt.Sprint(value))
}

// Scalar returns the current in-memory value for a key, or empty string
// when absent.
func (s *Store) Scalar(section, key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sec, ok := s.cfg.Lookup(section); ok {
		return sec.Value(key)
	}
	return ""
}

// ReplaceSection swaps a section's contents wholesale. In-memory only.
func (s *Store) ReplaceSection(section string, contents *iniconf.Section) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Replace(section, contents)
}

// SectionSnapshot returns an independent copy of a section, creating it
// empty if absent.
func (s *Store) SectionSnapshot(section string) *iniconf.Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Ensure(section).Clone()
}

// Save encodes the full in-memory document and writes it to the daemon,
// replacing the server-side config entirely. Last writer wins; there is
// no diffing, no version check, and no retry.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	encoded := iniconf.Encode(s.cfg)
	s.mu.Unlock()

	if err := s.rw.SaveRawConfig(ctx, encoded); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// ScheduleSave arranges a Save after the debounce quiet period,
// cancelling and rescheduling any pending one. N rapid edits to the
// same control collapse into exactly one write carrying the final
// values. The outcome reaches the OnSaved callback.
func (s *Store) ScheduleSave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.flush)
}

func (s *Store) flush() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	fn := s.onSaved
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	err := s.Save(ctx)
	if fn != nil {
		fn(err)
	}
}

// Close cancels any pending debounced save. Called on settings view
// unmount; edits made after Close are never persisted implicitly.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func skeleton() *iniconf.Config {
	cfg := iniconf.New()
	for _, name := range wellKnownSections {
		cfg.Ensure(name)
	}
	return cfg
}
