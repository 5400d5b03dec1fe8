// Package ui renders the panel's terminal interface.
//
// # Architecture
//
// The interface is a single Bubble Tea model with five tabs: dashboard,
// packages, payloads, settings, and logs. Update never touches the
// network; every daemon call runs inside a tea.Cmd and reports back as
// a typed message. The model redraws once a second from the state
// store's snapshot, which the background monitor keeps fresh on its own
// cadence, so a slow or dead daemon can never freeze the event loop.
//
// # Long-running work
//
// Install runs and uploads execute in commands wrapping the queue
// package. Their progress flows back through buffered channels drained
// by re-armed wait commands, the standard Bubble Tea pattern for
// streaming events from a goroutine the program does not own. Dropped
// progress ticks are acceptable; the next tick supersedes them.
//
// # Settings
//
// The settings tab edits the daemon's INI document through a confstore
// Store. Edits apply locally at once and persist through the store's
// debounced save; the status line shows "saving..." until the store
// reports the write's outcome.
package ui
