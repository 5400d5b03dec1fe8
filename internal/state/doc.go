// Package state provides the thread-safe snapshot store shared by the
// connection monitor and the UI.
//
// # Architecture
//
// The package follows a producer-consumer pattern: the monitor goroutine
// calls Update after each telemetry poll, and the UI reads Snapshot on
// its own refresh cadence. A sync.RWMutex mediates access; the lock is
// held only during copies, never during network I/O or rendering.
//
// # Connectivity hysteresis
//
// The store also classifies the link as online or offline. The policy is
// asymmetric on purpose:
//
//   - Online → Offline requires two consecutive poll failures, so one
//     dropped poll on a flaky wireless link never flips the badge.
//   - Offline → Online happens on the very first success.
//
// Quick to recover, slow to declare dead: the badge cannot flap on
// transient hiccups. Failures keep the previous telemetry visible and
// record the error, so the UI can show stale-but-real data alongside an
// "unreachable" notice.
//
// # Defensive copying
//
// Snapshot returns independent copies of the library slice and the error
// value, so neither the monitor nor the UI can mutate data the other is
// holding. The copies are small (a few hundred library entries at most)
// and far simpler than any alternative coordination scheme.
package state
