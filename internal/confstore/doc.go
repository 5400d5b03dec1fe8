// Package confstore keeps the panel's view of the daemon configuration
// consistent with the remotely persisted document.
//
// # Ownership
//
// One Store instance owns the decoded config for the lifetime of a
// settings session. Scalar toggles, list editors, and the raw-text
// editor all route their mutations through the Store's entry points;
// nothing else touches the document. That single funnel is what keeps
// the well-known-section invariant intact and makes the store trivially
// testable in isolation.
//
// # Persistence model
//
// The daemon offers exactly one persistence primitive: replace the
// whole config document. Save therefore encodes everything in memory
// and overwrites the server copy: last writer wins, no version check,
// no retry. Load guarantees the complete current document is in memory
// first, creating the well-known sections when the daemon's file lacks
// them, and failing soft (empty skeleton, error surfaced for display
// only) so the editor works even against an unreachable daemon.
//
// # Debounced saves
//
// Continuous-input controls (the fan target-temperature slider is the
// canonical case) call SetScalar for instant UI feedback and then
// ScheduleSave. The store keeps a single-slot timer: each edit inside
// the 400 ms quiet window cancels and reschedules it, so a burst of N
// edits produces exactly one network write carrying the final values.
// The debounce only orders writes funnelled through this one timer;
// independent explicit Save calls still race as last-writer-wins, which
// is acceptable for a single operator.
//
// # Editors
//
// Three editor flavors cover the daemon's section shapes: SetList for
// presence-only sections (whitelist, blacklist), DelayMap for sections
// whose values matter (per-game delays in milliseconds), and RawList
// for sections the operator edits as newline-delimited free text
// (custom scan paths). All three funnel through ReplaceSection.
package confstore
