// Package queue runs the panel's bulk package operations against the
// daemon one request at a time.
//
// The daemon installs to slow media and serializes its own work, so the
// panel never races it: InstallQueue issues install requests strictly
// in the order the operator queued them, waiting a fixed pacing delay
// after each request settles before issuing the next. Uploader streams
// local files the same way, sequentially, with per-tick progress and a
// rate readout sampled on a coarser clock.
//
// Both runners treat a batch as independent jobs. A failure is recorded
// in the per-item results and the run continues; there is no rollback
// and no retry. The install queue is consumed destructively: it is
// cleared when the run ends regardless of how the jobs fared.
package queue
