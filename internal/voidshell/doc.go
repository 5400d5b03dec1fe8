// Package voidshell provides an HTTP client for the VoidShell daemon API.
//
// # Overview
//
// The daemon exposes a small REST surface: JSON for telemetry, library,
// package, and payload listings; line-oriented text for the raw config
// document and the log tail; and fire-and-forget POSTs for actions
// (launch, install, rescan). This package wraps each endpoint in a typed
// method on Client and owns the boundary policy for all of them.
//
// # Boundary policy
//
// Every call takes a context and returns a wrapped error. For endpoints
// declared JSON, the response must carry a JSON content type and decode
// cleanly; anything else is a hard call failure carrying a truncated
// preview of the raw body so the operator can see what the daemon
// actually said. There are no retries anywhere: the backend and the
// network link are both assumed best-effort, and the operator re-triggers
// failed actions.
//
// Trivially invalid inputs (empty path, empty app id, empty URL) are
// rejected before any request is issued.
//
// # Uploads
//
// Upload streams raw file bytes to POST /upload. The request body is
// wrapped in a counting reader that reports cumulative bytes to the
// caller's callback as the HTTP layer drains it; throughput sampling and
// percent math live in the queue package, not here.
//
// # Interfaces
//
// TelemetrySource and ConfigRW name the two slices of the client that
// other packages depend on (the connection monitor and the config store
// respectively). Both are implemented by *Client and asserted at compile
// time; tests substitute fakes.
//
// # Design rationale
//
// The client is intentionally thin: no caching (the monitor owns refresh
// cadence), no retries (app layer policy), no batching (the daemon has
// none; the queue package emulates it with paced single-item calls).
package voidshell
