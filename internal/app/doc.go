// Package app is the composition root for the voidpanel TUI.
//
// # Overview
//
// Run wires configuration, the daemon client, the snapshot store, the
// connection monitor, and the UI together, then blocks until the user
// quits or the context is cancelled.
//
// # Connection monitor
//
// StartMonitor owns the panel's only periodic network activity: a fixed
// 3-second poll of the daemon's stats endpoint. Each outcome lands in
// the state.Store, which applies the offline hysteresis (two consecutive
// failures to go offline, one success to come back). The monitor's
// lifetime is tied to the application context; when the context is
// cancelled, in-flight polls are aborted and an aborted poll neither
// counts as a failure nor updates the store.
//
// The library listing is deliberately outside the poll loop; it only
// changes on installs and rescans, so RefreshLibrary runs at startup and
// when the operator asks for it.
//
// # Error handling
//
// Fatal errors (bad config, unparseable daemon address) are returned
// from Run. Poll and library-fetch failures are recoverable: they are
// logged, recorded in the store for the UI to display, and polling
// continues, so the panel survives daemon restarts.
package app
