// Package config handles loading and parsing the panel's configuration file.
//
// # Overview
//
// This package reads the panel's TOML configuration to discover the
// VoidShell daemon's API endpoint and a few local conveniences. It is
// deliberately tiny: everything that governs the daemon itself (fan
// curves, sentinel lists, scan paths) lives in the daemon's own INI
// document and is edited remotely over the API, never through this file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/voidpanel/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/voidpanel/config.toml
//   - API endpoint: 127.0.0.1:7007
//   - Poll cadence: 3 seconds
//   - Upload picker start dir: ~/Downloads
//
// # TOML Format
//
// Example config.toml:
//
//	api_bind = "192.168.1.50:7007"
//	poll_seconds = 5
//	upload_dir = "~/pkgs"
//
// All fields are optional. Tilde expansion is performed automatically.
//
// # Error Handling
//
// Load returns errors for path expansion failures, unreadable files,
// and TOML parsing errors. A missing config file is NOT an error;
// defaults are used so the panel works out of the box against a console
// on the local network.
package config
