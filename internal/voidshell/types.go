package voidshell

import (
	"bytes"
	"strconv"
)

// menuAppID is what the daemon reports when no game is in the foreground.
const menuAppID = "MENU"

// Stats mirrors the telemetry payload returned by /api/stats. The
// monitor treats it as opaque; field meaning only matters to the UI.
type Stats struct {
	CPUTemp   int    `json:"cpu"`
	SOCTemp   int    `json:"soc"`
	ActiveApp string `json:"active_game"`
	FanActive bool   `json:"fan_active"`
	Total     int    `json:"total"`
	PS5       int    `json:"ps5"`
	PS4       int    `json:"ps4"`
	Uptime    string `json:"sys_uptime"`
}

// AppRunning reports whether a game is in the foreground rather than the
// system menu.
func (s Stats) AppRunning() bool {
	return s.ActiveApp != "" && s.ActiveApp != menuAppID
}

// LibraryResponse wraps /api/library.
type LibraryResponse struct {
	Games []Game `json:"games"`
}

// Game is one installed title.
type Game struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Version string   `json:"version"`
	Exists  FlexBool `json:"exists"`
}

// OnDisk reports whether the title's data is actually present. Missing
// titles still appear in the library as ghost entries.
func (g Game) OnDisk() bool {
	return bool(g.Exists)
}

// PackageListResponse wraps /list.
type PackageListResponse struct {
	Files []PackageFile `json:"files"`
}

// PackageFile is one installable .pkg on the daemon's scan paths.
type PackageFile struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// PayloadListResponse wraps /api/payloads.
type PayloadListResponse struct {
	Files []PayloadFile `json:"files"`
}

// PayloadFile is one payload artifact stored on the daemon.
type PayloadFile struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// FlexBool decodes daemon booleans that arrive either as JSON booleans
// or as the strings "true"/"false". Older daemon builds emit the string
// form for the library exists flag.
type FlexBool bool

// UnmarshalJSON accepts true, "true", false, "false", and null.
func (f *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = false
		return nil
	}
	if data[0] == '"' {
		unquoted, err := strconv.Unquote(string(data))
		if err != nil {
			*f = false
			return nil
		}
		*f = FlexBool(unquoted == "true" || unquoted == "1")
		return nil
	}
	*f = FlexBool(bytes.Equal(data, []byte("true")))
	return nil
}
