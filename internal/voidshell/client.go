package voidshell

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
)

// TelemetrySource is the read side the connection monitor depends on.
// Implemented by *Client; fake it in tests.
type TelemetrySource interface {
	FetchStats(ctx context.Context) (*Stats, error)
	FetchLibrary(ctx context.Context) ([]Game, error)
}

// ConfigRW is the raw-config transport the config store depends on.
type ConfigRW interface {
	FetchRawConfig(ctx context.Context) (string, error)
	SaveRawConfig(ctx context.Context, text string) error
}

var (
	_ TelemetrySource = (*Client)(nil)
	_ ConfigRW        = (*Client)(nil)
)

// Client talks to the VoidShell daemon HTTP API.
type Client struct {
	rest      *resty.Client
	userAgent string
}

const (
	defaultAPIBind = "127.0.0.1:7007"
	defaultAgent   = "voidpanel/0.1"
	requestTimeout = 5 * time.Second

	// bodyPreviewLimit caps how much of an unparseable body lands in an
	// error message.
	bodyPreviewLimit = 120
)

// NewClient builds a Client from a host:port or URL value.
func NewClient(apiBind string) (*Client, error) {
	base, err := parseBaseURL(apiBind)
	if err != nil {
		return nil, err
	}
	rest := resty.New().
		SetBaseURL(base.String()).
		SetTimeout(requestTimeout).
		SetHeader("User-Agent", defaultAgent)
	return &Client{rest: rest, userAgent: defaultAgent}, nil
}

// FetchStats retrieves the live telemetry snapshot.
func (c *Client) FetchStats(ctx context.Context) (*Stats, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload Stats
	if err := c.getJSON(ctx, "/api/stats", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchLibrary retrieves the installed game library.
func (c *Client) FetchLibrary(ctx context.Context) ([]Game, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload LibraryResponse
	if err := c.getJSON(ctx, "/api/library", &payload); err != nil {
		return nil, err
	}
	return payload.Games, nil
}

// Launch asks the daemon to start the given app. Fire-and-forget: a 2xx
// means the request was accepted, not that the app came up.
func (c *Client) Launch(ctx context.Context, appID string) error {
	if strings.TrimSpace(appID) == "" {
		return fmt.Errorf("app id required")
	}
	return c.postRaw(ctx, "/api/launch", appID)
}

// FetchRawConfig retrieves the daemon config as section-formatted text.
func (c *Client) FetchRawConfig(ctx context.Context) (string, error) {
	resp, err := c.rest.R().SetContext(ctx).Get("/api/config_raw")
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	if resp.StatusCode() >= 400 {
		return "", fmt.Errorf("api /api/config_raw returned status %d", resp.StatusCode())
	}
	return string(resp.Body()), nil
}

// SaveRawConfig replaces the daemon config wholesale with the given text.
func (c *Client) SaveRawConfig(ctx context.Context, text string) error {
	return c.postRaw(ctx, "/api/save_ini", text)
}

// ListPackages lists .pkg files found in the daemon's scan paths.
func (c *Client) ListPackages(ctx context.Context) ([]PackageFile, error) {
	var payload PackageListResponse
	if err := c.getJSON(ctx, "/list", &payload); err != nil {
		return nil, err
	}
	return payload.Files, nil
}

// InstallPackage requests installation of one already-present package.
// Pacing between calls is the caller's responsibility.
func (c *Client) InstallPackage(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("package path required")
	}
	return c.postRaw(ctx, "/install_existing", path)
}

// InstallURL asks the daemon to download and install a remote package.
func (c *Client) InstallURL(ctx context.Context, pkgURL string) error {
	if strings.TrimSpace(pkgURL) == "" {
		return fmt.Errorf("package url required")
	}
	resp, err := c.rest.R().SetContext(ctx).SetBody(pkgURL).Post("/api/install_url")
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	var reply struct {
		Status string `json:"status"`
		Msg    string `json:"msg"`
	}
	if err := decodeJSON("/api/install_url", resp, &reply); err != nil {
		return err
	}
	if reply.Status != "ok" {
		return fmt.Errorf("remote install rejected: %s", reply.Msg)
	}
	return nil
}

// DeletePackage removes a package file from the daemon's storage.
func (c *Client) DeletePackage(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("package path required")
	}
	return c.postRaw(ctx, "/delete", path)
}

// Upload streams one file's bytes to the daemon. onProgress, when
// non-nil, receives the cumulative byte count as the body is consumed.
func (c *Client) Upload(ctx context.Context, name string, r io.Reader, onProgress func(sent int64)) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("file name required")
	}
	body := &progressReader{r: r, fn: onProgress}
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParam("name", name).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody(body).
		Post("/upload")
	if err != nil {
		return fmt.Errorf("upload %s: %w", name, err)
	}
	if resp.StatusCode() >= 400 {
		return fmt.Errorf("upload %s returned status %d", name, resp.StatusCode())
	}
	return nil
}

// ListPayloads lists payload artifacts stored on the daemon.
func (c *Client) ListPayloads(ctx context.Context) ([]PayloadFile, error) {
	var payload PayloadListResponse
	if err := c.getJSON(ctx, "/api/payloads", &payload); err != nil {
		return nil, err
	}
	return payload.Files, nil
}

// SendPayload injects the named payload on the console.
func (c *Client) SendPayload(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("payload name required")
	}
	return c.postRaw(ctx, "/api/send_payload", name)
}

// FetchPayloadOrder retrieves the operator-defined payload priority list.
func (c *Client) FetchPayloadOrder(ctx context.Context) ([]string, error) {
	var order []string
	if err := c.getJSON(ctx, "/api/payload_order", &order); err != nil {
		return nil, err
	}
	return order, nil
}

// Rescan triggers a library rescan.
func (c *Client) Rescan(ctx context.Context) error {
	return c.postRaw(ctx, "/api/rescan", "")
}

// Repair triggers an icon repair pass.
func (c *Client) Repair(ctx context.Context) error {
	return c.postRaw(ctx, "/api/repair", "")
}

// Pause toggles the daemon's background scanner.
func (c *Client) Pause(ctx context.Context) error {
	return c.postRaw(ctx, "/api/pause", "")
}

// FetchLogs retrieves the daemon log tail as plain text.
func (c *Client) FetchLogs(ctx context.Context) (string, error) {
	resp, err := c.rest.R().SetContext(ctx).Get("/api/logs")
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	if resp.StatusCode() >= 400 {
		return "", fmt.Errorf("api /api/logs returned status %d", resp.StatusCode())
	}
	return string(resp.Body()), nil
}

// ClearLogs truncates the daemon log.
func (c *Client) ClearLogs(ctx context.Context) error {
	return c.postRaw(ctx, "/api/logs/clear", "")
}

func (c *Client) postRaw(ctx context.Context, path, body string) error {
	req := c.rest.R().SetContext(ctx)
	if body != "" {
		req.SetHeader("Content-Type", "text/plain").SetBody(body)
	}
	resp, err := req.Post(path)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	if resp.StatusCode() >= 400 {
		return fmt.Errorf("api %s returned status %d", path, resp.StatusCode())
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, dest any) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(path)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	return decodeJSON(path, resp, dest)
}

// decodeJSON enforces the JSON boundary contract: a non-2xx status or a
// non-JSON body is a hard call failure, never retried, with a truncated
// body preview for diagnostics.
func decodeJSON(path string, resp *resty.Response, dest any) error {
	if resp.StatusCode() >= 400 {
		return fmt.Errorf("api %s returned status %d", path, resp.StatusCode())
	}
	ct := resp.Header().Get("Content-Type")
	if !strings.Contains(ct, "json") {
		return fmt.Errorf("api %s returned %q, want JSON: %s", path, ct, bodyPreview(resp.Body()))
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), dest); err != nil {
		return fmt.Errorf("decode response from %s: %w: %s", path, err, bodyPreview(resp.Body()))
	}
	return nil
}

func bodyPreview(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > bodyPreviewLimit {
		// Back off to a rune boundary so the preview stays valid UTF-8.
		cut := bodyPreviewLimit
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		return s[:cut] + "…"
	}
	if s == "" {
		return "(empty body)"
	}
	return s
}

// progressReader reports cumulative bytes read to fn as the HTTP layer
// drains the upload body.
type progressReader struct {
	r    io.Reader
	sent int64
	fn   func(int64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		if p.fn != nil {
			p.fn(p.sent)
		}
	}
	return n, err
}

func parseBaseURL(apiBind string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBind)
	if trimmed == "" {
		trimmed = defaultAPIBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api bind %q: %w", apiBind, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
