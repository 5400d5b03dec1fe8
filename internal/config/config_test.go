package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBind != defaultAPIBind {
		t.Fatalf("APIBind = %q, want %q", cfg.APIBind, defaultAPIBind)
	}
	if cfg.PollSeconds != defaultPollSeconds {
		t.Fatalf("PollSeconds = %d, want %d", cfg.PollSeconds, defaultPollSeconds)
	}
	wantDir, err := expandPath(defaultUploadDir)
	if err != nil {
		t.Fatalf("expandPath(defaultUploadDir) returned error: %v", err)
	}
	if cfg.UploadDir != wantDir {
		t.Fatalf("UploadDir = %q, want %q", cfg.UploadDir, wantDir)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	body := "api_bind = \"  192.168.1.50:7007  \"\npoll_seconds = 5\nupload_dir = \"~/pkgs\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBind != "192.168.1.50:7007" {
		t.Fatalf("APIBind = %q, want trimmed value", cfg.APIBind)
	}
	if cfg.PollSeconds != 5 {
		t.Fatalf("PollSeconds = %d, want 5", cfg.PollSeconds)
	}
	if cfg.UploadDir != filepath.Join(home, "pkgs") {
		t.Fatalf("UploadDir = %q, want %q", cfg.UploadDir, filepath.Join(home, "pkgs"))
	}
}

func TestLoad_EmptyFieldsUseDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("api_bind = \"\"\npoll_seconds = 0\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBind != defaultAPIBind {
		t.Fatalf("APIBind = %q, want %q", cfg.APIBind, defaultAPIBind)
	}
	if cfg.PollSeconds != defaultPollSeconds {
		t.Fatalf("PollSeconds = %d, want %d", cfg.PollSeconds, defaultPollSeconds)
	}
}

func TestLoad_InvalidTOMLIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load returned nil error for invalid TOML")
	}
}

func TestPollEvery(t *testing.T) {
	if got := (Config{PollSeconds: 5}).PollEvery(); got != 5*time.Second {
		t.Fatalf("PollEvery = %v, want 5s", got)
	}
	if got := (Config{}).PollEvery(); got != defaultPollSeconds*time.Second {
		t.Fatalf("zero-value PollEvery = %v, want default", got)
	}
}
