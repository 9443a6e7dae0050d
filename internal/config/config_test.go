package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dmarques/tlochat/internal/models"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BaseURL != models.DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, models.DefaultBaseURL)
	}
	if cfg.RequestTimeoutSeconds != 120 {
		t.Errorf("RequestTimeoutSeconds = %d, want 120", cfg.RequestTimeoutSeconds)
	}
	if cfg.MarkdownStyle != "dark" {
		t.Errorf("MarkdownStyle = %q, want dark", cfg.MarkdownStyle)
	}
}

func TestLoadFrom_Missing(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadFrom missing file: %v", err)
	}
	if cfg.BaseURL != models.DefaultBaseURL {
		t.Error("missing file should yield defaults")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := DefaultConfig()
	cfg.APIKey = "tlo-test-key"
	cfg.BaseURL = "https://staging.tlochat.app"
	cfg.RequestTimeoutSeconds = 30
	cfg.CopyToClipboard = true

	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if loaded.APIKey != "tlo-test-key" {
		t.Errorf("APIKey = %q", loaded.APIKey)
	}
	if loaded.BaseURL != "https://staging.tlochat.app" {
		t.Errorf("BaseURL = %q", loaded.BaseURL)
	}
	if loaded.RequestTimeoutSeconds != 30 {
		t.Errorf("RequestTimeoutSeconds = %d", loaded.RequestTimeoutSeconds)
	}
	if !loaded.CopyToClipboard {
		t.Error("CopyToClipboard not preserved")
	}

	// Config holds the API key, so permissions matter
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("file mode = %o, want 600", perm)
	}
}

func TestLoadFrom_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"base_url":"","request_timeout_seconds":0}`), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.BaseURL != models.DefaultBaseURL {
		t.Error("empty base URL should fall back to default")
	}
	if cfg.RequestTimeoutSeconds != 120 {
		t.Error("non-positive timeout should fall back to default")
	}
}

func TestLoadFrom_Corrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("corrupted config should return an error")
	}
}
