package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FINSIGHT_BASE_URL", "")
	t.Setenv("POLL_INTERVAL_SECONDS", "")
	t.Setenv("PAGE_SIZE", "")
	t.Setenv("MAX_UPLOAD_MB", "")

	cfg := Load()
	if cfg.BaseURL != "http://localhost:8000/api/v1" {
		t.Errorf("base url = %q", cfg.BaseURL)
	}
	if cfg.PollIntervalSeconds != 3 {
		t.Errorf("poll interval = %d, want 3", cfg.PollIntervalSeconds)
	}
	if cfg.PageSize != 20 {
		t.Errorf("page size = %d, want 20", cfg.PageSize)
	}
	if cfg.MaxUploadMB != 50 {
		t.Errorf("max upload = %d, want 50", cfg.MaxUploadMB)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FINSIGHT_BASE_URL", "https://backend.internal/api/v1")
	t.Setenv("PAGE_SIZE", "50")

	cfg := Load()
	if cfg.BaseURL != "https://backend.internal/api/v1" {
		t.Errorf("base url = %q", cfg.BaseURL)
	}
	if cfg.PageSize != 50 {
		t.Errorf("page size = %d, want 50", cfg.PageSize)
	}
}

func TestLoadIgnoresUnparsableInt(t *testing.T) {
	t.Setenv("PAGE_SIZE", "twenty")

	cfg := Load()
	if cfg.PageSize != 20 {
		t.Errorf("page size = %d, want fallback 20", cfg.PageSize)
	}
}

func TestLoadFileOverlaysEnvironment(t *testing.T) {
	t.Setenv("FINSIGHT_BASE_URL", "http://from-env/api/v1")
	t.Setenv("PAGE_SIZE", "25")

	path := filepath.Join(t.TempDir(), "finsight.yaml")
	body := "base_url: http://from-file/api/v1\npoll_interval_seconds: 10\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.BaseURL != "http://from-file/api/v1" {
		t.Errorf("base url = %q, want file value", cfg.BaseURL)
	}
	if cfg.PollIntervalSeconds != 10 {
		t.Errorf("poll interval = %d, want 10", cfg.PollIntervalSeconds)
	}
	if cfg.PageSize != 25 {
		t.Errorf("page size = %d, want env value 25", cfg.PageSize)
	}
}

func TestLoadFileMissingReturnsError(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}
