package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hyper-mcp.yaml")

	if err := os.WriteFile(path, []byte("server:\n  name: \"hyper-mcp\"\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Server.Version == "" || cfg.Server.LogLevel == "" {
		t.Fatalf("expected defaults for version/log level")
	}
	if cfg.Plugins.RSTime.FetchTimeoutSeconds <= 0 {
		t.Fatalf("expected default fetch timeout")
	}
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatalf("expected error for missing config")
	}
	if cfg.Server.Name != "hyper-mcp" {
		t.Fatalf("expected default config returned on error")
	}
	if !cfg.Plugins.RSTime.Enabled {
		t.Fatalf("expected rstime plugin enabled by default")
	}
}

func TestLoadConfigDisablesPlugin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hyper-mcp.yaml")

	raw := "plugins:\n  wrapper:\n    enabled: false\n"
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Plugins.Wrapper.Enabled {
		t.Fatalf("expected wrapper plugin disabled")
	}
}
