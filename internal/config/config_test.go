package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DefaultColumnWidth != 16 || cfg.Overscan != 3 || cfg.HistoryLimit != 100 {
		t.Fatalf("got %+v", cfg)
	}
	if cfg.CacheTTL != 2*time.Second {
		t.Fatalf("got ttl %v, want 2s", cfg.CacheTTL)
	}
	if len(cfg.Keys.Fill) != 2 || cfg.Keys.Fill[0] != "ctrl+d" {
		t.Fatalf("got fill keys %v", cfg.Keys.Fill)
	}
}

func TestLoadFileOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Chdir(t.TempDir())
	if err := os.MkdirAll(filepath.Join(dir, "zgrid"), 0o755); err != nil {
		t.Fatal(err)
	}
	body := "theme: light\nmin_column_width: 1\ndefault_column_width: 1\nrow_height: 40\nkeys:\n  copy: [\"y\"]\n"
	if err := os.WriteFile(filepath.Join(dir, "zgrid", "config.yaml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Theme != "light" {
		t.Fatalf("got theme %q, want light", cfg.Theme)
	}
	if cfg.MinColumnWidth != 2 || cfg.DefaultColumnWidth != 2 {
		t.Fatalf("widths not clamped: min=%d default=%d", cfg.MinColumnWidth, cfg.DefaultColumnWidth)
	}
	if cfg.RowHeight != MaxRowHeight {
		t.Fatalf("got row height %d, want %d", cfg.RowHeight, MaxRowHeight)
	}
	if len(cfg.Keys.Copy) != 1 || cfg.Keys.Copy[0] != "y" {
		t.Fatalf("got copy keys %v", cfg.Keys.Copy)
	}
	if len(cfg.Keys.Save) == 0 {
		t.Fatal("unrelated binding lost its default")
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("ZGRID_AUTOSAVE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Autosave {
		t.Fatal("ZGRID_AUTOSAVE ignored")
	}
}
