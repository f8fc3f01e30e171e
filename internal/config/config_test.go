package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	raw := []byte("server:\n  host: 127.0.0.1\nboard:\n  size: 16\n")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Fatalf("host = %q", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Board.Size != 16 {
		t.Fatalf("board size = %d, want 16", cfg.Board.Size)
	}
	if cfg.Board.CellSize != 10 {
		t.Fatalf("expected default cell size 10, got %v", cfg.Board.CellSize)
	}
	if cfg.Board.SnapshotName != "main" {
		t.Fatalf("expected default snapshot name, got %q", cfg.Board.SnapshotName)
	}
	if cfg.Session.MaxClients != 100 {
		t.Fatalf("expected default max clients 100, got %d", cfg.Session.MaxClients)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
