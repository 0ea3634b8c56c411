package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SlotCount != 3 {
		t.Errorf("SlotCount = %d, want 3", cfg.SlotCount)
	}
	if cfg.ArchiveAfterDays != 30 {
		t.Errorf("ArchiveAfterDays = %d, want 30", cfg.ArchiveAfterDays)
	}
}

func TestLoadFullConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
slot_count = 5
archive_after_days = 7

[shared]
directories = ["node_modules", ".cache"]

[[templates]]
source = "env.tmpl"
target = ".env"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SlotCount != 5 {
		t.Errorf("SlotCount = %d, want 5", cfg.SlotCount)
	}
	if cfg.ArchiveAfterDays != 7 {
		t.Errorf("ArchiveAfterDays = %d, want 7", cfg.ArchiveAfterDays)
	}
	if len(cfg.Shared.Directories) != 2 || cfg.Shared.Directories[0] != "node_modules" {
		t.Errorf("Shared.Directories = %v", cfg.Shared.Directories)
	}
	if len(cfg.Templates) != 1 || cfg.Templates[0].Target != ".env" {
		t.Errorf("Templates = %v", cfg.Templates)
	}
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("slot_count = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SlotCount != 2 {
		t.Errorf("SlotCount = %d, want 2", cfg.SlotCount)
	}
	if cfg.ArchiveAfterDays != 30 {
		t.Errorf("ArchiveAfterDays = %d, want default 30", cfg.ArchiveAfterDays)
	}
}

func TestLoadRejectsZeroSlots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("slot_count = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load accepted slot_count = 0")
	}
}

func TestInitRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := Init(path, 3); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := Init(path, 3); err == nil {
		t.Error("Init overwrote an existing config")
	}

	// The generated file must load back with the requested slot count.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load generated config: %v", err)
	}
	if cfg.SlotCount != 3 {
		t.Errorf("SlotCount = %d", cfg.SlotCount)
	}
}
