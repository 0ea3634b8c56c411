// Package config loads the container configuration from
// .wt/config.toml. The file is read-only to the rest of the tool;
// init writes the initial copy.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the container configuration.
type Config struct {
	SlotCount        int          `toml:"slot_count"`
	ArchiveAfterDays int          `toml:"archive_after_days"`
	Shared           SharedConfig `toml:"shared"`
	Templates        []Template   `toml:"templates"`
}

// SharedConfig lists slot-relative directories that are symlinked to a
// single backing copy under the control directory.
type SharedConfig struct {
	Directories []string `toml:"directories"`
}

// Template renders a file from .wt/templates/<source> into each freshly
// provisioned slot at <target>.
type Template struct {
	Source string `toml:"source"`
	Target string `toml:"target"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		SlotCount:        3,
		ArchiveAfterDays: 30,
	}
}

// Load reads the config file at path, layered over the defaults. A
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.SlotCount < 1 {
		return nil, fmt.Errorf("config %s: slot_count must be at least 1", path)
	}
	return cfg, nil
}

// Init writes a commented default config file, refusing to overwrite.
func Init(path string, slotCount int) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigText(slotCount)), 0o644)
}

func defaultConfigText(slotCount int) string {
	return fmt.Sprintf(`# wt container configuration

# Number of worktree slots in this container.
slot_count = %d

# Days before an evicted branch's stash is eligible for archiving.
archive_after_days = 30

[shared]
# Slot-relative directories symlinked to one shared copy, e.g.
# directories = ["node_modules", ".cache"]
directories = []

# Files rendered from .wt/templates/ into each fresh slot.
# [[templates]]
# source = "env.tmpl"
# target = ".env"
`, slotCount)
}
