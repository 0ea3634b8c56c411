// Package state persists the container's slot table. The document is a
// small TOML file in the control directory, written atomically so
// concurrent readers never observe a partial update.
package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/BurntSushi/toml"
)

// Version is the current document version.
const Version = 1

const fileName = "state.toml"

// ErrCorrupt is returned when the state file exists but cannot be
// parsed. Wrapped with the parse detail.
var ErrCorrupt = errors.New("state file is corrupt")

// Slot is one worktree slot. An empty Branch marks the slot vacant.
type Slot struct {
	Branch     string    `toml:"branch,omitempty"`
	LastUsedAt time.Time `toml:"last_used_at"`
	Pinned     bool      `toml:"pinned"`
}

// State is the persisted document.
type State struct {
	Version int             `toml:"version"`
	Slots   map[string]Slot `toml:"slots"`
}

// Empty returns a state with no slots at the current version.
func Empty() *State {
	return &State{Version: Version, Slots: map[string]Slot{}}
}

// Path returns the state file location inside controlDir.
func Path(controlDir string) string {
	return filepath.Join(controlDir, fileName)
}

// Read loads the state document. A missing file yields an empty state;
// a file that exists but does not parse is reported as corrupt.
func Read(controlDir string) (*State, error) {
	path := Path(controlDir)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Empty(), nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var s State
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}
	if s.Slots == nil {
		s.Slots = map[string]Slot{}
	}
	if s.Version == 0 {
		s.Version = Version
	}
	return &s, nil
}

// Write atomically replaces the state document: serialize to a sibling
// temp file, fsync, then rename over the target.
func Write(controlDir string, s *State) error {
	path := Path(controlDir)

	tmp, err := os.CreateTemp(controlDir, fileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp state file: %w", err)
	}
	tmpName := tmp.Name()

	if err := toml.NewEncoder(tmp).Encode(s); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// SlotNames returns the slot names in lexical order.
func (s *State) SlotNames() []string {
	names := make([]string, 0, len(s.Slots))
	for name := range s.Slots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SlotFor returns the name of the slot holding branch, or "".
func (s *State) SlotFor(branch string) string {
	for _, name := range s.SlotNames() {
		if s.Slots[name].Branch == branch {
			return name
		}
	}
	return ""
}
