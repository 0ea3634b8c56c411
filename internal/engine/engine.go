// Package engine implements the slot state machine: reconciliation of
// recorded state with filesystem truth, LRU checkout with stash
// handoff, and the thin pin/unpin/resume operations on top.
package engine

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/haldane/wt/internal/config"
	"github.com/haldane/wt/internal/container"
	"github.com/haldane/wt/internal/git"
	"github.com/haldane/wt/internal/lock"
	"github.com/haldane/wt/internal/state"
)

var (
	// ErrAllSlotsPinned means no eviction candidate exists.
	ErrAllSlotsPinned = errors.New("all slots are pinned")

	// ErrUnknownBranch means the requested branch does not exist and
	// checkout is not permitted to create it.
	ErrUnknownBranch = errors.New("branch does not exist")

	// ErrNoSlotsInUse means resume found no occupied slot.
	ErrNoSlotsInUse = errors.New("no slots are in use")

	// ErrSlotNotFound means an explicit slot argument matched nothing.
	ErrSlotNotFound = errors.New("no such slot")

	// ErrNotInSlot means the current directory does not identify a slot.
	ErrNotInSlot = errors.New("not inside a slot directory")

	// ErrContainerCorrupt means .wt exists but an essential piece is
	// missing or unreadable.
	ErrContainerCorrupt = errors.New("container is corrupt")
)

// Engine binds a discovered container to its configuration and a git
// implementation.
type Engine struct {
	Paths  container.Paths
	Config *config.Config
	Git    git.Git

	// now is injectable for tests; defaults to UTC wall time.
	now func() time.Time
}

// New returns an engine for the given container.
func New(paths container.Paths, cfg *config.Config, g git.Git) *Engine {
	return &Engine{
		Paths:  paths,
		Config: cfg,
		Git:    g,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Open discovers the container enclosing startDir and returns an engine
// over it with the real git implementation.
func Open(startDir string) (*Engine, error) {
	paths, err := container.Discover(startDir)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(paths.RepoDir); err != nil {
		return nil, fmt.Errorf("%w: repository missing at %s", ErrContainerCorrupt, paths.RepoDir)
	}

	cfg, err := config.Load(paths.ConfigPath())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContainerCorrupt, err)
	}

	return New(paths, cfg, git.NewCLI()), nil
}

// locked runs fn with the container lock held and a freshly reconciled
// state. fn mutates st in place and reports whether the engine should
// persist it again after fn returns.
func (e *Engine) locked(fn func(st *state.State) (bool, error)) error {
	l, err := lock.Acquire(e.Paths.ControlDir)
	if err != nil {
		return err
	}
	defer l.Release()

	st, err := state.Read(e.Paths.ControlDir)
	if err != nil {
		return err
	}
	if err := e.reconcile(st); err != nil {
		return err
	}

	dirty, err := fn(st)
	if dirty {
		if writeErr := state.Write(e.Paths.ControlDir, st); writeErr != nil && err == nil {
			err = writeErr
		}
	}
	return err
}
