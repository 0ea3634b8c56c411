// Package lock serializes mutating operations on a container across
// processes with an advisory flock on the control directory's lock
// file. Acquisition is bounded; a holder that never releases surfaces
// as ErrTimeout rather than a hang.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"
)

// DefaultTimeout bounds how long Acquire waits for a contended lock.
const DefaultTimeout = 30 * time.Second

const pollInterval = 100 * time.Millisecond

// ErrTimeout is returned when the lock stays contended past the timeout.
var ErrTimeout = errors.New("timed out waiting for the container lock")

// Lock is a held container lock. Release must be called on every exit
// path; it is safe to call more than once.
type Lock struct {
	file *os.File
}

// Acquire takes the exclusive lock for controlDir, waiting up to
// DefaultTimeout for another process to release it.
func Acquire(controlDir string) (*Lock, error) {
	return AcquireTimeout(controlDir, DefaultTimeout)
}

// AcquireTimeout is Acquire with a caller-chosen bound.
func AcquireTimeout(controlDir string, timeout time.Duration) (*Lock, error) {
	path := filepath.Join(controlDir, "lock")

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening lock file %s: %w", path, err)
	}

	deadline := time.Now().Add(timeout)
	for {
		err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			return &Lock{file: f}, nil
		}
		if !errors.Is(err, unix.EWOULDBLOCK) && !errors.Is(err, unix.EINTR) {
			f.Close()
			return nil, fmt.Errorf("locking %s: %w", path, err)
		}
		if time.Now().After(deadline) {
			f.Close()
			return nil, ErrTimeout
		}
		time.Sleep(pollInterval)
	}
}

// Release drops the lock. Idempotent.
func (l *Lock) Release() {
	if l == nil || l.file == nil {
		return
	}
	unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
	l.file.Close()
	l.file = nil
}
