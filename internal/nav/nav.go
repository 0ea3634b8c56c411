// Package nav implements the shell handoff. A child process cannot
// change its parent's working directory, so the tool writes the target
// path to a file keyed by the parent shell's pid; the sourced shell
// function reads it, cds, and unlinks it after every invocation.
package nav

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FilePath returns the nav file for the current parent process.
func FilePath() string {
	return FilePathFor(os.Getppid())
}

// FilePathFor returns the nav file for a specific shell pid.
func FilePathFor(pid int) string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("wt-nav-%d", pid))
}

// Write records target as the directory the shell should change into.
// The write is atomic so a concurrently reading shell never sees a
// partial path.
func Write(target string) error {
	path := FilePath()
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, []byte(target+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing nav file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing nav file %s: %w", path, err)
	}

	if os.Getenv("WT_SHELL_INTEGRATION") != "" {
		fmt.Fprintf(os.Stderr, "wt: navigating to %s\n", target)
	}
	return nil
}

// Read returns the recorded target path.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Clean removes the nav file. An absent file is success.
func Clean(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
