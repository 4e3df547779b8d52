// Package lock keeps two update runs from pushing at the same time.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockFileName = "aurupd.lock"

var (
	// ErrLocked is returned when another aurupd run holds the lock
	ErrLocked = errors.New("another aurupd update run is in progress")
)

// Lock is an acquired run lock
type Lock struct {
	fl *flock.Flock
}

// StateDir returns the directory holding the lock file
func StateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	xdgState := os.Getenv("XDG_STATE_HOME")
	if xdgState == "" {
		xdgState = filepath.Join(home, ".local", "state")
	}

	return filepath.Join(xdgState, "aurupd"), nil
}

// Acquire takes the exclusive lock in dir without blocking.
// Returns ErrLocked if another process holds it.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	fl := flock.New(filepath.Join(dir, lockFileName))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}
	return &Lock{fl: fl}, nil
}

// Path returns the lock file path
func (l *Lock) Path() string {
	return l.fl.Path()
}

// Release unlocks the lock file
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	return l.fl.Unlock()
}
