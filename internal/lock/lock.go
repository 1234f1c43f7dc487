// Package lock prevents two watch sessions from polling the same
// root concurrently. Two pollers would double-dispatch every change
// and fight over the command table.
package lock

import (
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/contask/contask/internal/errors"
)

// LockFileName is the lock file created inside the watched root.
const LockFileName = ".contask.lock"

// SessionLock is a cross-process advisory lock on a watched root.
// Works on Unix, macOS, and Windows.
type SessionLock struct {
	path   string
	flock  *flock.Flock
	locked bool
}

// New creates a session lock for the given watched root.
func New(root string) *SessionLock {
	lockPath := filepath.Join(root, LockFileName)
	return &SessionLock{
		path:  lockPath,
		flock: flock.New(lockPath),
	}
}

// Acquire attempts to take the lock without blocking. Another live
// session holding it is a fatal error: the caller should exit rather
// than queue behind a running watcher.
func (l *SessionLock) Acquire() error {
	acquired, err := l.flock.TryLock()
	if err != nil {
		return errors.Wrap(errors.ErrCodeLockHeld, err).
			WithDetail("lock_file", l.path)
	}
	if !acquired {
		return errors.New(errors.ErrCodeLockHeld,
			"another contask session is already watching this directory", nil).
			WithDetail("lock_file", l.path).
			WithSuggestion("stop the other session or watch a different directory")
	}
	l.locked = true
	return nil
}

// Release releases the lock. Safe to call on an unlocked SessionLock.
func (l *SessionLock) Release() error {
	if !l.locked {
		return nil
	}
	l.locked = false
	if err := l.flock.Unlock(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err)
	}
	return nil
}

// Path returns the path to the lock file.
func (l *SessionLock) Path() string {
	return l.path
}

// IsLocked returns true if this process holds the lock.
func (l *SessionLock) IsLocked() bool {
	return l.locked
}
