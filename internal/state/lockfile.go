package state

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// staleLockAge is the window after which a lock is considered abandoned.
	// A crashed writer never refreshes its lock file's mtime, so anything
	// older than this is force-broken before the acquire loop continues.
	staleLockAge = 10 * time.Second

	// retryDelay paces the acquire loop while another process holds the lock.
	retryDelay = 100 * time.Millisecond
)

// lockFile is a cross-process advisory lock created exclusively next to the
// state file. Presence and mtime are the whole contract surface.
type lockFile struct {
	path string
}

// acquireLock blocks until the lock at path is held or ctx is cancelled.
// A lock older than staleLockAge (by mtime) is removed before retrying,
// which bounds the wait behind a crashed holder.
func acquireLock(ctx context.Context, path string) (*lockFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}

	for {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			// PID is informational only; staleness is judged by mtime.
			_, _ = fmt.Fprintf(f, "%d", os.Getpid())
			_ = f.Close()
			return &lockFile{path: path}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("creating lock file: %w", err)
		}

		if removeStaleLock(path) {
			continue
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}
}

// removeStaleLock removes the lock at path when it is older than
// staleLockAge. Returns true when the caller should retry immediately.
func removeStaleLock(path string) bool {
	info, err := os.Stat(path)
	if err != nil || time.Since(info.ModTime()) <= staleLockAge {
		return false
	}
	_ = os.Remove(path)
	return true
}

// release removes the lock file. Releasing an already-removed lock is not
// an error.
func (l *lockFile) release() error {
	err := os.Remove(l.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing lock file: %w", err)
	}
	return nil
}
