// Package filelock coordinates writers of the same destination across
// processes and writes files atomically.
package filelock

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// lockRetryDelay is how often LockContext retries a held lock.
const lockRetryDelay = 50 * time.Millisecond

// FileLock wraps a flock file lock for coordinating access to files.
type FileLock struct {
	flock *flock.Flock
	path  string
}

// NewFileLock creates a new file lock for the given path.
// The lock file will be created at the specified path.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// Path returns the lock file path.
func (fl *FileLock) Path() string {
	return fl.path
}

// LockContext acquires the lock, polling until it is free or ctx is done.
func (fl *FileLock) LockContext(ctx context.Context) error {
	locked, err := fl.flock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", fl.path, err)
	}
	if !locked {
		return fmt.Errorf("failed to acquire lock on %s", fl.path)
	}
	return nil
}

// Unlock releases the lock.
func (fl *FileLock) Unlock() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}

// AtomicCopy copies the regular file src to dst using a temp file in the
// destination directory followed by a rename, so readers never observe a
// partial file. Permissions and modification time of src are preserved.
func AtomicCopy(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}

	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	// Temp file on the same filesystem keeps the rename atomic.
	tempFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	defer func() {
		if tempFile != nil {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := io.Copy(tempFile, in); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Chtimes(tempPath, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("failed to set modification time: %w", err)
	}
	if err := os.Rename(tempPath, dst); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", dst, err)
	}

	tempFile = nil
	return nil
}
