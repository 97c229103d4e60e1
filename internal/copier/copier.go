// Package copier transfers discovered files into a destination folder.
//
// Copies are idempotent: a destination that already exists is left alone.
// Transient failures are retried with a constant backoff, and concurrent
// copiers targeting the same folder serialize on a lock file inside it.
package copier

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/harrison/sourcelink/internal/filelock"
	"github.com/hashicorp/go-multierror"
)

// LockFileName is created inside every destination folder while copying.
const LockFileName = ".sourcelink.lock"

// Logger receives copy progress.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
}

// RetryPolicy configures how often a failed transfer is retried.
type RetryPolicy struct {
	MaxRetries int           // Retries after the first attempt (0 = no retry)
	Interval   time.Duration // Wait between attempts
}

// DefaultRetryPolicy retries three times, 500ms apart.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 3, Interval: 500 * time.Millisecond}
}

func (p RetryPolicy) newBackOff(ctx context.Context) backoff.BackOff {
	retries := p.MaxRetries
	if retries < 0 {
		retries = 0
	}
	b := backoff.WithMaxRetries(backoff.NewConstantBackOff(p.Interval), uint64(retries))
	return backoff.WithContext(b, ctx)
}

// Copier copies files and folders into destination folders.
type Copier struct {
	retry  RetryPolicy
	logger Logger
}

// New creates a Copier. logger may be nil.
func New(retry RetryPolicy, logger Logger) *Copier {
	return &Copier{retry: retry, logger: logger}
}

// Copy copies src (a file or a directory) into destFolder and returns the
// destination path. A missing source fails immediately without retries; an
// existing destination is returned as is.
func (c *Copier) Copy(ctx context.Context, src, destFolder string) (string, error) {
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &NonExistingSourceError{SourcePath: src, DestinationFolder: destFolder}
		}
		return "", fmt.Errorf("failed to access %s: %w", src, err)
	}

	destFolder, err := filepath.Abs(destFolder)
	if err != nil {
		return "", fmt.Errorf("failed to resolve destination %s: %w", destFolder, err)
	}
	if err := os.MkdirAll(destFolder, 0755); err != nil {
		return "", fmt.Errorf("failed to create destination %s: %w", destFolder, err)
	}
	dst := filepath.Join(destFolder, filepath.Base(src))

	attempt := 0
	op := func() error {
		attempt++
		return c.transferLocked(ctx, src, dst, destFolder)
	}
	notify := func(err error, wait time.Duration) {
		c.warn(fmt.Sprintf("copy attempt %d of %s failed: %v (retrying in %s)", attempt, src, err, wait))
	}
	if err := backoff.RetryNotify(op, c.retry.newBackOff(ctx), notify); err != nil {
		return "", fmt.Errorf("failed to copy %s to %s: %w", src, destFolder, err)
	}
	return dst, nil
}

func (c *Copier) transferLocked(ctx context.Context, src, dst, destFolder string) error {
	lock := filelock.NewFileLock(filepath.Join(destFolder, LockFileName))
	if err := lock.LockContext(ctx); err != nil {
		return err
	}
	defer lock.Unlock()
	c.debug(fmt.Sprintf("Holding lock %s", lock.Path()))

	if _, err := os.Lstat(dst); err == nil {
		c.debug(fmt.Sprintf("Skipping '%s': '%s' already exists", src, dst))
		return nil
	}

	if err := transfer(src, dst); err != nil {
		// Never leave a half copied directory behind for the next attempt.
		os.RemoveAll(dst)
		return err
	}
	c.info(fmt.Sprintf("Copied '%s' to '%s'", src, dst))
	return nil
}

func transfer(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return filelock.AtomicCopy(src, dst)
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			info, err := d.Info()
			if err != nil {
				return err
			}
			return os.MkdirAll(target, info.Mode().Perm()|0700)
		}
		return filelock.AtomicCopy(path, target)
	})
}

// CopyAll copies every path into destFolder, continuing past failures.
// The returned slice holds the destination of every successful copy; the
// error aggregates all failures.
func (c *Copier) CopyAll(ctx context.Context, paths []string, destFolder string) ([]string, error) {
	var (
		merr   *multierror.Error
		copied []string
	)
	for _, src := range paths {
		if err := ctx.Err(); err != nil {
			merr = multierror.Append(merr, err)
			break
		}
		dst, err := c.Copy(ctx, src, destFolder)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		copied = append(copied, dst)
	}
	return copied, merr.ErrorOrNil()
}

func (c *Copier) debug(msg string) {
	if c.logger != nil {
		c.logger.LogDebug(msg)
	}
}

func (c *Copier) info(msg string) {
	if c.logger != nil {
		c.logger.LogInfo(msg)
	}
}

func (c *Copier) warn(msg string) {
	if c.logger != nil {
		c.logger.LogWarn(msg)
	}
}
