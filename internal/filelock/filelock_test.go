package filelock

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestNewFileLock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "test.lock")

	lock := NewFileLock(lockPath)
	if lock == nil {
		t.Fatal("NewFileLock should not return nil")
	}
	if lock.Path() != lockPath {
		t.Errorf("Expected lock path %s, got %s", lockPath, lock.Path())
	}
}

func TestLockContextUnlock(t *testing.T) {
	lock := NewFileLock(filepath.Join(t.TempDir(), "test.lock"))

	if err := lock.LockContext(context.Background()); err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}
	if err := lock.Unlock(); err != nil {
		t.Fatalf("Failed to release lock: %v", err)
	}
}

func TestLockContextWaitsForHolder(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "test.lock")
	holder := NewFileLock(lockPath)
	if err := holder.LockContext(context.Background()); err != nil {
		t.Fatalf("LockContext: %v", err)
	}

	released := make(chan struct{})
	go func() {
		time.Sleep(100 * time.Millisecond)
		close(released)
		holder.Unlock()
	}()

	waiter := NewFileLock(lockPath)
	if err := waiter.LockContext(context.Background()); err != nil {
		t.Fatalf("waiter LockContext: %v", err)
	}
	defer waiter.Unlock()

	select {
	case <-released:
	default:
		t.Error("waiter acquired the lock while it was still held")
	}
}

func TestLockContextTimeout(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "test.lock")
	holder := NewFileLock(lockPath)
	if err := holder.LockContext(context.Background()); err != nil {
		t.Fatalf("LockContext: %v", err)
	}
	defer holder.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()

	if err := NewFileLock(lockPath).LockContext(ctx); err == nil {
		t.Error("expected LockContext to fail while lock is held")
	}
}

func TestConcurrentLockContext(t *testing.T) {
	tmpDir := t.TempDir()
	lockPath := filepath.Join(tmpDir, "test.lock")

	const goroutines = 5
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		holders int
		maxSeen int
	)
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			lock := NewFileLock(lockPath)
			if err := lock.LockContext(context.Background()); err != nil {
				t.Errorf("LockContext: %v", err)
				return
			}
			mu.Lock()
			holders++
			if holders > maxSeen {
				maxSeen = holders
			}
			mu.Unlock()

			time.Sleep(5 * time.Millisecond)

			mu.Lock()
			holders--
			mu.Unlock()
			lock.Unlock()
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Errorf("expected at most one holder at a time, saw %d", maxSeen)
	}
}

func TestAtomicCopy(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "src.txt")
	if err := os.WriteFile(src, []byte("slide data"), 0640); err != nil {
		t.Fatal(err)
	}
	modTime := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(src, modTime, modTime); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(tmpDir, "nested", "out", "dst.txt")
	if err := AtomicCopy(src, dst); err != nil {
		t.Fatalf("AtomicCopy: %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if string(data) != "slide data" {
		t.Errorf("content = %q", data)
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0640 {
		t.Errorf("permissions = %v, want 0640", info.Mode().Perm())
	}
	if !info.ModTime().Equal(modTime) {
		t.Errorf("modtime = %v, want %v", info.ModTime(), modTime)
	}

	entries, err := os.ReadDir(filepath.Dir(dst))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected no temp files left behind, found %d entries", len(entries))
	}
}

func TestAtomicCopyMissingSource(t *testing.T) {
	tmpDir := t.TempDir()

	err := AtomicCopy(filepath.Join(tmpDir, "missing.txt"), filepath.Join(tmpDir, "out.txt"))
	if err == nil {
		t.Fatal("expected error for missing source")
	}
	if _, statErr := os.Stat(filepath.Join(tmpDir, "out.txt")); !os.IsNotExist(statErr) {
		t.Error("destination must not be created on failure")
	}
}
