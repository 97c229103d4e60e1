package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/harrison/sourcelink/internal/association"
	"github.com/harrison/sourcelink/internal/models"
)

// DefaultLogDir is the run log directory relative to the working directory.
var DefaultLogDir = filepath.Join(".sourcelink", "logs")

// FileLogger writes one log file per run, named run-<timestamp>-<id>.log,
// and keeps a latest.log symlink pointing at the most recent run.
type FileLogger struct {
	logDir   string
	runID    string
	runLog   *os.File
	runFile  string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates a FileLogger in DefaultLogDir at "info" level.
func NewFileLogger() (*FileLogger, error) {
	return NewFileLoggerWithDirAndLevel(DefaultLogDir, "info")
}

// NewFileLoggerWithDirAndLevel creates a FileLogger with a custom log
// directory and level. The directory is created if needed.
func NewFileLoggerWithDirAndLevel(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	runID := uuid.NewString()
	stamp := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s-%s.log", stamp, runID[:8]))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	fl := &FileLogger{
		logDir:   logDir,
		runID:    runID,
		runLog:   file,
		runFile:  runFile,
		logLevel: normalizeLogLevel(logLevel),
	}

	fl.writeRunLog("=== Sourcelink Run Log ===\n")
	fl.writeRunLog(fmt.Sprintf("Run ID: %s\n", runID))
	fl.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return fl, nil
}

// RunID returns the unique identifier of this run.
func (fl *FileLogger) RunID() string {
	return fl.runID
}

// Path returns the path of the run log file.
func (fl *FileLogger) Path() string {
	return fl.runFile
}

func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message))
}

// LogCollected records every collected file regardless of level, so the run
// log always holds the full input listing.
func (fl *FileLogger) LogCollected(label string, files []*models.File) {
	var b strings.Builder
	fmt.Fprintf(&b, "--- Collected %s (%d) ---\n", label, len(files))
	for _, f := range files {
		fmt.Fprintf(&b, "  %s\n", f)
	}
	fl.writeRunLog(b.String())
}

// LogAssociations records every cluster and every pruned key.
func (fl *FileLogger) LogAssociations(table *association.Table) {
	if table == nil {
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "--- Associations (%d) ---\n", table.Len())
	for _, c := range table.All() {
		fmt.Fprintf(&b, "  %s\n", clusterLine(c))
		for _, f := range c.Flatten() {
			fmt.Fprintf(&b, "    %s\n", f.Path)
		}
	}
	for _, w := range table.Warnings() {
		fmt.Fprintf(&b, "  unpaired: %s\n", w.Detail())
	}
	fl.writeRunLog(b.String())
}

// LogCopyProgress is a no-op; the run log only records the summary.
func (fl *FileLogger) LogCopyProgress(done, total int) {}

// LogCopySummary records the outcome of a copy run.
func (fl *FileLogger) LogCopySummary(copied, failed int, elapsed time.Duration) {
	level := "INFO"
	if failed > 0 {
		level = "WARN"
	}
	fl.logWithLevel(level, fmt.Sprintf("Copy finished: %d copied, %d failed in %s", copied, failed, formatDuration(elapsed)))
}

// Close flushes and closes the run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}

	return nil
}

func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
		fl.runLog.Sync()
	}
}
