package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/harrison/sourcelink/internal/association"
	"github.com/harrison/sourcelink/internal/models"
)

// ConsoleLogger writes "[HH:MM:SS] [LEVEL] message" lines to a writer.
// Colour is enabled when the writer is a terminal and NO_COLOR is unset.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
	progress    *ProgressBar
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive); anything
// else falls back to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal reports whether w is a TTY that should receive colour codes.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	if color.NoColor {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// SetColor forces colour output on or off.
func (cl *ConsoleLogger) SetColor(enabled bool) {
	cl.mutex.Lock()
	defer cl.mutex.Unlock()
	cl.colorOutput = enabled
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil {
		return
	}
	if !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var formatted string
	if cl.colorOutput {
		formatted = cl.formatWithColor(ts, level, message)
	} else {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)
	}

	cl.writer.Write([]byte(formatted))
}

// formatWithColor formats a log message with ANSI color codes.
func (cl *ConsoleLogger) formatWithColor(ts, level, message string) string {
	var coloredLevel string

	switch strings.ToUpper(level) {
	case "TRACE":
		coloredLevel = color.New(color.FgHiBlack).Sprint(level)
	case "DEBUG":
		coloredLevel = color.New(color.FgCyan).Sprint(level)
	case "INFO":
		coloredLevel = color.New(color.FgBlue).Sprint(level)
	case "WARN":
		coloredLevel = color.New(color.FgYellow).Sprint(level)
	case "ERROR":
		coloredLevel = color.New(color.FgRed).Sprint(level)
	default:
		coloredLevel = level
	}

	return fmt.Sprintf("[%s] [%s] %s\n", ts, coloredLevel, message)
}

// LogCollected logs the number of files gathered for label at INFO level,
// followed by one DEBUG line per file.
// Format: "[HH:MM:SS] [INFO] Collected 3 image files"
func (cl *ConsoleLogger) LogCollected(label string, files []*models.File) {
	cl.LogInfo(fmt.Sprintf("Collected %d %s files", len(files), label))
	for _, f := range files {
		cl.LogDebug(f.String())
	}
}

// LogAssociations logs a one-line summary of the table at INFO level and one
// line per cluster at DEBUG level.
// Format: "[HH:MM:SS] [INFO] Associated 4 keys (2 warnings)"
func (cl *ConsoleLogger) LogAssociations(table *association.Table) {
	if table == nil {
		return
	}
	msg := fmt.Sprintf("Associated %d keys", table.Len())
	if n := len(table.Warnings()); n > 0 {
		msg = fmt.Sprintf("%s (%d warnings)", msg, n)
	}
	cl.LogInfo(msg)

	for _, c := range table.All() {
		cl.LogDebug(clusterLine(c))
	}
}

// LogCopyProgress renders a progress bar for the current copy at INFO level.
// The bar is recreated whenever total changes.
func (cl *ConsoleLogger) LogCopyProgress(done, total int) {
	if total <= 0 {
		return
	}
	cl.mutex.Lock()
	if cl.progress == nil || cl.progress.total != total {
		cl.progress = NewProgressBar(total, 20, cl.colorOutput)
		cl.progress.SetPrefix("Copying ")
	}
	bar := cl.progress
	cl.mutex.Unlock()

	bar.Update(done)
	cl.LogInfo(bar.Render())
}

// LogCopySummary logs the outcome of a copy run.
// Format: "[HH:MM:SS] [INFO] Copied 10 files in 2s"
// When failed > 0 the line is logged at WARN and carries the failure count.
func (cl *ConsoleLogger) LogCopySummary(copied, failed int, elapsed time.Duration) {
	msg := fmt.Sprintf("Copied %d files in %s", copied, formatDuration(elapsed))
	if failed > 0 {
		cl.LogWarn(fmt.Sprintf("%s, %d failed", msg, failed))
		return
	}
	cl.LogInfo(msg)
}
