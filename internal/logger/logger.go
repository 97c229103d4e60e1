// Package logger provides logging implementations for sourcelink runs.
//
// ConsoleLogger writes timestamped, optionally coloured lines for humans;
// FileLogger keeps a per-run log file. Both filter by level and are safe for
// concurrent use. MultiLogger fans out to several loggers.
package logger

import (
	"fmt"
	"strings"
	"time"

	"github.com/harrison/sourcelink/internal/association"
	"github.com/harrison/sourcelink/internal/models"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// Logger is implemented by every logger in this package.
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogCollected(label string, files []*models.File)
	LogAssociations(table *association.Table)
	LogCopyProgress(done, total int)
	LogCopySummary(copied, failed int, elapsed time.Duration)
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	}
	return "info"
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatDuration converts a time.Duration to a human-readable string.
// Examples: "250ms", "5s", "1m30s", "2h15m"
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Hour:
		hours := d / time.Hour
		minutes := (d % time.Hour) / time.Minute
		if minutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh%dm", hours, minutes)
	case d >= time.Minute:
		minutes := d / time.Minute
		seconds := (d % time.Minute) / time.Second
		if seconds == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	case d >= time.Second:
		return fmt.Sprintf("%ds", int64(d.Seconds()))
	default:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
}

// clusterLine renders one cluster as "key [mode] image: 1, annotation: 2".
func clusterLine(c *association.Cluster) string {
	parts := make([]string, 0, len(c.TypeIDs()))
	for _, typeID := range c.TypeIDs() {
		parts = append(parts, fmt.Sprintf("%s: %d", typeID, len(c.Files(typeID))))
	}
	return fmt.Sprintf("%s [%s] %s", c.Key(), c.Mode(), strings.Join(parts, ", "))
}

// NoOpLogger is a Logger implementation that discards all log messages.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// LogTrace does nothing
func (n *NoOpLogger) LogTrace(message string) {}

// LogDebug does nothing
func (n *NoOpLogger) LogDebug(message string) {}

// LogInfo does nothing
func (n *NoOpLogger) LogInfo(message string) {}

// LogWarn does nothing
func (n *NoOpLogger) LogWarn(message string) {}

// LogError does nothing
func (n *NoOpLogger) LogError(message string) {}

// LogCollected does nothing
func (n *NoOpLogger) LogCollected(label string, files []*models.File) {}

// LogAssociations does nothing
func (n *NoOpLogger) LogAssociations(table *association.Table) {}

// LogCopyProgress does nothing
func (n *NoOpLogger) LogCopyProgress(done, total int) {}

// LogCopySummary does nothing
func (n *NoOpLogger) LogCopySummary(copied, failed int, elapsed time.Duration) {}

// MultiLogger forwards every call to all of its loggers.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger creates a MultiLogger. Nil loggers are skipped.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	ml := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			ml.loggers = append(ml.loggers, l)
		}
	}
	return ml
}

// LogTrace forwards to all loggers
func (ml *MultiLogger) LogTrace(message string) {
	for _, l := range ml.loggers {
		l.LogTrace(message)
	}
}

// LogDebug forwards to all loggers
func (ml *MultiLogger) LogDebug(message string) {
	for _, l := range ml.loggers {
		l.LogDebug(message)
	}
}

// LogInfo forwards to all loggers
func (ml *MultiLogger) LogInfo(message string) {
	for _, l := range ml.loggers {
		l.LogInfo(message)
	}
}

// LogWarn forwards to all loggers
func (ml *MultiLogger) LogWarn(message string) {
	for _, l := range ml.loggers {
		l.LogWarn(message)
	}
}

// LogError forwards to all loggers
func (ml *MultiLogger) LogError(message string) {
	for _, l := range ml.loggers {
		l.LogError(message)
	}
}

// LogCollected forwards to all loggers
func (ml *MultiLogger) LogCollected(label string, files []*models.File) {
	for _, l := range ml.loggers {
		l.LogCollected(label, files)
	}
}

// LogAssociations forwards to all loggers
func (ml *MultiLogger) LogAssociations(table *association.Table) {
	for _, l := range ml.loggers {
		l.LogAssociations(table)
	}
}

// LogCopyProgress forwards to all loggers
func (ml *MultiLogger) LogCopyProgress(done, total int) {
	for _, l := range ml.loggers {
		l.LogCopyProgress(done, total)
	}
}

// LogCopySummary forwards to all loggers
func (ml *MultiLogger) LogCopySummary(copied, failed int, elapsed time.Duration) {
	for _, l := range ml.loggers {
		l.LogCopySummary(copied, failed, elapsed)
	}
}
