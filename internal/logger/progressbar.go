package logger

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// ProgressBar renders copy progress as "[=====     ] 5/10 (50%)".
type ProgressBar struct {
	current     int
	total       int
	width       int
	enableColor bool
	prefix      string
	mu          sync.RWMutex
}

// NewProgressBar creates a new progress bar
func NewProgressBar(total, width int, enableColor bool) *ProgressBar {
	if width < 1 {
		width = 10
	}
	return &ProgressBar{
		total:       total,
		width:       width,
		enableColor: enableColor,
	}
}

// Update sets the current progress value
func (pb *ProgressBar) Update(current int) {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	pb.current = current
}

// Increment increments the current progress by 1
func (pb *ProgressBar) Increment() {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	pb.current++
}

// SetPrefix sets a custom prefix for the progress bar
func (pb *ProgressBar) SetPrefix(prefix string) {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	pb.prefix = prefix
}

// Percentage returns the progress percentage (0-100)
func (pb *ProgressBar) Percentage() int {
	pb.mu.RLock()
	defer pb.mu.RUnlock()
	return pb.percentage()
}

func (pb *ProgressBar) percentage() int {
	if pb.total <= 0 {
		return 0
	}
	perc := (pb.current * 100) / pb.total
	return max(0, min(perc, 100))
}

// Render generates the ASCII progress bar string
func (pb *ProgressBar) Render() string {
	pb.mu.RLock()
	defer pb.mu.RUnlock()

	perc := pb.percentage()
	filled := max(0, min((perc*pb.width)/100, pb.width))

	var b strings.Builder
	b.WriteString(pb.prefix)
	b.WriteString("[")
	b.WriteString(strings.Repeat("=", filled))
	b.WriteString(strings.Repeat(" ", pb.width-filled))
	b.WriteString("]")
	result := fmt.Sprintf("%s %d/%d (%d%%)", b.String(), pb.current, pb.total, perc)

	if !pb.enableColor {
		return result
	}
	if perc < 100 {
		return color.New(color.FgCyan).Sprint(result)
	}
	return color.New(color.FgGreen).Sprint(result)
}
