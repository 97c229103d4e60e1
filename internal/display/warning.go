package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/harrison/sourcelink/internal/association"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)
}

// Display writes the warning to out, in yellow when out is a colour terminal
func (w Warning) Display(out io.Writer) {
	fmt.Fprint(out, w.render(colorEnabled(out)))
}

// render lays out the warning; useColor wraps the whole block in yellow.
func (w Warning) render(useColor bool) string {
	var b strings.Builder

	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		b.WriteString("    ")
		if len(w.Files) == 1 {
			b.WriteString("Affected file:\n")
		} else {
			b.WriteString("Affected files:\n")
		}

		for i, file := range w.Files {
			b.WriteString("      ")
			b.WriteString(fmt.Sprintf("%d. %s", i+1, file))
			b.WriteString("\n")
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	if !useColor {
		return b.String()
	}
	yellow := color.New(color.FgYellow)
	yellow.EnableColor()
	return yellow.Sprint(b.String())
}

// WarnUnpaired builds a single warning listing the files of every pruned
// cluster. It returns false when there is nothing to report.
func WarnUnpaired(warnings []association.UnpairedWarning) (Warning, bool) {
	if len(warnings) == 0 {
		return Warning{}, false
	}

	keys := make([]string, 0, len(warnings))
	var files []string
	for _, w := range warnings {
		keys = append(keys, w.Key)
		files = append(files, w.Paths...)
	}

	noun := "key"
	if len(warnings) > 1 {
		noun = "keys"
	}
	return Warning{
		Title:      "Unpaired Files",
		Message:    fmt.Sprintf("Dropped %d %s without a counterpart: %s", len(warnings), noun, strings.Join(keys, ", ")),
		Files:      files,
		Suggestion: "Check that both sources cover the same cases, or try a different --deriver",
	}, true
}
