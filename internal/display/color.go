package display

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// colorEnabled reports whether w is a terminal that should receive colour codes.
func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil || color.NoColor {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
