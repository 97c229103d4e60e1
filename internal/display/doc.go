// Package display renders user-facing command output: warnings about files
// that could not be associated and a plain text listing of association tables.
//
// Warnings use a fixed layout, in yellow when the writer is a colour terminal
// and NO_COLOR is unset:
//
//	warning := display.Warning{
//	    Title:      "Unpaired Files",
//	    Message:    "2 keys had no counterpart and were dropped",
//	    Files:      []string{"/data/case7.tif"},
//	    Suggestion: "Check the --b source or use --deriver split",
//	}
//	warning.Display(os.Stderr)
//
// All functions accept io.Writer so they can be tested against buffers.
package display
