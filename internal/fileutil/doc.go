// Package fileutil walks directories and returns the files that match a set
// of suffixes and an optional stem pattern.
//
// ScanDirectory is the folder discovery primitive behind collect.FromFolder:
//
//	result, err := fileutil.ScanDirectory("/data/slides", fileutil.ScanOptions{
//	    Extensions: []string{".tif", ".mrxs"},
//	    Recursive:  true,
//	})
//	if err != nil {
//	    return err
//	}
//	if err := result.Err(); err != nil {
//	    log.LogWarn(err.Error())
//	}
//
// Output paths are absolute and sorted. Hidden directories are skipped.
// Problems below the root (e.g. an unreadable subdirectory) do not stop the
// walk; they are collected in ScanResult.Errors.
package fileutil
