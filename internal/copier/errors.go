package copier

import (
	"errors"
	"fmt"
)

// ErrNonExistingSource is returned when the file to copy does not exist.
var ErrNonExistingSource = errors.New("source does not exist")

// NonExistingSourceError reports a copy whose source is missing.
type NonExistingSourceError struct {
	SourcePath        string
	DestinationFolder string
}

func (e *NonExistingSourceError) Error() string {
	return fmt.Sprintf("can not copy %s to %s because it does not exist", e.SourcePath, e.DestinationFolder)
}

// Unwrap allows errors.Is(err, ErrNonExistingSource).
func (e *NonExistingSourceError) Unwrap() error {
	return ErrNonExistingSource
}
