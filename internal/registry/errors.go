package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownType is returned when a type id has not been registered.
	ErrUnknownType = errors.New("unknown file type")
	// ErrUnsupportedExtension is returned when a path's suffix is not registered for its type.
	ErrUnsupportedExtension = errors.New("unsupported extension")
)

// DuplicateExtensionError reports a suffix declared by more than one extension.
type DuplicateExtensionError struct {
	Suffix string
}

func (e *DuplicateExtensionError) Error() string {
	return fmt.Sprintf("duplicate extension %q", e.Suffix)
}

// UnknownTypeError reports a type id that is not in the registry.
type UnknownTypeError struct {
	TypeID string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown file type %q", e.TypeID)
}

// Unwrap allows errors.Is(err, ErrUnknownType).
func (e *UnknownTypeError) Unwrap() error {
	return ErrUnknownType
}

// UnsupportedExtensionError reports a file whose suffix the type does not accept.
type UnsupportedExtensionError struct {
	TypeID string
	Path   string
	Suffix string
}

func (e *UnsupportedExtensionError) Error() string {
	return fmt.Sprintf("file type %q does not support extension %q (%s)", e.TypeID, e.Suffix, e.Path)
}

// Unwrap allows errors.Is(err, ErrUnsupportedExtension).
func (e *UnsupportedExtensionError) Unwrap() error {
	return ErrUnsupportedExtension
}
