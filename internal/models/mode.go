package models

import (
	"errors"
	"fmt"
	"strings"
)

// Mode groups files into logically separate run contexts (e.g. training vs test).
// The set of modes is closed; files of different modes never share a cluster.
type Mode string

const (
	ModeDefault    Mode = "default"
	ModeTraining   Mode = "training"
	ModeValidation Mode = "validation"
	ModeTest       Mode = "test"
	ModeInference  Mode = "inference"
)

// ErrUnknownMode is returned when a mode name does not belong to the closed set.
var ErrUnknownMode = errors.New("unknown mode")

// UnknownModeError reports a mode name that could not be resolved.
type UnknownModeError struct {
	Name string
}

func (e *UnknownModeError) Error() string {
	names := make([]string, 0, len(allModes))
	for _, m := range allModes {
		names = append(names, string(m))
	}
	return fmt.Sprintf("unknown mode %q, must be one of: %s", e.Name, strings.Join(names, ", "))
}

// Unwrap allows errors.Is(err, ErrUnknownMode).
func (e *UnknownModeError) Unwrap() error {
	return ErrUnknownMode
}

var allModes = []Mode{ModeDefault, ModeTraining, ModeValidation, ModeTest, ModeInference}

// Modes returns every known mode in declaration order.
func Modes() []Mode {
	out := make([]Mode, len(allModes))
	copy(out, allModes)
	return out
}

// ParseMode resolves a mode name (case-insensitive, surrounding whitespace ignored).
func ParseMode(name string) (Mode, error) {
	normalized := Mode(strings.ToLower(strings.TrimSpace(name)))
	for _, m := range allModes {
		if m == normalized {
			return m, nil
		}
	}
	return "", &UnknownModeError{Name: name}
}

// ParseModes resolves a list of mode names, failing on the first unknown one.
func ParseModes(names []string) ([]Mode, error) {
	modes := make([]Mode, 0, len(names))
	for _, name := range names {
		m, err := ParseMode(name)
		if err != nil {
			return nil, err
		}
		modes = append(modes, m)
	}
	return modes, nil
}

// String returns the mode name.
func (m Mode) String() string {
	return string(m)
}
