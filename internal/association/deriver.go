package association

import (
	"fmt"
	"strings"

	"github.com/harrison/sourcelink/internal/models"
)

// KeyDeriver computes the association key of a file.
// Implementations must be deterministic and depend only on the file path.
type KeyDeriver interface {
	Derive(f *models.File) string
}

// Deriver names accepted by NewDeriver.
const (
	DeriverStem     = "stem"
	DeriverSplit    = "split"
	DeriverConstant = "constant"
	DeriverAnyOne   = "anyone" // alias of DeriverConstant
)

// StemDeriver uses the filename without its extension as key.
type StemDeriver struct{}

// NewStemDeriver returns a StemDeriver.
func NewStemDeriver() StemDeriver {
	return StemDeriver{}
}

// Derive returns the stem of the file.
func (StemDeriver) Derive(f *models.File) string {
	return f.Stem()
}

// SplitDeriver truncates the stem at the first occurrence of each symbol in turn.
// With symbols ("-", "_") the stem "image_01-version" becomes "image_01" and then "image".
type SplitDeriver struct {
	symbols []string
}

// NewSplitDeriver creates a SplitDeriver. At least one non-empty symbol is required.
func NewSplitDeriver(symbols ...string) (*SplitDeriver, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("split deriver requires at least one symbol")
	}
	for i, s := range symbols {
		if s == "" {
			return nil, fmt.Errorf("split symbol %d is empty", i)
		}
	}
	return &SplitDeriver{symbols: append([]string(nil), symbols...)}, nil
}

// Derive returns the truncated stem of the file.
func (d *SplitDeriver) Derive(f *models.File) string {
	key := f.Stem()
	for _, symbol := range d.symbols {
		key, _, _ = strings.Cut(key, symbol)
	}
	return key
}

// constantKey is the key every file collapses into under ConstantDeriver.
const constantKey = "ConstantDeriver"

// ConstantDeriver ignores the file and always returns the same key, so that
// any file of one collection is associated with any file of the other.
type ConstantDeriver struct{}

// NewConstantDeriver returns a ConstantDeriver.
func NewConstantDeriver() ConstantDeriver {
	return ConstantDeriver{}
}

// Derive returns the constant key.
func (ConstantDeriver) Derive(*models.File) string {
	return constantKey
}

// NewDeriver resolves a deriver by name. symbols is only used by the split deriver.
func NewDeriver(name string, symbols []string) (KeyDeriver, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", DeriverStem:
		return NewStemDeriver(), nil
	case DeriverSplit:
		d, err := NewSplitDeriver(symbols...)
		if err != nil {
			return nil, err
		}
		return d, nil
	case DeriverConstant, DeriverAnyOne:
		return NewConstantDeriver(), nil
	default:
		return nil, fmt.Errorf("unknown deriver %q, must be one of: %s, %s, %s",
			name, DeriverStem, DeriverSplit, DeriverConstant)
	}
}
