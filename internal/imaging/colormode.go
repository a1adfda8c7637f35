// Package imaging owns the pixel-level primitives of a dream run.
//
// Ownership boundary:
// - seeded noise synthesis
// - tile partitioning and reassembly
// - blur and brightness post-processing
// - PNG load/store
package imaging

import (
	"fmt"
	"strings"
)

// ColorMode selects how many independent channels a synthesized image carries.
type ColorMode string

const (
	Grayscale ColorMode = "grayscale"
	Color     ColorMode = "color"
)

// ParseColorMode maps a config or flag value onto a known ColorMode.
func ParseColorMode(raw string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(Grayscale), "gray", "grey":
		return Grayscale, nil
	case string(Color), "rgb":
		return Color, nil
	default:
		return "", fmt.Errorf("imaging: unknown color mode %q", raw)
	}
}

// Valid reports whether the mode is one of the supported enumeration values.
func (m ColorMode) Valid() bool {
	return m == Grayscale || m == Color
}
