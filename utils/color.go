package utils

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// NormalizeColor parses a "#rrggbb" display color and returns it in
// canonical lower-case form
func NormalizeColor(hex string) (string, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "", fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return c.Hex(), nil
}

// ShadeColor blends a display color towards black by amount in [0, 1].
// Unparseable colors are returned unchanged.
func ShadeColor(hex string, amount float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	black := colorful.Color{R: 0, G: 0, B: 0}
	return c.BlendRgb(black, clamp01(amount)).Clamped().Hex()
}

// Luminance returns the relative brightness of a display color in [0, 1]
func Luminance(hex string) float64 {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0
	}
	l, _, _ := c.Lab()
	return clamp01(l)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
