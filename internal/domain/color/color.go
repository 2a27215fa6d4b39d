// Package color parses #rrggbb strings and measures RGB distance.
package color

import (
	"fmt"
	"math"
	"strconv"
)

// MaxDistance is the Euclidean distance between black and white in RGB space.
var MaxDistance = math.Sqrt(255 * 255 * 3)

// RGB is a color decoded into 8-bit components.
type RGB struct {
	R, G, B int
}

// Parse decodes a "#rrggbb" string. Any other length or a missing '#' is
// an error.
func Parse(s string) (RGB, error) {
	if len(s) != 7 || s[0] != '#' {
		return RGB{}, fmt.Errorf("color %q: want #rrggbb", s)
	}
	var comp [3]int
	for i := range comp {
		v, err := strconv.ParseUint(s[1+2*i:3+2*i], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("color %q: %w", s, err)
		}
		comp[i] = int(v)
	}
	return RGB{R: comp[0], G: comp[1], B: comp[2]}, nil
}

// Hex formats the color as lowercase "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Distance returns the Euclidean distance between two colors.
func Distance(a, b RGB) float64 {
	return math.Sqrt(float64(squared(a, b)))
}

func squared(a, b RGB) int {
	dr, dg, db := a.R-b.R, a.G-b.G, a.B-b.B
	return dr*dr + dg*dg + db*db
}

// Named is a palette entry used for mapping a color to a vocabulary word.
type Named struct {
	Name string
	Refs []RGB
}

// Nearest returns the palette name whose closest reference is nearest to hex.
// fallback is returned when hex does not parse or the palette is empty.
func Nearest(hex string, palette []Named, fallback string) string {
	c, err := Parse(hex)
	if err != nil {
		return fallback
	}
	best, bestDist := fallback, math.MaxInt
	for _, p := range palette {
		for _, ref := range p.Refs {
			if d := squared(c, ref); d < bestDist {
				best, bestDist = p.Name, d
			}
		}
	}
	return best
}
