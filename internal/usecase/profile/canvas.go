package profile

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	stdcolor "image/color"
	"image/png"
	"strings"

	"github.com/fmd-labs/fmd/internal/domain/color"
)

// nearWhite is the per-channel level above which a pixel counts as paper.
const nearWhite = 240

// quantStep buckets each channel into 8 levels.
const quantStep = 32

// decodeCanvas decodes a PNG sketch given as a data URL or bare base64.
func decodeCanvas(data string) (image.Image, error) {
	if _, payload, ok := strings.Cut(data, ","); ok {
		data = payload
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(data, "="))
		if err != nil {
			return nil, fmt.Errorf("decode canvas base64: %w", err)
		}
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode canvas png: %w", err)
	}
	return img, nil
}

// dominantColor returns the most frequent quantized color of the sketch,
// ignoring near-white pixels. ok is false for a blank canvas.
// Ties go to the color seen first in row-major order.
func dominantColor(img image.Image) (color.RGB, bool) {
	counts := make(map[color.RGB]int)
	var order []color.RGB
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := stdcolor.NRGBAModel.Convert(img.At(x, y)).(stdcolor.NRGBA)
			if c.R > nearWhite && c.G > nearWhite && c.B > nearWhite {
				continue
			}
			q := color.RGB{
				R: int(c.R) / quantStep * quantStep,
				G: int(c.G) / quantStep * quantStep,
				B: int(c.B) / quantStep * quantStep,
			}
			if counts[q] == 0 {
				order = append(order, q)
			}
			counts[q]++
		}
	}

	var (
		best      color.RGB
		bestCount int
	)
	for _, q := range order {
		if counts[q] > bestCount {
			best, bestCount = q, counts[q]
		}
	}
	return best, bestCount > 0
}

// hueWord names the sketch color when it is clearly one hue.
func hueWord(c color.RGB) string {
	switch {
	case c.R > 150 && c.G < 100 && c.B < 100:
		return "red"
	case c.R < 100 && c.G < 100 && c.B > 150:
		return "blue"
	case c.R < 100 && c.G > 150 && c.B < 100:
		return "green"
	case c.R > 150 && c.G > 150 && c.B < 100:
		return "yellow"
	case c.R > 150 && c.G < 100 && c.B > 150:
		return "purple"
	case c.R < 50 && c.G < 50 && c.B < 50:
		return "dark"
	default:
		return ""
	}
}
