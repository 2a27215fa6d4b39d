package stock

import "github.com/fmd-labs/fmd/internal/domain/color"

// Color filters accepted by each API, with reference RGB points.
var (
	unsplashPalette = []color.Named{
		{Name: "black", Refs: []color.RGB{{R: 0, G: 0, B: 0}}},
		{Name: "white", Refs: []color.RGB{{R: 255, G: 255, B: 255}}},
		{Name: "red", Refs: []color.RGB{{R: 255, G: 0, B: 0}, {R: 200, G: 0, B: 0}}},
		{Name: "orange", Refs: []color.RGB{{R: 255, G: 165, B: 0}, {R: 255, G: 140, B: 0}}},
		{Name: "yellow", Refs: []color.RGB{{R: 255, G: 255, B: 0}, {R: 255, G: 215, B: 0}}},
		{Name: "green", Refs: []color.RGB{{R: 0, G: 128, B: 0}, {R: 0, G: 255, B: 0}}},
		{Name: "teal", Refs: []color.RGB{{R: 0, G: 128, B: 128}}},
		{Name: "blue", Refs: []color.RGB{{R: 0, G: 0, B: 255}, {R: 0, G: 100, B: 200}}},
		{Name: "purple", Refs: []color.RGB{{R: 128, G: 0, B: 128}, {R: 148, G: 0, B: 211}}},
	}

	pixabayPalette = []color.Named{
		{Name: "red", Refs: []color.RGB{{R: 255, G: 0, B: 0}}},
		{Name: "orange", Refs: []color.RGB{{R: 255, G: 165, B: 0}}},
		{Name: "yellow", Refs: []color.RGB{{R: 255, G: 255, B: 0}}},
		{Name: "green", Refs: []color.RGB{{R: 0, G: 128, B: 0}}},
		{Name: "turquoise", Refs: []color.RGB{{R: 0, G: 128, B: 128}}},
		{Name: "blue", Refs: []color.RGB{{R: 0, G: 0, B: 255}}},
		{Name: "lilac", Refs: []color.RGB{{R: 200, G: 162, B: 200}}},
		{Name: "pink", Refs: []color.RGB{{R: 255, G: 192, B: 203}}},
		{Name: "white", Refs: []color.RGB{{R: 255, G: 255, B: 255}}},
		{Name: "gray", Refs: []color.RGB{{R: 128, G: 128, B: 128}}},
		{Name: "black", Refs: []color.RGB{{R: 0, G: 0, B: 0}}},
		{Name: "brown", Refs: []color.RGB{{R: 139, G: 69, B: 19}}},
	}
)

func unsplashColor(hex string) string { return color.Nearest(hex, unsplashPalette, "black_and_white") }

func pixabayColor(hex string) string { return color.Nearest(hex, pixabayPalette, "grayscale") }
