package imagegen

import "context"

// Image is a generated reference image.
type Image struct {
	// URL is an http(s) URL or a data URL.
	URL    string
	Method string
}

// Generator produces one reference image for an already styled prompt.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (Image, error)
}
