package imagegen

import (
	"context"
	"crypto/md5" //nolint:gosec // color seed, not a security hash
	"encoding/hex"
	"net/url"
)

// Generator method names.
const (
	MethodPollinations = "pollinations_ai"
	MethodPlaceholder  = "placeholder"
)

// PollinationsURL is the keyless Pollinations image endpoint.
const PollinationsURL = "https://image.pollinations.ai/prompt/"

// Pollinations builds a deterministic Pollinations image URL. The image is
// rendered by the service when the URL is first fetched.
type Pollinations struct {
	baseURL string
}

// NewPollinations creates the Pollinations step. Empty baseURL uses PollinationsURL.
func NewPollinations(baseURL string) *Pollinations {
	if baseURL == "" {
		baseURL = PollinationsURL
	}
	return &Pollinations{baseURL: baseURL}
}

// Name implements Generator.
func (p *Pollinations) Name() string { return MethodPollinations }

// Generate implements Generator.
func (p *Pollinations) Generate(_ context.Context, prompt string) (Image, error) {
	u := p.baseURL + url.PathEscape(prompt) + "?model=flux&width=512&height=512&seed=42&nologo=true"
	return Image{URL: u, Method: MethodPollinations}, nil
}

// Placeholder returns a static placeholder colored by the prompt. It always succeeds.
type Placeholder struct{}

// Name implements Generator.
func (Placeholder) Name() string { return MethodPlaceholder }

// Generate implements Generator.
func (Placeholder) Generate(_ context.Context, prompt string) (Image, error) {
	sum := md5.Sum([]byte(prompt)) //nolint:gosec // see import
	color := hex.EncodeToString(sum[:])[:6]
	return Image{
		URL:    "https://placehold.co/512x512/" + color + "/ffffff?text=Design+Preview",
		Method: MethodPlaceholder,
	}, nil
}
