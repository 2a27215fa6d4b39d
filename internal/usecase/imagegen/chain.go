// Package imagegen creates the AI reference image shown for a processed
// design. Generators are tried in a fixed order until one returns an image.
package imagegen

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fmd-labs/fmd/internal/domain"
	"github.com/fmd-labs/fmd/internal/metrics"
)

// DefaultStyle applies to designs without a known category.
const DefaultStyle = "design-asset"

var styleSuffixes = map[string]string{
	"design-asset": ", professional design asset, clean background, high quality, vector style",
	"logo":         ", professional logo design, minimal, clean, vector, white background",
	"ui":           ", modern UI design, clean interface, professional, Figma style",
	"icon":         ", flat design icon, minimal, clean lines, solid colors",
	"illustration": ", digital illustration, professional art, vibrant colors",
}

// EnhancePrompt appends the style suffix; unknown styles use the design-asset suffix.
func EnhancePrompt(prompt, style string) string {
	suffix, ok := styleSuffixes[style]
	if !ok {
		suffix = styleSuffixes[DefaultStyle]
	}
	return prompt + suffix
}

// Chain tries generators in order, falling through on error or empty result.
type Chain struct {
	generators []Generator
	logger     *zap.Logger
}

// NewChain creates a generator chain.
func NewChain(logger *zap.Logger, generators ...Generator) *Chain {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chain{generators: generators, logger: logger}
}

// Generate styles the prompt and returns the first image produced.
func (c *Chain) Generate(ctx context.Context, prompt, style string) (Image, error) {
	enhanced := EnhancePrompt(prompt, style)

	for _, g := range c.generators {
		if err := ctx.Err(); err != nil {
			return Image{}, fmt.Errorf("generate image: %w", err)
		}

		img, err := g.Generate(ctx, enhanced)
		if err != nil {
			metrics.ImageGenerationsTotal.WithLabelValues(g.Name(), "error").Inc()
			c.logger.Warn("Image generator failed, falling through",
				zap.String("generator", g.Name()), zap.Error(err))
			continue
		}
		if img.URL == "" {
			metrics.ImageGenerationsTotal.WithLabelValues(g.Name(), "empty").Inc()
			c.logger.Warn("Image generator returned no image", zap.String("generator", g.Name()))
			continue
		}
		if img.Method == "" {
			img.Method = g.Name()
		}
		metrics.ImageGenerationsTotal.WithLabelValues(g.Name(), "success").Inc()
		return img, nil
	}

	return Image{}, domain.ErrImageGeneration
}
