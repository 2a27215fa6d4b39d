package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/fmd-labs/fmd/internal/domain"
	"github.com/fmd-labs/fmd/internal/usecase/imagegen"
)

// Method is the image method recorded for OpenAI generations.
const Method = "openai"

// ImageGenerator creates reference images with the OpenAI-compatible images API.
type ImageGenerator struct {
	client *openai.Client
	model  string
	size   string
	user   string
	logger *zap.Logger
}

// Config holds the image provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Size    string
	User    string
	Logger  *zap.Logger
}

// NewImageGenerator creates an OpenAI-compatible image generator.
func NewImageGenerator(cfg *Config) *ImageGenerator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = openai.CreateImageModelDallE2
	}
	size := cfg.Size
	if size == "" {
		size = openai.CreateImageSize512x512
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ImageGenerator{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
		size:   size,
		user:   cfg.User,
		logger: logger,
	}
}

// Name implements imagegen.Generator.
func (g *ImageGenerator) Name() string { return Method }

// Generate implements imagegen.Generator. A base64 answer is returned as a data URL.
func (g *ImageGenerator) Generate(ctx context.Context, prompt string) (imagegen.Image, error) {
	req := openai.ImageRequest{
		Prompt:         prompt,
		Model:          g.model,
		N:              1,
		Size:           g.size,
		ResponseFormat: openai.CreateImageResponseFormatURL,
		User:           g.user,
	}

	start := time.Now()
	resp, err := g.client.CreateImage(ctx, req)
	duration := time.Since(start)

	if err != nil {
		return imagegen.Image{}, parseAPIError(err)
	}
	if len(resp.Data) == 0 {
		return imagegen.Image{}, fmt.Errorf("empty image response: %w", domain.ErrImageGeneration)
	}

	g.logger.Debug("OpenAI image generated",
		zap.String("model", g.model), zap.Duration("duration", duration))

	data := resp.Data[0]
	switch {
	case data.URL != "":
		return imagegen.Image{URL: data.URL, Method: Method}, nil
	case data.B64JSON != "":
		return imagegen.Image{URL: "data:image/png;base64," + data.B64JSON, Method: Method}, nil
	default:
		return imagegen.Image{}, fmt.Errorf("image response without url: %w", domain.ErrImageGeneration)
	}
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (g *ImageGenerator) HealthCheck(ctx context.Context) error {
	if _, err := g.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrImageGeneration.
func parseAPIError(err error) error {
	wrap := domain.ErrImageGeneration

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail != "" {
			return fmt.Errorf("image API error %d: %s: %w",
				reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("image API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("image API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("image request failed: %w", wrap)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
