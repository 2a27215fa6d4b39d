// Package stock is the public image API provider ("api"). It queries the
// Unsplash, Pexels and Pixabay search APIs; a source without an API key is
// skipped, and with no keys at all it returns marketplace search links.
package stock

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/fmd-labs/fmd/internal/domain/candidate"
	"github.com/fmd-labs/fmd/internal/provider"
)

// ID is the registry name of the stock provider.
const ID = "api"

const (
	defaultTimeout  = 10 * time.Second
	maxTitleLen     = 120
	maxTags         = 8
	minPerSource    = 5
	maxResponseSize = 4 << 20
)

// Default API endpoints.
const (
	UnsplashURL = "https://api.unsplash.com/search/photos"
	PexelsURL   = "https://api.pexels.com/v1/search"
	PixabayURL  = "https://pixabay.com/api/"
)

// Config holds API keys and endpoints. Empty endpoints use the public APIs.
type Config struct {
	UnsplashKey string
	PexelsKey   string
	PixabayKey  string

	UnsplashURL string
	PexelsURL   string
	PixabayURL  string

	// RequestsPerSecond paces outbound calls across all three APIs. Zero disables pacing.
	RequestsPerSecond float64
	HTTPClient        *http.Client
	Logger            *zap.Logger
}

// Provider searches the stock image APIs.
type Provider struct {
	cfg     Config
	client  *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// New creates the stock provider.
func New(cfg Config) *Provider {
	if cfg.UnsplashURL == "" {
		cfg.UnsplashURL = UnsplashURL
	}
	if cfg.PexelsURL == "" {
		cfg.PexelsURL = PexelsURL
	}
	if cfg.PixabayURL == "" {
		cfg.PixabayURL = PixabayURL
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return &Provider{cfg: cfg, client: client, limiter: limiter, logger: logger}
}

// ID implements provider.Provider.
func (p *Provider) ID() string { return ID }

type fetcher struct {
	name string
	key  string
	fn   func(ctx context.Context, query string, dominant *string, limit int) ([]candidate.Item, error)
}

// Search queries every configured API in turn. A failing source is logged
// and skipped.
func (p *Provider) Search(ctx context.Context, q provider.Query) ([]candidate.Item, error) {
	en := provider.EnglishKeywords(q.Keywords)
	query := provider.QueryString(en)
	if q.Category != "" {
		query = q.Category + " " + query
	}
	limit := q.EffectiveLimit()

	if p.cfg.UnsplashKey == "" && p.cfg.PexelsKey == "" && p.cfg.PixabayKey == "" {
		return fallbackResults(en, q.Category, query, limit), nil
	}

	perSource := max(limit/3, minPerSource)
	fetchers := []fetcher{
		{name: "unsplash", key: p.cfg.UnsplashKey, fn: p.searchUnsplash},
		{name: "pexels", key: p.cfg.PexelsKey, fn: p.searchPexels},
		{name: "pixabay", key: p.cfg.PixabayKey, fn: p.searchPixabay},
	}

	var results []candidate.Item
	for _, f := range fetchers {
		if f.key == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		items, err := f.fn(ctx, query, q.DominantColor, perSource)
		if err != nil {
			p.logger.Warn("Stock source failed", zap.String("source", f.name), zap.Error(err))
			continue
		}
		p.logger.Debug("Stock source results",
			zap.String("source", f.name), zap.Int("count", len(items)), zap.String("query", query))
		results = append(results, items...)
	}

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

type unsplashResponse struct {
	Results []struct {
		Description    string `json:"description"`
		AltDescription string `json:"alt_description"`
		Color          string `json:"color"`
		URLs           struct {
			Small string `json:"small"`
		} `json:"urls"`
		Links struct {
			HTML string `json:"html"`
		} `json:"links"`
		Tags []struct {
			Title string `json:"title"`
		} `json:"tags"`
	} `json:"results"`
}

func (p *Provider) searchUnsplash(ctx context.Context, query string, dominant *string, limit int) ([]candidate.Item, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(limit))
	params.Set("orientation", "squarish")
	if dominant != nil {
		params.Set("color", unsplashColor(*dominant))
	}

	var resp unsplashResponse
	headers := map[string]string{"Authorization": "Client-ID " + p.cfg.UnsplashKey}
	if err := p.getJSON(ctx, p.cfg.UnsplashURL, params, headers, &resp); err != nil {
		return nil, fmt.Errorf("unsplash: %w", err)
	}

	items := make([]candidate.Item, 0, len(resp.Results))
	for _, photo := range resp.Results {
		title := firstNonEmpty(photo.Description, photo.AltDescription, "Unsplash Photo")
		tags := make([]string, 0, maxTags)
		for _, t := range photo.Tags {
			if len(tags) == maxTags {
				break
			}
			if t.Title != "" {
				tags = append(tags, t.Title)
			}
		}
		items = append(items, candidate.Item{
			Title:      truncate(title, maxTitleLen),
			ImageURL:   optional(photo.URLs.Small),
			ProductURL: optional(photo.Links.HTML),
			Price:      candidate.Ptr(0.0),
			ColorHex:   optional(photo.Color),
			Tags:       tags,
		})
	}
	return items, nil
}

type pexelsResponse struct {
	Photos []struct {
		Alt      string `json:"alt"`
		URL      string `json:"url"`
		AvgColor string `json:"avg_color"`
		Src      struct {
			Medium string `json:"medium"`
		} `json:"src"`
	} `json:"photos"`
}

func (p *Provider) searchPexels(ctx context.Context, query string, dominant *string, limit int) ([]candidate.Item, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(limit))
	if dominant != nil {
		params.Set("color", strings.TrimPrefix(*dominant, "#"))
	}

	var resp pexelsResponse
	headers := map[string]string{"Authorization": p.cfg.PexelsKey}
	if err := p.getJSON(ctx, p.cfg.PexelsURL, params, headers, &resp); err != nil {
		return nil, fmt.Errorf("pexels: %w", err)
	}

	queryTags := strings.Fields(strings.ToLower(query))
	if len(queryTags) > maxTags {
		queryTags = queryTags[:maxTags]
	}
	items := make([]candidate.Item, 0, len(resp.Photos))
	for _, photo := range resp.Photos {
		items = append(items, candidate.Item{
			Title:      truncate(firstNonEmpty(photo.Alt, "Pexels Photo"), maxTitleLen),
			ImageURL:   optional(photo.Src.Medium),
			ProductURL: optional(photo.URL),
			Price:      candidate.Ptr(0.0),
			ColorHex:   optional(photo.AvgColor),
			Tags:       append([]string(nil), queryTags...),
		})
	}
	return items, nil
}

type pixabayResponse struct {
	Hits []struct {
		Tags         string `json:"tags"`
		WebformatURL string `json:"webformatURL"`
		PageURL      string `json:"pageURL"`
	} `json:"hits"`
}

func (p *Provider) searchPixabay(ctx context.Context, query string, dominant *string, limit int) ([]candidate.Item, error) {
	params := url.Values{}
	params.Set("key", p.cfg.PixabayKey)
	params.Set("q", query)
	params.Set("per_page", strconv.Itoa(limit))
	params.Set("image_type", "vector")
	params.Set("safesearch", "true")
	if dominant != nil {
		params.Set("colors", pixabayColor(*dominant))
	}

	var resp pixabayResponse
	if err := p.getJSON(ctx, p.cfg.PixabayURL, params, nil, &resp); err != nil {
		return nil, fmt.Errorf("pixabay: %w", err)
	}

	items := make([]candidate.Item, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		var tags []string
		if hit.Tags != "" {
			for _, t := range strings.Split(hit.Tags, ",") {
				if len(tags) == maxTags {
					break
				}
				tags = append(tags, strings.TrimSpace(t))
			}
		}
		items = append(items, candidate.Item{
			Title:      truncate(firstNonEmpty(hit.Tags, "Pixabay Image"), maxTitleLen),
			ImageURL:   optional(hit.WebformatURL),
			ProductURL: optional(hit.PageURL),
			Price:      candidate.Ptr(0.0),
			Tags:       tags,
		})
	}
	return items, nil
}

func (p *Provider) getJSON(
	ctx context.Context, endpoint string, params url.Values, headers map[string]string, out any,
) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// fallbackSource is a public search page linked when no API key is set.
type fallbackSource struct {
	name   string
	format string
}

var fallbackSources = []fallbackSource{
	{name: "Unsplash", format: "https://unsplash.com/s/photos/{q}"},
	{name: "Pexels", format: "https://www.pexels.com/search/{q}/"},
	{name: "Pixabay", format: "https://pixabay.com/images/search/{q}/"},
}

// fallbackResults links the query to stock sites and the first five
// marketplaces so searches still return something without API keys.
func fallbackResults(keywords []string, category, query string, limit int) []candidate.Item {
	sources := make([]provider.Marketplace, 0, len(fallbackSources)+5)
	for _, s := range fallbackSources {
		sources = append(sources, provider.Marketplace{Name: s.name, Format: s.format})
	}
	sources = append(sources, provider.Marketplaces[:5]...)

	catLabel := provider.Capitalize(category)
	if catLabel == "" {
		catLabel = "Design"
	}
	var titleWords []string
	for _, w := range keywords {
		if strings.EqualFold(w, catLabel) {
			continue
		}
		titleWords = append(titleWords, provider.Capitalize(w))
	}
	titleKw := "Design"
	if len(titleWords) > 0 {
		if len(titleWords) > 3 {
			titleWords = titleWords[:3]
		}
		titleKw = strings.Join(titleWords, " ")
	}

	tagHead := keywords
	if len(tagHead) > 6 {
		tagHead = tagHead[:6]
	}
	baseSeed := "design"
	if len(keywords) > 0 {
		seedHead := keywords
		if len(seedHead) > 3 {
			seedHead = seedHead[:3]
		}
		baseSeed = strings.Join(seedHead, "-")
	}

	if limit < len(sources) {
		sources = sources[:limit]
	}
	items := make([]candidate.Item, 0, len(sources))
	for _, src := range sources {
		tags := make([]string, 0, len(tagHead)+1)
		for _, k := range tagHead {
			tags = append(tags, strings.ToLower(k))
		}
		tags = append(tags, strings.ToLower(src.Name))

		items = append(items, candidate.Item{
			Title:      fmt.Sprintf("%s %s — %s", titleKw, catLabel, src.Name),
			ImageURL:   candidate.Ptr(provider.PlaceholderImage(baseSeed + "-" + src.Slug())),
			ProductURL: candidate.Ptr(src.SearchURL(query)),
			Price:      candidate.Ptr(0.0),
			Tags:       tags,
		})
	}
	return items
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
