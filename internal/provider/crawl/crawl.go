// Package crawl is the web search provider ("crawl"). It reads the
// DuckDuckGo HTML results page for the design query and turns each organic
// result into a candidate.
package crawl

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"github.com/fmd-labs/fmd/internal/domain/candidate"
	"github.com/fmd-labs/fmd/internal/provider"
)

// ID is the registry name of the crawl provider.
const ID = "crawl"

// SearchURL is the DuckDuckGo HTML endpoint.
const SearchURL = "https://html.duckduckgo.com/html/"

const (
	defaultTimeout = 10 * time.Second
	maxTitleLen    = 100
	maxSnippetLen  = 200
	maxTags        = 8
	querySuffix    = " design asset"
)

var userAgents = []string{
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15",
}

var tagWord = regexp.MustCompile(`[a-zA-Z]{3,}`)

// Config holds crawl settings.
type Config struct {
	// BaseURL overrides SearchURL.
	BaseURL string
	// RequestsPerSecond paces outbound requests. Zero disables pacing.
	RequestsPerSecond float64
	HTTPClient        *http.Client
	Logger            *zap.Logger
}

// Provider searches the web for design assets.
type Provider struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// New creates the crawl provider.
func New(cfg Config) *Provider {
	p := &Provider{
		baseURL: cfg.BaseURL,
		client:  cfg.HTTPClient,
		limiter: rate.NewLimiter(rate.Inf, 1),
		logger:  cfg.Logger,
	}
	if p.baseURL == "" {
		p.baseURL = SearchURL
	}
	if p.client == nil {
		p.client = &http.Client{Timeout: defaultTimeout}
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	if cfg.RequestsPerSecond > 0 {
		p.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return p
}

// ID implements provider.Provider.
func (p *Provider) ID() string { return ID }

// Search fetches one results page. A non-200 answer yields no candidates.
func (p *Provider) Search(ctx context.Context, q provider.Query) ([]candidate.Item, error) {
	kw := q.Keywords
	if len(kw) > 5 {
		kw = kw[:5]
	}
	query := strings.Join(kw, " ")
	if q.Category != "" {
		query = strings.TrimSpace(q.Category + " " + query)
	}

	doc, err := p.fetch(ctx, query+querySuffix)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return []candidate.Item{}, nil
	}

	items := parseResults(doc, query, q.EffectiveLimit())
	p.logger.Debug("Crawl results", zap.Int("count", len(items)), zap.String("query", query))
	return items, nil
}

func (p *Provider) fetch(ctx context.Context, query string) (*html.Node, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	target := p.baseURL + "?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgents[rand.IntN(len(userAgents))])
	req.Header.Set("Accept", "text/html")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("crawl request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		p.logger.Warn("Crawl returned non-200", zap.Int("status", resp.StatusCode))
		return nil, nil
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// parseResults extracts up to limit organic results.
func parseResults(doc *html.Node, query string, limit int) []candidate.Item {
	items := make([]candidate.Item, 0, limit)
	for _, res := range findAll(doc, func(n *html.Node) bool { return hasClass(n, "result") }) {
		if len(items) == limit {
			break
		}
		link := findFirst(res, func(n *html.Node) bool { return n.Data == "a" && hasClass(n, "result__a") })
		if link == nil {
			continue
		}
		title := truncate(textContent(link), maxTitleLen)
		if title == "" {
			continue
		}

		var snippet string
		if sn := findFirst(res, func(n *html.Node) bool { return hasClass(n, "result__snippet") }); sn != nil {
			snippet = truncate(textContent(sn), maxSnippetLen)
		}

		item := candidate.Item{
			Title: title,
			Tags:  extractTags(title+" "+snippet, query),
		}
		if href := resolveRedirect(attr(link, "href")); href != "" {
			item.ProductURL = &href
		}
		items = append(items, item)
	}
	return items
}

// resolveRedirect unwraps the "uddg" target of a DuckDuckGo redirect link.
func resolveRedirect(href string) string {
	if !strings.Contains(href, "uddg=") {
		return href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}

// extractTags returns the query words, those also found in the result text
// first. Words shorter than three letters are ignored.
func extractTags(text, query string) []string {
	queryWords := uniqueWords(query)
	inQuery := make(map[string]struct{}, len(queryWords))
	for _, w := range queryWords {
		inQuery[w] = struct{}{}
	}

	tags := make([]string, 0, maxTags)
	used := make(map[string]struct{}, len(queryWords))
	for _, w := range uniqueWords(text) {
		if _, ok := inQuery[w]; ok {
			tags = append(tags, w)
			used[w] = struct{}{}
		}
	}
	for _, w := range queryWords {
		if _, ok := used[w]; !ok {
			tags = append(tags, w)
		}
	}
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}
	return tags
}

func uniqueWords(s string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, w := range tagWord.FindAllString(strings.ToLower(s), -1) {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
