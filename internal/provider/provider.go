// Package provider defines product sources queried during a search and the
// registry they are resolved from.
package provider

import (
	"context"
	"net/url"
	"sort"
	"strings"
	"unicode"

	"github.com/fmd-labs/fmd/internal/domain/candidate"
)

// DefaultLimit applies when a query does not set one.
const DefaultLimit = 20

// Query is what a provider receives from the search usecase.
type Query struct {
	Keywords      []string
	DominantColor *string
	Category      string
	Limit         int
}

// EffectiveLimit returns Limit, or DefaultLimit when unset.
func (q Query) EffectiveLimit() int {
	if q.Limit <= 0 {
		return DefaultLimit
	}
	return q.Limit
}

// Provider returns raw candidates for a design profile.
type Provider interface {
	ID() string
	Search(ctx context.Context, q Query) ([]candidate.Item, error)
}

// Registry maps provider IDs to implementations. Built once at startup.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry creates a registry. Later providers replace earlier ones with
// the same ID.
func NewRegistry(providers ...Provider) *Registry {
	m := make(map[string]Provider, len(providers))
	for _, p := range providers {
		m[p.ID()] = p
	}
	return &Registry{providers: m}
}

// Get returns the provider registered under id.
func (r *Registry) Get(id string) (Provider, bool) {
	p, ok := r.providers[id]
	return p, ok
}

// IDs returns the registered provider IDs, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.providers))
	for id := range r.providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EnglishKeywords keeps keywords that start with an ASCII letter.
// Marketplace and stock searches only understand English terms.
func EnglishKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k == "" {
			continue
		}
		c := k[0]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			out = append(out, k)
		}
	}
	return out
}

// QueryString joins the first five keywords, or returns "design" when there
// are none.
func QueryString(keywords []string) string {
	if len(keywords) == 0 {
		return "design"
	}
	if len(keywords) > 5 {
		keywords = keywords[:5]
	}
	return strings.Join(keywords, " ")
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Marketplace is a design marketplace with a search URL template.
type Marketplace struct {
	Name   string
	Format string
}

// Marketplaces linked from catalog and fallback results.
var Marketplaces = []Marketplace{
	{Name: "Dribbble", Format: "https://dribbble.com/search/{q}"},
	{Name: "Behance", Format: "https://www.behance.net/search/projects?search={q}"},
	{Name: "Figma Community", Format: "https://www.figma.com/community/search?searchTerm={q}&resource_type=mixed"},
	{Name: "Creative Market", Format: "https://creativemarket.com/search?q={q}"},
	{Name: "Freepik", Format: "https://www.freepik.com/search?format=search&query={q}"},
	{Name: "Envato Elements", Format: "https://elements.envato.com/all-items/{q}"},
}

// SearchURL returns the marketplace search link for a query.
func (m Marketplace) SearchURL(query string) string {
	return strings.ReplaceAll(m.Format, "{q}", url.QueryEscape(query))
}

// Slug returns the lowercased, dash-joined marketplace name.
func (m Marketplace) Slug() string {
	return strings.ReplaceAll(strings.ToLower(m.Name), " ", "-")
}

// PlaceholderImage returns a deterministic preview image URL for a seed.
func PlaceholderImage(seed string) string {
	return "https://picsum.photos/seed/" + url.PathEscape(seed) + "/400/300"
}
