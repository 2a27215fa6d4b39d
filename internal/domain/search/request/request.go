package request

import (
	"fmt"
	"strings"
)

// Search parameter limits.
const (
	DefaultLimit = 20
	MaxLimit     = 100
	// MaxProviders bounds how many providers one request may fan out to.
	MaxProviders = 8
)

// DefaultProviders is used when a request names none.
var DefaultProviders = []string{"mock"}

// Defaults carries deployment-level overrides for the package defaults.
type Defaults struct {
	Providers []string
	Limit     int
	MaxLimit  int
}

// Request is a validated product search for one design.
type Request struct {
	designID  string
	providers []string
	limit     int
}

// New validates and normalizes search parameters.
// Providers are lowercased and deduplicated in request order; limit falls
// back to the default and is clamped to the maximum.
func New(designID string, providers []string, limit int, d Defaults) (Request, error) {
	if designID == "" {
		return Request{}, fmt.Errorf("design ID is required")
	}

	if len(providers) == 0 {
		providers = d.Providers
	}
	if len(providers) == 0 {
		providers = DefaultProviders
	}
	ids := normalize(providers)
	if len(ids) == 0 {
		return Request{}, fmt.Errorf("at least one provider is required")
	}
	if len(ids) > MaxProviders {
		return Request{}, fmt.Errorf("too many providers (max %d)", MaxProviders)
	}

	maxLimit := d.MaxLimit
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	if limit < 0 {
		return Request{}, fmt.Errorf("limit must not be negative")
	}
	if limit == 0 {
		limit = d.Limit
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return Request{designID: designID, providers: ids, limit: limit}, nil
}

func normalize(providers []string) []string {
	seen := make(map[string]bool, len(providers))
	out := make([]string, 0, len(providers))
	for _, p := range providers {
		id := strings.ToLower(strings.TrimSpace(p))
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// DesignID returns the design being searched for.
func (r *Request) DesignID() string { return r.designID }

// Providers returns the provider IDs in request order.
func (r *Request) Providers() []string { return r.providers }

// Limit returns the maximum results to return.
func (r *Request) Limit() int { return r.limit }
