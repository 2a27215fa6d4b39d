// Package candidate holds the provider-agnostic item shape shared by
// providers, the ranker, and the search repository.
package candidate

import (
	"errors"
	"strings"
)

// ErrTitleRequired rejects an item without a usable title.
var ErrTitleRequired = errors.New("candidate title is required")

// Item is one raw result returned by a provider.
type Item struct {
	Title      string
	ImageURL   *string
	ProductURL *string
	Price      *float64
	ColorHex   *string
	Tags       []string

	// SearchRunID is set by the search layer, never by providers.
	SearchRunID string
}

// Validate checks the fields the ranker relies on.
func (i Item) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return ErrTitleRequired
	}
	return nil
}

// HasImage reports whether the item carries a non-empty image URL.
func (i Item) HasImage() bool { return i.ImageURL != nil && *i.ImageURL != "" }

// URL returns the product URL, or "" when absent.
func (i Item) URL() string {
	if i.ProductURL == nil {
		return ""
	}
	return *i.ProductURL
}

// Scored is an Item annotated by the ranker.
type Scored struct {
	Item

	ScoreOverall   float64
	ScoreKeyword   float64
	ScoreColor     float64
	ScoreEmbedding float64
	Explanation    []string
}

// Ptr returns a pointer to v. Convenience for optional fields.
func Ptr[T any](v T) *T { return &v }
