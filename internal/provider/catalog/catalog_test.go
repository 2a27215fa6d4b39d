package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/fmd-labs/fmd/internal/provider"
)

func TestSearch_CategoryAndKeywordsRankFirst(t *testing.T) {
	p := New()
	items, err := p.Search(context.Background(), provider.Query{
		Keywords: []string{"파란", "blue", "minimal", "logo"},
		Category: "logo",
		Limit:    10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 10 {
		t.Fatalf("got %d items, want 10", len(items))
	}

	// Dynamic marketplace links have relevance 5.0-5.3; "Minimal Geometric
	// Logo Pack" scores 3 (category) + 3 (blue, minimal, logo) = 6.
	if items[0].Title != "Minimal Geometric Logo Pack" {
		t.Errorf("first = %q, want Minimal Geometric Logo Pack", items[0].Title)
	}
	for _, it := range items {
		if it.ProductURL == nil || !strings.HasPrefix(*it.ProductURL, "https://") {
			t.Errorf("%q has no marketplace link", it.Title)
		}
		if err := it.Validate(); err != nil {
			t.Errorf("invalid item: %v", err)
		}
	}
}

func TestSearch_DynamicResults(t *testing.T) {
	p := New()
	items, err := p.Search(context.Background(), provider.Query{
		Keywords: []string{"guitar", "music"},
		Category: "icon",
		Limit:    200,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != len(products)+dynamicMarketplaces {
		t.Fatalf("got %d items, want %d", len(items), len(products)+dynamicMarketplaces)
	}

	var dynamic int
	for _, it := range items {
		if strings.HasPrefix(it.Title, "Guitar Music Icon — ") {
			dynamic++
			if it.ImageURL == nil || !strings.HasPrefix(*it.ImageURL, "https://picsum.photos/seed/") {
				t.Errorf("dynamic item image = %v", it.ImageURL)
			}
			if it.Price == nil || *it.Price != 0 {
				t.Errorf("dynamic item price = %v", it.Price)
			}
		}
	}
	if dynamic != dynamicMarketplaces {
		t.Errorf("dynamic results = %d, want %d", dynamic, dynamicMarketplaces)
	}
}

func TestSearch_NoEnglishKeywords(t *testing.T) {
	p := New()
	items, err := p.Search(context.Background(), provider.Query{Keywords: []string{"로고"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != provider.DefaultLimit {
		t.Fatalf("got %d items, want %d", len(items), provider.DefaultLimit)
	}
	// No relevance anywhere: catalog order, linked with the "design" query.
	if items[0].Title != products[0].Title {
		t.Errorf("first = %q, want %q", items[0].Title, products[0].Title)
	}
	if !strings.Contains(*items[0].ProductURL, "design+") {
		t.Errorf("ProductURL = %s, want design query", *items[0].ProductURL)
	}
}

func TestSearch_Deterministic(t *testing.T) {
	p := New()
	q := provider.Query{Keywords: []string{"dark", "modern"}, Category: "ui", Limit: 15}
	a, _ := p.Search(context.Background(), q)
	b, _ := p.Search(context.Background(), q)
	for i := range a {
		if a[i].Title != b[i].Title {
			t.Fatalf("order differs at %d: %q vs %q", i, a[i].Title, b[i].Title)
		}
	}
}

func TestSearch_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().Search(ctx, provider.Query{}); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestSearch_TitlesKeepSeparator(t *testing.T) {
	p := New()
	items, err := p.Search(context.Background(), provider.Query{
		Keywords: []string{"finance", "mobile"},
		Category: "ui",
		Limit:    200,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]bool{
		"Mobile App UI Kit — Finance": false,
		"Game UI Kit — Mobile RPG":    false,
	}
	for _, it := range items {
		if _, ok := want[it.Title]; ok {
			want[it.Title] = true
		}
	}
	for title, found := range want {
		if !found {
			t.Errorf("missing catalog title %q", title)
		}
	}
}
