// Package catalog is the built-in product source ("mock"). It ranks a fixed
// design-asset catalog by category and keyword overlap and links every entry
// to a real marketplace search page.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fmd-labs/fmd/internal/domain/candidate"
	"github.com/fmd-labs/fmd/internal/provider"
)

// ID is the registry name of the catalog provider.
const ID = "mock"

// categoryBoost is the relevance added when a product is tagged with the
// requested category.
const categoryBoost = 3

// dynamicMarketplaces is how many keyword-specific marketplace links are
// generated per search.
const dynamicMarketplaces = 4

// Provider serves the built-in catalog.
type Provider struct{}

// New creates the catalog provider.
func New() *Provider { return &Provider{} }

// ID implements provider.Provider.
func (p *Provider) ID() string { return ID }

type scoredItem struct {
	relevance float64
	item      candidate.Item
}

// Search returns catalog entries ordered by relevance, then catalog order.
// Keyword-specific marketplace links are added when English keywords exist.
func (p *Provider) Search(ctx context.Context, q provider.Query) ([]candidate.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	en := provider.EnglishKeywords(q.Keywords)
	kwSet := make(map[string]struct{}, len(en))
	for _, k := range en {
		kwSet[strings.ToLower(k)] = struct{}{}
	}
	queryStr := provider.QueryString(en)
	category := strings.ToLower(q.Category)

	scored := make([]scoredItem, 0, len(products)+dynamicMarketplaces)
	for i, prod := range products {
		vocab := productVocabulary(prod)

		relevance := 0
		if category != "" {
			if _, ok := vocab.tags[category]; ok {
				relevance += categoryBoost
			}
		}
		for k := range kwSet {
			_, inTags := vocab.tags[k]
			_, inTitle := vocab.title[k]
			if inTags || inTitle {
				relevance++
			}
		}

		mp := provider.Marketplaces[i%len(provider.Marketplaces)]
		scored = append(scored, scoredItem{
			relevance: float64(relevance),
			item: candidate.Item{
				Title:      prod.Title,
				ProductURL: candidate.Ptr(mp.SearchURL(queryStr + " " + prod.Title)),
				Price:      candidate.Ptr(prod.Price),
				ColorHex:   candidate.Ptr(prod.ColorHex),
				Tags:       append([]string(nil), prod.Tags...),
			},
		})
	}

	if len(en) > 0 {
		for j, item := range dynamicResults(en, q.Category, queryStr) {
			scored = append(scored, scoredItem{relevance: 5 + float64(j)*0.1, item: item})
		}
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].relevance > scored[b].relevance
	})

	limit := q.EffectiveLimit()
	if len(scored) > limit {
		scored = scored[:limit]
	}
	out := make([]candidate.Item, len(scored))
	for i := range scored {
		out[i] = scored[i].item
	}
	return out, nil
}

type vocabulary struct {
	tags  map[string]struct{}
	title map[string]struct{}
}

func productVocabulary(p product) vocabulary {
	v := vocabulary{
		tags:  make(map[string]struct{}, len(p.Tags)),
		title: make(map[string]struct{}),
	}
	for _, t := range p.Tags {
		v.tags[strings.ToLower(t)] = struct{}{}
	}
	for _, w := range strings.Fields(p.Title) {
		v.title[strings.ToLower(w)] = struct{}{}
	}
	return v
}

// dynamicResults links the keyword query to the first marketplaces.
func dynamicResults(keywords []string, category, queryStr string) []candidate.Item {
	catLabel := provider.Capitalize(category)
	if catLabel == "" {
		catLabel = "Design"
	}

	head := keywords
	if len(head) > 4 {
		head = head[:4]
	}
	var titleWords []string
	for _, w := range head {
		if strings.EqualFold(w, category) {
			continue
		}
		titleWords = append(titleWords, provider.Capitalize(w))
	}
	if len(titleWords) > 3 {
		titleWords = titleWords[:3]
	}
	titleKw := strings.Join(titleWords, " ")

	tagHead := keywords
	if len(tagHead) > 6 {
		tagHead = tagHead[:6]
	}
	tags := make([]string, 0, len(tagHead)+1)
	for _, k := range tagHead {
		tags = append(tags, strings.ToLower(k))
	}
	tags = append(tags, strings.ToLower(catLabel))

	out := make([]candidate.Item, 0, dynamicMarketplaces)
	for i, mp := range provider.Marketplaces[:dynamicMarketplaces] {
		title := strings.TrimSpace(fmt.Sprintf("%s %s — %s", titleKw, catLabel, mp.Name))
		out = append(out, candidate.Item{
			Title:      title,
			ImageURL:   candidate.Ptr(provider.PlaceholderImage(fmt.Sprintf("%s-%d", mp.Slug(), i))),
			ProductURL: candidate.Ptr(mp.SearchURL(queryStr)),
			Price:      candidate.Ptr(0.0),
			Tags:       append([]string(nil), tags...),
		})
	}
	return out
}
