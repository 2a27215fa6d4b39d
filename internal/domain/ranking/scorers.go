package ranking

import (
	"math"
	"strings"

	"github.com/fmd-labs/fmd/internal/domain/color"
	"github.com/fmd-labs/fmd/internal/domain/termvec"
)

const (
	missingImageFactor = 0.8
	duplicateURLFactor = 0.9
)

// KeywordScore returns the fraction of keywords found in the title (substring)
// or among the tags (exact), case-insensitively. No keywords scores 0.
func KeywordScore(title string, tags, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	m := newMatcher(title, tags)
	matched := 0
	for _, kw := range keywords {
		if m.match(kw) {
			matched++
		}
	}
	return math.Min(float64(matched)/float64(len(keywords)), 1)
}

// ColorScore falls off linearly with RGB distance: 1 for identical colors,
// 0 at the opposite corner of the cube. Missing or unparsable input scores 0.
func ColorScore(candidateHex, dominantHex *string) float64 {
	if candidateHex == nil || dominantHex == nil {
		return 0
	}
	a, err := color.Parse(*candidateHex)
	if err != nil {
		return 0
	}
	b, err := color.Parse(*dominantHex)
	if err != nil {
		return 0
	}
	return math.Max(1-color.Distance(a, b)/color.MaxDistance, 0)
}

// EmbeddingScore compares candidate text with the profile term vector.
func EmbeddingScore(payload []byte, title string, tags []string) float64 {
	if len(payload) == 0 {
		return 0
	}
	return termvec.Similarity(payload, title, tags)
}

// MetaScore rates listing quality independent of relevance: a missing image
// and a product URL already seen in this pass each lower it.
func MetaScore(hasImage bool, productURL string, seen map[string]struct{}) float64 {
	score := 1.0
	if !hasImage {
		score *= missingImageFactor
	}
	if productURL != "" {
		if _, ok := seen[productURL]; ok {
			score *= duplicateURLFactor
		}
	}
	return score
}

// HasNegativeKeyword reports whether any negative keyword matches the item
// under the KeywordScore rule.
func HasNegativeKeyword(title string, tags, negatives []string) bool {
	if len(negatives) == 0 {
		return false
	}
	m := newMatcher(title, tags)
	for _, nk := range negatives {
		if m.match(nk) {
			return true
		}
	}
	return false
}

// matcher holds the lowercased item text for repeated keyword lookups.
type matcher struct {
	title string
	tags  map[string]struct{}
}

func newMatcher(title string, tags []string) matcher {
	m := matcher{title: strings.ToLower(title), tags: make(map[string]struct{}, len(tags))}
	for _, t := range tags {
		m.tags[strings.ToLower(t)] = struct{}{}
	}
	return m
}

func (m matcher) match(keyword string) bool {
	kw := strings.ToLower(keyword)
	if strings.Contains(m.title, kw) {
		return true
	}
	_, ok := m.tags[kw]
	return ok
}
