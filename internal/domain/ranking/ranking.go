// Package ranking scores provider candidates against a design profile and
// orders them. It is pure: no I/O, no shared state, safe for concurrent use.
package ranking

import (
	"math"
	"sort"

	"github.com/fmd-labs/fmd/internal/domain/candidate"
)

// Signal weights when the profile carries a term vector.
const (
	wEmbedding        = 0.55
	wColorWithEmb     = 0.20
	wKeywordWithEmb   = 0.20
	wMetaWithEmb      = 0.05
	wColorNoEmb       = 0.45
	wKeywordNoEmb     = 0.45
	wMetaNoEmb        = 0.10
	negativePenalty   = 0.6
	duplicatePenalty  = 0.9
	scoreDecimalScale = 1e4
)

// Profile is the ranking input derived from a design.
type Profile struct {
	Keywords         []string
	NegativeKeywords []string
	DominantColor    *string
	// Embedding is a termvec payload. nil means no semantic signal and
	// switches to the color/keyword weighting.
	Embedding []byte
}

// HasEmbedding reports whether the embedding weighting applies.
func (p Profile) HasEmbedding() bool { return p.Embedding != nil }

// Rank scores every candidate and returns them sorted by overall score,
// highest first. Equal scores keep their input order. Input order also drives
// duplicate URL detection, so callers should pass candidates in a stable order.
func Rank(items []candidate.Item, p Profile) []candidate.Scored {
	out := make([]candidate.Scored, 0, len(items))
	seen := make(map[string]struct{})

	for _, it := range items {
		url := it.URL()

		kw := KeywordScore(it.Title, it.Tags, p.Keywords)
		col := ColorScore(it.ColorHex, p.DominantColor)
		emb := EmbeddingScore(p.Embedding, it.Title, it.Tags)
		meta := MetaScore(it.HasImage(), url, seen)

		_, duplicate := seen[url]
		duplicate = duplicate && url != ""
		if url != "" {
			seen[url] = struct{}{}
		}

		var overall float64
		if p.HasEmbedding() {
			overall = wEmbedding*emb + wColorWithEmb*col + wKeywordWithEmb*kw + wMetaWithEmb*meta
		} else {
			overall = wColorNoEmb*col + wKeywordNoEmb*kw + wMetaNoEmb*meta
		}

		if HasNegativeKeyword(it.Title, it.Tags, p.NegativeKeywords) {
			overall *= negativePenalty
		}
		if duplicate && len(seen) > 1 {
			overall *= duplicatePenalty
		}

		out = append(out, candidate.Scored{
			Item:           it,
			ScoreOverall:   round4(overall),
			ScoreKeyword:   round4(kw),
			ScoreColor:     round4(col),
			ScoreEmbedding: round4(emb),
			Explanation:    Explain(kw, col, emb),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ScoreOverall > out[j].ScoreOverall
	})
	return out
}

func round4(x float64) float64 {
	return math.Round(x*scoreDecimalScale) / scoreDecimalScale
}
