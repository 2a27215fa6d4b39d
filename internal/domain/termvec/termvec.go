// Package termvec builds the lightweight term vector stored on a design profile
// and scores candidate text against it.
//
// The vector is a sparse bag of words: each distinct token weighs ln(1+count)
// and the whole vector is L2-normalized, so cosine similarity reduces to a
// dot product. No numerics library is involved.
package termvec

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// ErrMalformed signals a payload that does not follow the {terms, vec} shape.
var ErrMalformed = errors.New("termvec: malformed payload")

// Vector is the decoded payload. len(Terms) == len(Vec) always holds for
// vectors produced by Build or accepted by Decode.
type Vector struct {
	Terms []string  `json:"terms"`
	Vec   []float64 `json:"vec"`
}

// wire distinguishes absent keys from empty arrays while decoding.
type wire struct {
	Terms *[]string  `json:"terms"`
	Vec   *[]float64 `json:"vec"`
}

// Tokenize lowercases text and returns its maximal runs of ASCII letters
// longer than one character. Everything else, including non-Latin scripts,
// acts as a separator.
func Tokenize(text string) []string {
	text = strings.ToLower(text)
	var tokens []string
	start := -1
	for i := 0; i <= len(text); i++ {
		if i < len(text) && text[i] >= 'a' && text[i] <= 'z' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 && i-start > 1 {
			tokens = append(tokens, text[start:i])
		}
		start = -1
	}
	return tokens
}

// Build creates the serialized term vector for a keyword list.
func Build(keywords []string) []byte {
	var tokens []string
	for _, kw := range keywords {
		tokens = append(tokens, Tokenize(kw)...)
	}
	return New(tokens).Encode()
}

// New weights and normalizes a token multiset. Terms come out sorted and
// weights are rounded to 6 decimals.
func New(tokens []string) Vector {
	if len(tokens) == 0 {
		return Vector{Terms: []string{}, Vec: []float64{}}
	}

	counts := countTokens(tokens)
	terms := make([]string, 0, len(counts))
	for t := range counts {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	weights := make([]float64, len(terms))
	for i, t := range terms {
		weights[i] = math.Log1p(float64(counts[t]))
	}
	norm := magnitude(weights)

	vec := make([]float64, len(terms))
	for i, w := range weights {
		vec[i] = round(w/norm, 6)
	}
	return Vector{Terms: terms, Vec: vec}
}

// Encode serializes the vector into its durable JSON shape.
func (v Vector) Encode() []byte {
	terms, vec := v.Terms, v.Vec
	if terms == nil {
		terms = []string{}
	}
	if vec == nil {
		vec = []float64{}
	}
	data, err := json.Marshal(Vector{Terms: terms, Vec: vec})
	if err != nil {
		// strings and finite floats always marshal
		panic(fmt.Sprintf("termvec: encode: %v", err))
	}
	return data
}

// Decode parses a payload produced by Build. Missing keys or mismatched
// lengths are reported as ErrMalformed.
func Decode(payload []byte) (Vector, error) {
	var w wire
	if err := json.Unmarshal(payload, &w); err != nil {
		return Vector{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if w.Terms == nil || w.Vec == nil {
		return Vector{}, fmt.Errorf("%w: missing terms or vec", ErrMalformed)
	}
	if len(*w.Terms) != len(*w.Vec) {
		return Vector{}, fmt.Errorf("%w: %d terms, %d weights", ErrMalformed, len(*w.Terms), len(*w.Vec))
	}
	return Vector{Terms: *w.Terms, Vec: *w.Vec}, nil
}

// Similarity scores candidate text against a stored payload. Only the
// payload's own vocabulary is considered. Any decoding problem or empty input
// yields 0; the result is clamped to [0, 1] and rounded to 4 decimals.
func Similarity(payload []byte, title string, tags []string) float64 {
	q, err := Decode(payload)
	if err != nil || len(q.Terms) == 0 {
		return 0
	}

	tokens := Tokenize(title + " " + strings.Join(tags, " "))
	if len(tokens) == 0 {
		return 0
	}
	counts := countTokens(tokens)

	cand := make([]float64, len(q.Terms))
	for i, t := range q.Terms {
		cand[i] = math.Log1p(float64(counts[t]))
	}
	norm := magnitude(cand)

	var dot float64
	for i, w := range q.Vec {
		dot += w * cand[i] / norm
	}
	return round(math.Max(0, math.Min(1, dot)), 4)
}

func countTokens(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, t := range tokens {
		counts[t]++
	}
	return counts
}

// magnitude returns the L2 norm, or 1 for a zero vector.
func magnitude(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return 1
	}
	return math.Sqrt(sum)
}

func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
