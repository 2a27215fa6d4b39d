// Package profile turns a design brief into the search profile used for
// ranking: keywords, dominant color, term-vector embedding and hash.
package profile

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/fmd-labs/fmd/internal/domain/color"
	domprofile "github.com/fmd-labs/fmd/internal/domain/profile"
	"github.com/fmd-labs/fmd/internal/domain/termvec"
)

var (
	wordPattern   = regexp.MustCompile(`[a-zA-Z]+|[가-힣]+`)
	hangulPattern = regexp.MustCompile(`^[가-힣]`)
)

// canvasKeywords are added for every sketch.
var canvasKeywords = []string{"sketch", "drawing"}

// Input is the part of a design the profile is derived from.
type Input struct {
	TextPrompt string
	Category   string
	// CanvasData is a PNG data URL; empty when the brief is text only.
	CanvasData string
}

// Output is the derived profile.
type Output struct {
	Keywords         []string
	NegativeKeywords []string
	DominantColor    *string
	Embedding        []byte
	Hash             string
	Attributes       domprofile.Attributes
}

// Builder derives profiles with fixed vocabulary rules.
type Builder struct {
	logger *zap.Logger
}

// NewBuilder creates a profile builder.
func NewBuilder(logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{logger: logger}
}

// Build derives the profile. It never fails: an unreadable canvas only
// contributes its fixed keywords.
func (b *Builder) Build(in Input) Output {
	keywords := extractKeywords(in.TextPrompt)
	dominant := colorFromText(in.TextPrompt)

	if in.CanvasData != "" {
		keywords = append(keywords, canvasKeywords...)
		if c, ok := b.canvasColor(in.CanvasData); ok {
			hex := c.Hex()
			dominant = &hex
			if w := hueWord(c); w != "" {
				keywords = append(keywords, w)
			}
		}
	}

	if in.Category != "" {
		keywords = append(keywords, strings.ToLower(in.Category))
	}
	keywords = dedupe(keywords)

	return Output{
		Keywords:         keywords,
		NegativeKeywords: []string{},
		DominantColor:    dominant,
		Embedding:        termvec.Build(keywords),
		Hash:             domprofile.Hash(keywords, dominant),
		Attributes: domprofile.Attributes{
			SourceText: in.TextPrompt,
			Category:   in.Category,
			HasCanvas:  in.CanvasData != "",
		},
	}
}

func (b *Builder) canvasColor(data string) (color.RGB, bool) {
	img, err := decodeCanvas(data)
	if err != nil {
		b.logger.Debug("Canvas not decodable, skipping color", zap.Error(err))
		return color.RGB{}, false
	}
	return dominantColor(img)
}

// extractKeywords tokenizes Latin and Hangul words, drops stopwords and
// single characters, and adds English translations in front of Korean words.
// When nothing English results, Korean words are matched against the
// vocabulary by substring.
func extractKeywords(text string) []string {
	if text == "" {
		return []string{}
	}

	words := wordPattern.FindAllString(strings.ToLower(text), -1)
	result := make([]string, 0, len(words))
	for _, w := range words {
		if utf8.RuneCountInString(w) <= 1 {
			continue
		}
		if _, stop := stopwords[w]; stop {
			continue
		}
		if isHangul(w) {
			if en, ok := koEnIndex[w]; ok {
				result = append(result, en)
			}
		}
		result = append(result, w)
	}

	if !hasEnglish(result) {
		for _, w := range words {
			if !isHangul(w) {
				continue
			}
			for _, p := range koEn {
				if strings.Contains(w, p.ko) || strings.Contains(p.ko, w) {
					result = append(result, p.en)
					break
				}
			}
		}
	}
	return dedupe(result)
}

// colorFromText returns the hex of the first color word found in the text.
func colorFromText(text string) *string {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)
	for _, c := range colorWords {
		if strings.Contains(lower, c.name) {
			hex := c.hex
			return &hex
		}
	}
	return nil
}

func isHangul(w string) bool { return hangulPattern.MatchString(w) }

func hasEnglish(words []string) bool {
	for _, w := range words {
		if c := w[0]; (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			return true
		}
	}
	return false
}

// dedupe removes repeats, keeping first occurrences in order.
func dedupe(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
