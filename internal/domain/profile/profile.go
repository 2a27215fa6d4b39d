// Package profile holds the derived search profile of a design.
package profile

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"time"

	"github.com/fmd-labs/fmd/internal/domain/ranking"
)

// Attributes is descriptive metadata kept with the profile.
type Attributes struct {
	SourceText    string
	Category      string
	HasCanvas     bool
	AIImageURL    string
	AIImageMethod string
}

// Profile is the ranking input stored for a processed design.
type Profile struct {
	ID               string
	DesignID         string
	Hash             string
	Keywords         []string
	NegativeKeywords []string
	DominantColor    *string
	// Embedding is an opaque term vector payload.
	Embedding  []byte
	Attributes Attributes
	CreatedAt  time.Time
}

// Ranking converts the profile into ranker input.
func (p *Profile) Ranking() ranking.Profile {
	return ranking.Profile{
		Keywords:         p.Keywords,
		NegativeKeywords: p.NegativeKeywords,
		DominantColor:    p.DominantColor,
		Embedding:        p.Embedding,
	}
}

// Hash fingerprints a keyword set and color: the first 16 hex characters of
// sha256("<sorted keywords joined by ','>:<color>").
func Hash(keywords []string, dominantColor *string) string {
	sorted := append([]string(nil), keywords...)
	sort.Strings(sorted)
	c := ""
	if dominantColor != nil {
		c = *dominantColor
	}
	sum := sha256.Sum256([]byte(strings.Join(sorted, ",") + ":" + c))
	return hex.EncodeToString(sum[:])[:16]
}

// ScopedHash qualifies a hash with its design so equal briefs never collide.
func ScopedHash(designID, hash string) string {
	return designID + ":" + hash
}
