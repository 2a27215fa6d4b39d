package profile

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	domprofile "github.com/fmd-labs/fmd/internal/domain/profile"
)

type attributesRow struct {
	SourceText    string `json:"source_text,omitempty"`
	Category      string `json:"category,omitempty"`
	HasCanvas     bool   `json:"has_canvas"`
	AIImageURL    string `json:"ai_image_url,omitempty"`
	AIImageMethod string `json:"ai_image_method,omitempty"`
}

// profileRow stores the embedding as raw bytes (base64 in JSON); its
// internal layout is never inspected here.
type profileRow struct {
	ID               string        `json:"id"`
	DesignID         string        `json:"design_id"`
	Hash             string        `json:"profile_hash"`
	Keywords         []string      `json:"keywords"`
	NegativeKeywords []string      `json:"negative_keywords"`
	DominantColor    *string       `json:"dominant_color"`
	Embedding        []byte        `json:"embedding"`
	Attributes       attributesRow `json:"profile"`
	CreatedAt        time.Time     `json:"created_at"`
}

func marshalProfile(p *domprofile.Profile) ([]byte, error) {
	data, err := json.Marshal(profileRow{
		ID:               p.ID,
		DesignID:         p.DesignID,
		Hash:             p.Hash,
		Keywords:         p.Keywords,
		NegativeKeywords: p.NegativeKeywords,
		DominantColor:    p.DominantColor,
		Embedding:        p.Embedding,
		Attributes: attributesRow{
			SourceText:    p.Attributes.SourceText,
			Category:      p.Attributes.Category,
			HasCanvas:     p.Attributes.HasCanvas,
			AIImageURL:    p.Attributes.AIImageURL,
			AIImageMethod: p.Attributes.AIImageMethod,
		},
		CreatedAt: p.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}
	return data, nil
}

func unmarshalProfile(data []byte) (*domprofile.Profile, error) {
	var row profileRow
	if err := json.Unmarshal(data, &row); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	return &domprofile.Profile{
		ID:               row.ID,
		DesignID:         row.DesignID,
		Hash:             row.Hash,
		Keywords:         row.Keywords,
		NegativeKeywords: row.NegativeKeywords,
		DominantColor:    row.DominantColor,
		Embedding:        row.Embedding,
		Attributes: domprofile.Attributes{
			SourceText:    row.Attributes.SourceText,
			Category:      row.Attributes.Category,
			HasCanvas:     row.Attributes.HasCanvas,
			AIImageURL:    row.Attributes.AIImageURL,
			AIImageMethod: row.Attributes.AIImageMethod,
		},
		CreatedAt: row.CreatedAt,
	}, nil
}
