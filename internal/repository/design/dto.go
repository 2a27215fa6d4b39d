package design

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	domdesign "github.com/fmd-labs/fmd/internal/domain/design"
)

type designRow struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"session_id"`
	InputMode    string    `json:"input_mode"`
	CategoryHint string    `json:"category_hint,omitempty"`
	TextPrompt   string    `json:"text_prompt,omitempty"`
	CanvasData   string    `json:"canvas_data,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

func marshalDesign(d domdesign.Design) ([]byte, error) {
	data, err := json.Marshal(designRow{
		ID:           d.ID(),
		SessionID:    d.SessionID(),
		InputMode:    string(d.InputMode()),
		CategoryHint: d.CategoryHint(),
		TextPrompt:   d.TextPrompt(),
		CanvasData:   d.CanvasData(),
		Status:       string(d.Status()),
		CreatedAt:    d.CreatedAt(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal design: %w", err)
	}
	return data, nil
}

func unmarshalDesign(data []byte) (domdesign.Design, error) {
	var row designRow
	if err := json.Unmarshal(data, &row); err != nil {
		return domdesign.Design{}, fmt.Errorf("unmarshal design: %w", err)
	}
	return domdesign.Reconstruct(
		row.ID, row.SessionID, domdesign.InputMode(row.InputMode),
		row.CategoryHint, row.TextPrompt, row.CanvasData,
		domdesign.Status(row.Status), row.CreatedAt,
	), nil
}
