package search

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/fmd-labs/fmd/internal/domain/candidate"
	"github.com/fmd-labs/fmd/internal/domain/search/result"
)

type runRow struct {
	ID         string           `json:"id"`
	ProfileID  string           `json:"profile_id"`
	ProviderID string           `json:"provider_id"`
	Status     result.RunStatus `json:"status"`
	Candidates int              `json:"candidates"`
	CreatedAt  time.Time        `json:"created_at"`
}

type resultRow struct {
	ID             string    `json:"id"`
	SearchRunID    string    `json:"search_run_id"`
	Title          string    `json:"title"`
	ImageURL       *string   `json:"image_url"`
	ProductURL     *string   `json:"product_url"`
	Price          *float64  `json:"price"`
	ColorHex       *string   `json:"color_hex,omitempty"`
	Tags           []string  `json:"tags,omitempty"`
	ScoreOverall   float64   `json:"score_overall"`
	ScoreEmbedding float64   `json:"score_embedding"`
	ScoreColor     float64   `json:"score_color"`
	ScoreKeyword   float64   `json:"score_keyword"`
	Explanation    []string  `json:"explanation"`
	CreatedAt      time.Time `json:"created_at"`
}

func marshalRun(r result.Run) ([]byte, error) {
	data, err := json.Marshal(runRow(r))
	if err != nil {
		return nil, fmt.Errorf("marshal run: %w", err)
	}
	return data, nil
}

func unmarshalRun(data []byte) (result.Run, error) {
	var row runRow
	if err := json.Unmarshal(data, &row); err != nil {
		return result.Run{}, fmt.Errorf("unmarshal run: %w", err)
	}
	return result.Run(row), nil
}

func marshalResult(r result.Result) ([]byte, error) {
	s := r.Scored()
	data, err := json.Marshal(resultRow{
		ID:             r.ID(),
		SearchRunID:    s.SearchRunID,
		Title:          s.Title,
		ImageURL:       s.ImageURL,
		ProductURL:     s.ProductURL,
		Price:          s.Price,
		ColorHex:       s.ColorHex,
		Tags:           s.Tags,
		ScoreOverall:   s.ScoreOverall,
		ScoreEmbedding: s.ScoreEmbedding,
		ScoreColor:     s.ScoreColor,
		ScoreKeyword:   s.ScoreKeyword,
		Explanation:    s.Explanation,
		CreatedAt:      r.CreatedAt(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return data, nil
}

func unmarshalResult(data []byte) (result.Result, error) {
	var row resultRow
	if err := json.Unmarshal(data, &row); err != nil {
		return result.Result{}, fmt.Errorf("unmarshal result: %w", err)
	}
	scored := candidate.Scored{
		Item: candidate.Item{
			Title:       row.Title,
			ImageURL:    row.ImageURL,
			ProductURL:  row.ProductURL,
			Price:       row.Price,
			ColorHex:    row.ColorHex,
			Tags:        row.Tags,
			SearchRunID: row.SearchRunID,
		},
		ScoreOverall:   row.ScoreOverall,
		ScoreKeyword:   row.ScoreKeyword,
		ScoreColor:     row.ScoreColor,
		ScoreEmbedding: row.ScoreEmbedding,
		Explanation:    row.Explanation,
	}
	return result.New(row.ID, scored, row.CreatedAt), nil
}
