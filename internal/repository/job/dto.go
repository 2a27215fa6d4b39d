package job

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	domjob "github.com/fmd-labs/fmd/internal/domain/job"
)

type resultRow struct {
	AIImageURL    string   `json:"ai_image_url"`
	AIImageMethod string   `json:"ai_image_method"`
	Keywords      []string `json:"keywords"`
	DominantColor *string  `json:"dominant_color"`
}

type jobRow struct {
	ID         string     `json:"id"`
	DesignID   string     `json:"design_id"`
	Type       string     `json:"job_type"`
	Status     string     `json:"status"`
	Progress   float64    `json:"progress"`
	Result     *resultRow `json:"result,omitempty"`
	ErrorCode  string     `json:"error_code,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

func marshalJob(j *domjob.Job) ([]byte, error) {
	row := jobRow{
		ID:         j.ID,
		DesignID:   j.DesignID,
		Type:       string(j.Type),
		Status:     string(j.Status),
		Progress:   j.Progress,
		ErrorCode:  j.ErrorCode,
		CreatedAt:  j.CreatedAt,
		FinishedAt: j.FinishedAt,
	}
	if j.Result != nil {
		row.Result = &resultRow{
			AIImageURL:    j.Result.AIImageURL,
			AIImageMethod: j.Result.AIImageMethod,
			Keywords:      j.Result.Keywords,
			DominantColor: j.Result.DominantColor,
		}
	}
	data, err := json.Marshal(row)
	if err != nil {
		return nil, fmt.Errorf("marshal job: %w", err)
	}
	return data, nil
}

func unmarshalJob(data []byte) (*domjob.Job, error) {
	var row jobRow
	if err := json.Unmarshal(data, &row); err != nil {
		return nil, fmt.Errorf("unmarshal job: %w", err)
	}
	j := &domjob.Job{
		ID:         row.ID,
		DesignID:   row.DesignID,
		Type:       domjob.Type(row.Type),
		Status:     domjob.Status(row.Status),
		Progress:   row.Progress,
		ErrorCode:  row.ErrorCode,
		CreatedAt:  row.CreatedAt,
		FinishedAt: row.FinishedAt,
	}
	if row.Result != nil {
		j.Result = &domjob.Result{
			AIImageURL:    row.Result.AIImageURL,
			AIImageMethod: row.Result.AIImageMethod,
			Keywords:      row.Result.Keywords,
			DominantColor: row.Result.DominantColor,
		}
	}
	return j, nil
}
