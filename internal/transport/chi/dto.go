package chi

import (
	"time"

	domjob "github.com/fmd-labs/fmd/internal/domain/job"
	"github.com/fmd-labs/fmd/internal/domain/search/result"
	designuc "github.com/fmd-labs/fmd/internal/usecase/design"
)

// ErrorCode is a machine-readable error identifier.
type ErrorCode string

// Error codes returned in ErrorResponse.
const (
	ErrorCodeBadRequest          ErrorCode = "bad_request"
	ErrorCodeValidationFailed    ErrorCode = "validation_failed"
	ErrorCodeUnauthorized        ErrorCode = "unauthorized"
	ErrorCodeSessionNotFound     ErrorCode = "session_not_found"
	ErrorCodeDesignNotFound      ErrorCode = "design_not_found"
	ErrorCodeJobNotFound         ErrorCode = "job_not_found"
	ErrorCodeNotFound            ErrorCode = "not_found"
	ErrorCodeProfileNotReady     ErrorCode = "profile_not_ready"
	ErrorCodeProcessInProgress   ErrorCode = "process_in_progress"
	ErrorCodeRateLimited         ErrorCode = "rate_limited"
	ErrorCodeProviderUnavailable ErrorCode = "provider_unavailable"
	ErrorCodeImageGeneration     ErrorCode = "image_generation_failed"
	ErrorCodeInternalError       ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode    `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError describes one failed request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// SessionResponse is returned by POST /api/sessions.
type SessionResponse struct {
	SessionID string `json:"session_id"`
}

// CreateDesignRequest is the body of POST /api/designs.
type CreateDesignRequest struct {
	SessionID    string `json:"session_id"    validate:"required,uuid"`
	InputMode    string `json:"input_mode"    validate:"required,oneof=text canvas"`
	CategoryHint string `json:"category_hint" validate:"max=50"`
	TextPrompt   string `json:"text_prompt"   validate:"required_without=CanvasData,max=4000"`
	CanvasData   string `json:"canvas_data"`
}

// DesignResponse is returned by POST /api/designs.
type DesignResponse struct {
	DesignID string `json:"design_id"`
	Status   string `json:"status"`
}

// ProcessResponse is returned by POST /api/designs/{id}/process.
type ProcessResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// JobStatusResponse is returned by GET /api/jobs/{id}.
type JobStatusResponse struct {
	JobID         string   `json:"job_id"`
	Status        string   `json:"status"`
	Progress      float64  `json:"progress"`
	ErrorCode     *string  `json:"error_code"`
	AIImageURL    *string  `json:"ai_image_url"`
	Keywords      []string `json:"keywords"`
	DominantColor *string  `json:"dominant_color"`
}

// SearchRequest is the body of POST /api/search.
type SearchRequest struct {
	DesignID  string   `json:"design_id" validate:"required,uuid"`
	Providers []string `json:"providers"`
	Limit     int      `json:"limit"     validate:"min=0"`
}

// SearchResultItem is one ranked product.
type SearchResultItem struct {
	Title          string   `json:"title"`
	ImageURL       *string  `json:"image_url"`
	ProductURL     *string  `json:"product_url"`
	Price          *float64 `json:"price"`
	ScoreOverall   float64  `json:"score_overall"`
	ScoreKeyword   float64  `json:"score_keyword"`
	ScoreColor     float64  `json:"score_color"`
	ScoreEmbedding float64  `json:"score_embedding"`
	Explanation    []string `json:"explanation"`
}

// SearchResponse is returned by POST /api/search.
type SearchResponse struct {
	Results []SearchResultItem `json:"results"`
}

// HistoryResultItem is a top result shown in the history.
type HistoryResultItem struct {
	Title        string  `json:"title"`
	ImageURL     *string `json:"image_url"`
	ProductURL   *string `json:"product_url"`
	ScoreOverall float64 `json:"score_overall"`
}

// HistoryItem is one design in a session history.
type HistoryItem struct {
	DesignID      string              `json:"design_id"`
	TextPrompt    *string             `json:"text_prompt"`
	CategoryHint  *string             `json:"category_hint"`
	InputMode     string              `json:"input_mode"`
	Status        string              `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
	AIImageURL    *string             `json:"ai_image_url"`
	Keywords      []string            `json:"keywords"`
	DominantColor *string             `json:"dominant_color"`
	TopResults    []HistoryResultItem `json:"top_results"`
}

// HistoryResponse is returned by GET /api/sessions/{id}/history.
type HistoryResponse struct {
	SessionID string        `json:"session_id"`
	Items     []HistoryItem `json:"items"`
	Total     int           `json:"total"`
}

// ProvidersResponse is returned by GET /api/providers.
type ProvidersResponse struct {
	Providers []string `json:"providers"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Checks       map[string]string `json:"checks"`
	OpenCircuits []string          `json:"open_circuits,omitempty"`
}

func jobStatusFromSnapshot(s domjob.Snapshot) JobStatusResponse {
	resp := JobStatusResponse{
		JobID:         s.JobID,
		Status:        string(s.Status),
		Progress:      s.Progress,
		ErrorCode:     optString(s.ErrorCode),
		AIImageURL:    optString(s.AIImageURL),
		DominantColor: s.DominantColor,
	}
	if len(s.Keywords) > 0 {
		resp.Keywords = s.Keywords
	}
	return resp
}

func searchResultItem(r *result.Result) SearchResultItem {
	sc := r.Scored()
	explanation := sc.Explanation
	if explanation == nil {
		explanation = []string{}
	}
	return SearchResultItem{
		Title:          sc.Title,
		ImageURL:       sc.ImageURL,
		ProductURL:     sc.ProductURL,
		Price:          sc.Price,
		ScoreOverall:   sc.ScoreOverall,
		ScoreKeyword:   sc.ScoreKeyword,
		ScoreColor:     sc.ScoreColor,
		ScoreEmbedding: sc.ScoreEmbedding,
		Explanation:    explanation,
	}
}

func historyItem(e designuc.HistoryEntry) HistoryItem {
	d := e.Design
	item := HistoryItem{
		DesignID:     d.ID(),
		TextPrompt:   optString(d.TextPrompt()),
		CategoryHint: optString(d.CategoryHint()),
		InputMode:    string(d.InputMode()),
		Status:       string(d.Status()),
		CreatedAt:    d.CreatedAt().UTC(),
		Keywords:     []string{},
		TopResults:   make([]HistoryResultItem, 0, len(e.TopResults)),
	}
	if p := e.Profile; p != nil {
		item.AIImageURL = optString(p.Attributes.AIImageURL)
		item.DominantColor = p.DominantColor
		if len(p.Keywords) > 0 {
			item.Keywords = p.Keywords
		}
	}
	for i := range e.TopResults {
		sc := e.TopResults[i].Scored()
		item.TopResults = append(item.TopResults, HistoryResultItem{
			Title:        sc.Title,
			ImageURL:     sc.ImageURL,
			ProductURL:   sc.ProductURL,
			ScoreOverall: sc.ScoreOverall,
		})
	}
	return item
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
