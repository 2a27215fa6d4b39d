package fmd

import "time"

// InputMode is how a brief was captured.
type InputMode string

// Input mode constants.
const (
	ModeText   InputMode = "text"
	ModeCanvas InputMode = "canvas"
)

// Brief is a design request. Either TextPrompt or CanvasData (a PNG data
// URL) is required.
type Brief struct {
	InputMode    InputMode
	CategoryHint string
	TextPrompt   string
	CanvasData   string
}

// JobStatus is the outcome of processing a design.
type JobStatus struct {
	JobID             string
	Status            string // "queued", "running", "done", "failed"
	Progress          float64
	ErrorCode         string
	ReferenceImageURL string
	Keywords          []string
	DominantColor     string
}

// Done reports whether processing finished successfully.
func (s JobStatus) Done() bool { return s.Status == "done" }

// SearchParams selects providers and the result count. Zero values fall
// back to the defaults.
type SearchParams struct {
	Providers []string
	Limit     int
}

// Product is one ranked recommendation.
type Product struct {
	Title          string
	ImageURL       string
	ProductURL     string
	Price          *float64
	Score          float64
	KeywordScore   float64
	ColorScore     float64
	EmbeddingScore float64
	Explanation    []string
}

// HistoryItem is a processed or processing design of a session.
type HistoryItem struct {
	DesignID          string
	Status            string
	InputMode         InputMode
	TextPrompt        string
	CategoryHint      string
	CreatedAt         time.Time
	ReferenceImageURL string
	Keywords          []string
	DominantColor     string
	TopProducts       []Product
}
