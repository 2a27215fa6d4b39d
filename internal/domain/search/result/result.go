package result

import (
	"time"

	"github.com/fmd-labs/fmd/internal/domain/candidate"
)

// RunStatus is the outcome of one provider call within a search.
type RunStatus string

// Run status values.
const (
	RunPending RunStatus = "pending"
	RunDone    RunStatus = "done"
	RunFailed  RunStatus = "failed"
)

// Run records one provider invocation for a profile.
type Run struct {
	ID         string
	ProfileID  string
	ProviderID string
	Status     RunStatus
	Candidates int
	CreatedAt  time.Time
}

// Result is a persisted ranked item.
type Result struct {
	id        string
	scored    candidate.Scored
	createdAt time.Time
}

// New creates a stored search result. The run is taken from the item.
func New(id string, scored candidate.Scored, createdAt time.Time) Result {
	return Result{id: id, scored: scored, createdAt: createdAt}
}

// ID returns the result identifier.
func (r *Result) ID() string { return r.id }

// RunID returns the provider run the item came from.
func (r *Result) RunID() string { return r.scored.SearchRunID }

// Score returns the overall ranking score.
func (r *Result) Score() float64 { return r.scored.ScoreOverall }

// Scored returns the ranked item.
func (r *Result) Scored() candidate.Scored { return r.scored }

// CreatedAt returns the persistence time.
func (r *Result) CreatedAt() time.Time { return r.createdAt }
