package result

import (
	"testing"
	"time"

	"github.com/fmd-labs/fmd/internal/domain/candidate"
)

func TestNew(t *testing.T) {
	now := time.Now()
	s := candidate.Scored{
		Item:         candidate.Item{Title: "Blue Logo", SearchRunID: "run-1"},
		ScoreOverall: 0.75,
		Explanation:  []string{"keyword match", "color match"},
	}

	r := New("res-1", s, now)

	if r.ID() != "res-1" {
		t.Errorf("ID() = %q", r.ID())
	}
	if r.RunID() != "run-1" {
		t.Errorf("RunID() = %q", r.RunID())
	}
	if r.Score() != 0.75 {
		t.Errorf("Score() = %f", r.Score())
	}
	if r.Scored().Title != "Blue Logo" {
		t.Errorf("Scored().Title = %q", r.Scored().Title)
	}
	if !r.CreatedAt().Equal(now) {
		t.Errorf("CreatedAt() = %v", r.CreatedAt())
	}
}
