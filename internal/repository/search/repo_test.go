package search

import (
	"context"
	"testing"
	"time"

	"github.com/fmd-labs/fmd/internal/db/memory"
	"github.com/fmd-labs/fmd/internal/domain/candidate"
	"github.com/fmd-labs/fmd/internal/domain/search/result"
)

func scoredItem(title, runID string, score float64) candidate.Scored {
	return candidate.Scored{
		Item: candidate.Item{
			Title:       title,
			ImageURL:    candidate.Ptr("https://img/" + title),
			ProductURL:  candidate.Ptr("https://shop/" + title),
			Price:       candidate.Ptr(19.9),
			SearchRunID: runID,
		},
		ScoreOverall: score,
		ScoreKeyword: score,
		Explanation:  []string{"keyword match"},
	}
}

func TestLatestRun(t *testing.T) {
	r := New(memory.NewStore(), "t:")
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	got, err := r.LatestRun(ctx, "pr-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected no run, got %+v", got)
	}

	runs := []result.Run{
		{ID: "run-a", ProfileID: "pr-1", ProviderID: "mock", Status: result.RunDone, Candidates: 3, CreatedAt: base},
		{ID: "run-b", ProfileID: "pr-1", ProviderID: "crawl", Status: result.RunDone, Candidates: 2, CreatedAt: base.Add(time.Second)},
		{ID: "run-c", ProfileID: "pr-2", ProviderID: "mock", Status: result.RunDone, CreatedAt: base.Add(time.Hour)},
	}
	for _, run := range runs {
		if err := r.SaveRun(ctx, run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	got, err = r.LatestRun(ctx, "pr-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.ID != "run-b" {
		t.Fatalf("LatestRun = %+v, want run-b", got)
	}
	if got.ProviderID != "crawl" || got.Status != result.RunDone || got.Candidates != 2 {
		t.Errorf("run fields not preserved: %+v", got)
	}
}

func TestTopResults(t *testing.T) {
	r := New(memory.NewStore(), "t:")
	ctx := context.Background()
	now := time.Now().UTC()

	results := []result.Result{
		result.New("r1", scoredItem("low", "run-a", 0.2), now),
		result.New("r2", scoredItem("high", "run-a", 0.9), now),
		result.New("r3", scoredItem("mid", "run-a", 0.5), now),
		result.New("r4", scoredItem("other", "run-b", 1.0), now),
	}
	if err := r.SaveResults(ctx, results); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	top, err := r.TopResults(ctx, "run-a", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("got %d results, want 2", len(top))
	}
	first, second := top[0].Scored(), top[1].Scored()
	if first.Title != "high" || second.Title != "mid" {
		t.Errorf("order = [%s %s], want [high mid]", first.Title, second.Title)
	}
	if first.ProductURL == nil || *first.ProductURL != "https://shop/high" {
		t.Errorf("ProductURL = %v", first.ProductURL)
	}
	if first.Price == nil || *first.Price != 19.9 {
		t.Errorf("Price = %v", first.Price)
	}
	if len(first.Explanation) != 1 || first.Explanation[0] != "keyword match" {
		t.Errorf("Explanation = %v", first.Explanation)
	}
}

func TestTopResultsEmpty(t *testing.T) {
	r := New(memory.NewStore(), "t:")

	top, err := r.TopResults(context.Background(), "missing", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(top) != 0 {
		t.Errorf("got %d results, want 0", len(top))
	}

	top, err = r.TopResults(context.Background(), "missing", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if top == nil || len(top) != 0 {
		t.Errorf("want empty non-nil slice, got %v", top)
	}
}
