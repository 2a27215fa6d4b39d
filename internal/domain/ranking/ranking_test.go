package ranking

import (
	"math"
	"reflect"
	"testing"

	"github.com/fmd-labs/fmd/internal/domain/candidate"
	"github.com/fmd-labs/fmd/internal/domain/termvec"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-4 }

func TestRank_Empty(t *testing.T) {
	got := Rank(nil, Profile{})
	if len(got) != 0 {
		t.Errorf("Rank(nil) = %v, want empty", got)
	}
}

func TestRank_BlueBeatsRed(t *testing.T) {
	items := []candidate.Item{
		{Title: "Blue Minimal UI Kit", Tags: []string{"ui", "minimal", "blue"}, ColorHex: candidate.Ptr("#2563eb")},
		{Title: "Red Icon Pack", Tags: []string{"icon", "red"}, ColorHex: candidate.Ptr("#ef4444")},
	}
	p := Profile{Keywords: []string{"blue", "minimal", "ui"}, DominantColor: candidate.Ptr("#2563eb")}

	got := Rank(items, p)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Title != "Blue Minimal UI Kit" {
		t.Errorf("top = %q", got[0].Title)
	}
	if !(got[0].ScoreOverall > got[1].ScoreOverall) {
		t.Errorf("scores %f <= %f", got[0].ScoreOverall, got[1].ScoreOverall)
	}
	// 0.45*color + 0.45*keyword + 0.10*meta, no image
	if !approx(got[0].ScoreOverall, 0.98) {
		t.Errorf("top overall = %f, want 0.98", got[0].ScoreOverall)
	}
	if got[0].ScoreEmbedding != 0 {
		t.Errorf("embedding score = %f without embedding", got[0].ScoreEmbedding)
	}
}

func TestRank_SortsDescending(t *testing.T) {
	items := []candidate.Item{
		{Title: "Red Poster"},
		{Title: "Blue Logo"},
		{Title: "Blue Poster"},
	}
	got := Rank(items, Profile{Keywords: []string{"blue", "logo"}})

	want := []string{"Blue Logo", "Blue Poster", "Red Poster"}
	for i, w := range want {
		if got[i].Title != w {
			t.Errorf("got[%d] = %q, want %q", i, got[i].Title, w)
		}
	}
}

func TestRank_TiesKeepInputOrder(t *testing.T) {
	items := []candidate.Item{
		{Title: "first"},
		{Title: "second"},
		{Title: "third"},
	}
	got := Rank(items, Profile{Keywords: []string{"blue"}})
	for i, w := range []string{"first", "second", "third"} {
		if got[i].Title != w {
			t.Errorf("got[%d] = %q, want %q", i, got[i].Title, w)
		}
	}
}

func TestRank_NegativeKeywordPenalty(t *testing.T) {
	items := []candidate.Item{
		{Title: "Blue Logo", Tags: []string{"blue"}},
		{Title: "Blue Logo", Tags: []string{"blue", "grunge"}},
	}
	p := Profile{Keywords: []string{"blue", "logo"}, NegativeKeywords: []string{"grunge"}}

	got := Rank(items, p)
	clean, flagged := got[0], got[1]
	if flagged.Tags[len(flagged.Tags)-1] != "grunge" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if !(flagged.ScoreOverall < clean.ScoreOverall) {
		t.Fatalf("flagged %f not below clean %f", flagged.ScoreOverall, clean.ScoreOverall)
	}
	if !approx(flagged.ScoreOverall, clean.ScoreOverall*0.6) {
		t.Errorf("flagged = %f, want 0.6 * %f", flagged.ScoreOverall, clean.ScoreOverall)
	}
}

func TestRank_DuplicateURL(t *testing.T) {
	url := candidate.Ptr("https://shop.example/p/1")
	img := candidate.Ptr("https://img.example/1.png")
	items := []candidate.Item{
		{Title: "Blue", ProductURL: url, ImageURL: img},
		{Title: "Blue", ProductURL: url, ImageURL: img},
	}
	got := Rank(items, Profile{Keywords: []string{"blue"}})
	if len(got) != 2 {
		t.Fatalf("duplicates dropped: len = %d", len(got))
	}
	// only the meta factor applies: a single distinct URL has been seen
	if !approx(got[0].ScoreOverall, 0.55) || !approx(got[1].ScoreOverall, 0.54) {
		t.Errorf("scores = %f, %f, want 0.55, 0.54", got[0].ScoreOverall, got[1].ScoreOverall)
	}
}

func TestRank_DuplicatePenaltiesCompound(t *testing.T) {
	img := candidate.Ptr("https://img.example/1.png")
	items := []candidate.Item{
		{Title: "Blue A", ProductURL: candidate.Ptr("https://x.example/a"), ImageURL: img},
		{Title: "Blue B", ProductURL: candidate.Ptr("https://x.example/b"), ImageURL: img},
		{Title: "Blue A again", ProductURL: candidate.Ptr("https://x.example/a"), ImageURL: img},
	}
	got := Rank(items, Profile{Keywords: []string{"blue"}})

	last := got[2]
	if last.Title != "Blue A again" {
		t.Fatalf("last = %q", last.Title)
	}
	// (0.45 + 0.10*0.9) * 0.9
	if !approx(last.ScoreOverall, 0.486) {
		t.Errorf("overall = %f, want 0.486", last.ScoreOverall)
	}
}

func TestRank_EmbeddingWeights(t *testing.T) {
	items := []candidate.Item{{Title: "Blue Logo", ImageURL: candidate.Ptr("https://img.example/1.png")}}
	p := Profile{Keywords: []string{"blue", "logo"}, Embedding: termvec.Build([]string{"blue", "logo"})}

	got := Rank(items, p)[0]
	// 0.55*1 + 0.20*0 + 0.20*1 + 0.05*1
	if !approx(got.ScoreOverall, 0.8) {
		t.Errorf("overall = %f, want 0.8", got.ScoreOverall)
	}
	if got.ScoreEmbedding != 1 {
		t.Errorf("embedding = %f, want 1", got.ScoreEmbedding)
	}
	want := []string{ReasonVisual, ReasonKeyword}
	if !reflect.DeepEqual(got.Explanation, want) {
		t.Errorf("explanation = %v, want %v", got.Explanation, want)
	}
}

func TestRank_CorruptEmbeddingKeepsEmbeddingWeights(t *testing.T) {
	items := []candidate.Item{{Title: "Blue Logo"}}
	p := Profile{Keywords: []string{"blue"}, Embedding: []byte("{broken")}

	got := Rank(items, p)[0]
	// 0.20*keyword + 0.05*0.8
	if !approx(got.ScoreOverall, 0.24) {
		t.Errorf("overall = %f, want 0.24", got.ScoreOverall)
	}
	if got.ScoreEmbedding != 0 {
		t.Errorf("embedding = %f, want 0", got.ScoreEmbedding)
	}
}

func TestRank_PreservesFieldsAndExplains(t *testing.T) {
	item := candidate.Item{
		Title:       "Minimal Icon Set",
		ImageURL:    candidate.Ptr("https://img.example/icon.png"),
		ProductURL:  candidate.Ptr("https://shop.example/icons"),
		Price:       candidate.Ptr(12.5),
		ColorHex:    candidate.Ptr("#111827"),
		Tags:        []string{"icon", "minimal"},
		SearchRunID: "run-1",
	}
	got := Rank([]candidate.Item{item}, Profile{Keywords: []string{"zzz"}})[0]

	if !reflect.DeepEqual(got.Item, item) {
		t.Errorf("item changed: %+v", got.Item)
	}
	if len(got.Explanation) < 2 {
		t.Errorf("explanation = %v, want >= 2 entries", got.Explanation)
	}
}

func TestRank_ScoresRounded(t *testing.T) {
	items := []candidate.Item{{Title: "Blue", ColorHex: candidate.Ptr("#123456")}}
	p := Profile{Keywords: []string{"blue", "logo", "ui"}, DominantColor: candidate.Ptr("#654321")}

	got := Rank(items, p)[0]
	for _, s := range []float64{got.ScoreOverall, got.ScoreKeyword, got.ScoreColor, got.ScoreEmbedding} {
		if s != math.Round(s*1e4)/1e4 {
			t.Errorf("score %v not rounded to 4 decimals", s)
		}
	}
}
