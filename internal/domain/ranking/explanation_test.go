package ranking

import (
	"reflect"
	"testing"
)

func TestExplain(t *testing.T) {
	tests := []struct {
		name         string
		kw, col, emb float64
		want         []string
	}{
		{"nothing", 0, 0, 0, []string{ReasonKeyword, ReasonColor}},
		{"keyword only", 1, 0, 0, []string{ReasonKeyword, ReasonColor}},
		{"color only", 0, 1, 0, []string{ReasonColor, ReasonKeyword}},
		{"visual only", 0, 0, 1, []string{ReasonVisual, ReasonKeyword}},
		{"all", 1, 1, 1, []string{ReasonVisual, ReasonColor, ReasonKeyword}},
		{"threshold is exclusive", 0.31, 0.3, 0.9, []string{ReasonVisual, ReasonKeyword}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Explain(tt.kw, tt.col, tt.emb)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Explain = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExplain_MinimumDistinct(t *testing.T) {
	values := []float64{0, 0.2, 0.3, 0.31, 0.8, 1}
	for _, kw := range values {
		for _, col := range values {
			for _, emb := range values {
				got := Explain(kw, col, emb)
				if len(got) < 2 {
					t.Fatalf("Explain(%v, %v, %v) = %v, want >= 2 reasons", kw, col, emb, got)
				}
				seen := map[string]bool{}
				for _, r := range got {
					if seen[r] {
						t.Fatalf("Explain(%v, %v, %v) = %v has duplicates", kw, col, emb, got)
					}
					seen[r] = true
				}
			}
		}
	}
}
