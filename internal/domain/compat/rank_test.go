package compat

import (
	"testing"

	"github.com/google/uuid"
)

func scored(score float64) Recommendation {
	return UserRecommendation(uuid.New(), Result{Score: score})
}

func TestRank_ThresholdLaw(t *testing.T) {
	items := []Recommendation{scored(0.9), scored(0.29), scored(0.3), scored(0.1)}

	out, total := Rank(items, DefaultMinScore, DefaultMaxResults)
	if total != 2 || len(out) != 2 {
		t.Fatalf("expected 2 results, got %d", len(out))
	}
	for _, it := range out {
		if it.Score < DefaultMinScore {
			t.Fatalf("result below threshold: %v", it.Score)
		}
	}
}

func TestRank_DescendingWithStableTies(t *testing.T) {
	first := UserRecommendation(uuid.New(), Result{Score: 0.5})
	second := UserRecommendation(uuid.New(), Result{Score: 0.5})
	items := []Recommendation{scored(0.4), first, second, scored(0.8)}

	out, _ := Rank(items, 0, 10)
	for i := 1; i < len(out); i++ {
		if out[i].Score > out[i-1].Score {
			t.Fatalf("scores not non-increasing at %d: %v > %v", i, out[i].Score, out[i-1].Score)
		}
	}
	if out[1].TargetUserID != first.TargetUserID || out[2].TargetUserID != second.TargetUserID {
		t.Fatalf("tie order not stable")
	}
}

func TestRank_TruncationLaw(t *testing.T) {
	items := make([]Recommendation, 0, 15)
	for i := 0; i < 15; i++ {
		items = append(items, scored(0.5))
	}

	out, total := Rank(items, DefaultMinScore, DefaultMaxResults)
	if len(out) != 10 || total != 10 {
		t.Fatalf("expected exactly 10 results and total_found=10, got %d/%d", len(out), total)
	}
}

func TestRank_EmptyInput(t *testing.T) {
	out, total := Rank(nil, DefaultMinScore, DefaultMaxResults)
	if len(out) != 0 || total != 0 {
		t.Fatalf("expected empty result, got %d/%d", len(out), total)
	}
}

func TestRank_DefaultsMaxResults(t *testing.T) {
	items := make([]Recommendation, 0, 12)
	for i := 0; i < 12; i++ {
		items = append(items, scored(0.9))
	}
	out, _ := Rank(items, 0.3, 0)
	if len(out) != DefaultMaxResults {
		t.Fatalf("expected default cap of %d, got %d", DefaultMaxResults, len(out))
	}
}
