package services

import (
	"testing"

	"prizewheel/internal/models"
)

func TestPickPrizeRespectsWeights(t *testing.T) {
	candidates := []models.Prize{
		{ID: 1, Name: "Sticker", WeightBasic: 70},
		{ID: 2, Name: "Mug", WeightBasic: 25},
		{ID: 3, Name: "Headphones", WeightBasic: 5},
	}

	const trials = 100_000
	counts := map[int]int{}
	for i := 0; i < trials; i++ {
		prize, err := PickPrize(candidates, models.TierBasic)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		counts[prize.ID]++
	}

	// observed frequency should land within a few points of weight/total
	wants := map[int]float64{1: 0.70, 2: 0.25, 3: 0.05}
	for id, want := range wants {
		got := float64(counts[id]) / trials
		if got < want-0.02 || got > want+0.02 {
			t.Fatalf("prize %d frequency %.3f, want ~%.2f", id, got, want)
		}
	}
}

func TestPickPrizeSkipsZeroWeight(t *testing.T) {
	candidates := []models.Prize{
		{ID: 1, Name: "Sticker", WeightBasic: 10, WeightGold: 0},
		{ID: 2, Name: "Mug", WeightBasic: 0, WeightGold: 10},
	}

	for i := 0; i < 1000; i++ {
		prize, err := PickPrize(candidates, models.TierGold)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if prize.ID != 2 {
			t.Fatalf("picked zero-weight prize %d", prize.ID)
		}
	}
}

func TestPickPrizeNoCandidates(t *testing.T) {
	if _, err := PickPrize(nil, models.TierBasic); err != ErrNoPrizesAvailable {
		t.Fatalf("empty set: got %v, want ErrNoPrizesAvailable", err)
	}

	allZero := []models.Prize{
		{ID: 1, WeightBasic: 0},
		{ID: 2, WeightBasic: 0},
	}
	if _, err := PickPrize(allZero, models.TierBasic); err != ErrNoPrizesAvailable {
		t.Fatalf("zero total weight: got %v, want ErrNoPrizesAvailable", err)
	}
}

func TestFilterWonPrizes(t *testing.T) {
	candidates := []models.Prize{{ID: 1}, {ID: 2}, {ID: 3}}

	got := FilterWonPrizes(candidates, nil)
	if len(got) != 3 {
		t.Fatalf("no wins: got %d candidates, want 3", len(got))
	}

	got = FilterWonPrizes(candidates, []int{2})
	if len(got) != 2 {
		t.Fatalf("one win: got %d candidates, want 2", len(got))
	}
	for _, prize := range got {
		if prize.ID == 2 {
			t.Fatalf("won prize 2 still eligible")
		}
	}

	// all won: the full set resets and repeats become possible
	got = FilterWonPrizes(candidates, []int{1, 2, 3})
	if len(got) != 3 {
		t.Fatalf("exhausted set: got %d candidates, want 3", len(got))
	}
}
