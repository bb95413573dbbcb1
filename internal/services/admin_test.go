package services

import (
	"testing"

	"prizewheel/internal/models"
)

func TestIndexContentsByPrizeID(t *testing.T) {
	contents := []models.PrizeContent{
		{ID: 1, PrizeID: 10, Payload: "A"},
		{ID: 2, PrizeID: 20, Payload: "B"},
	}

	byPrize := indexContentsByPrizeID(contents)
	if len(byPrize) != 2 {
		t.Fatalf("got %d entries, want 2", len(byPrize))
	}
	if byPrize[10] == nil || byPrize[10].Payload != "A" {
		t.Fatalf("prize 10 mapped wrong: %+v", byPrize[10])
	}
	if byPrize[20] == nil || byPrize[20].Payload != "B" {
		t.Fatalf("prize 20 mapped wrong: %+v", byPrize[20])
	}
	if byPrize[30] != nil {
		t.Fatal("unknown prize id should map to nil")
	}

	if got := indexContentsByPrizeID(nil); len(got) != 0 {
		t.Fatalf("empty input produced %d entries", len(got))
	}
}
