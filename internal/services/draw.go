package services

import (
	"prizewheel/internal/models"

	"github.com/mroth/weightedrand/v2"
)

// PickPrize selects one candidate with probability weight/totalWeight for the
// tier. Zero-weight candidates are never selected; an empty candidate set or a
// zero total weight is ErrNoPrizesAvailable and the caller must reject the
// spin before touching the wallet.
func PickPrize(candidates []models.Prize, tier models.Tier) (*models.Prize, error) {
	choices := make([]weightedrand.Choice[int, int], 0, len(candidates))
	for i, prize := range candidates {
		weight := prize.WeightFor(tier)
		if weight <= 0 {
			continue
		}
		choices = append(choices, weightedrand.NewChoice(i, weight))
	}

	chooser, err := weightedrand.NewChooser(choices...)
	if err != nil {
		return nil, ErrNoPrizesAvailable
	}

	prize := candidates[chooser.Pick()]
	return &prize, nil
}

// FilterWonPrizes drops prizes the user already won, unless that would leave
// nothing to win, in which case the full candidate set becomes eligible again
// and repeat wins are allowed.
func FilterWonPrizes(candidates []models.Prize, wonPrizeIDs []int) []models.Prize {
	if len(wonPrizeIDs) == 0 {
		return candidates
	}

	won := make(map[int]bool, len(wonPrizeIDs))
	for _, id := range wonPrizeIDs {
		won[id] = true
	}

	remaining := make([]models.Prize, 0, len(candidates))
	for _, prize := range candidates {
		if !won[prize.ID] {
			remaining = append(remaining, prize)
		}
	}

	if len(remaining) == 0 {
		return candidates
	}
	return remaining
}
