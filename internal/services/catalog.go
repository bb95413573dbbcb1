package services

import (
	"context"
	"database/sql"
	"fmt"

	"prizewheel/internal/datastore"
	"prizewheel/internal/models"
	"prizewheel/internal/pkg/caching"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceCatalog struct {
	container  *do.Injector
	redisDB    redis.UniversalClient
	postgresDB *bun.DB
	cache      caching.Cache
}

func NewServiceCatalog(container *do.Injector) (*ServiceCatalog, error) {
	db, err := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
	if err != nil {
		return nil, err
	}

	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceCatalog{container, db, postgresDB, cache}, nil
}

func (service *ServiceCatalog) GetActivePrizes(ctx context.Context) ([]models.Prize, error) {
	callback := func() ([]models.Prize, error) {
		prizes, err := datastore.GetActivePrizes(ctx, service.postgresDB)
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return prizes, err
	}

	return caching.UseCache(ctx, service.cache, DBKeyActivePrizes(), CACHE_TTL_1_MIN, callback)
}

// GetActivePrizesForTier keeps only prizes with a positive weight for the tier.
func (service *ServiceCatalog) GetActivePrizesForTier(ctx context.Context, tier models.Tier) ([]models.Prize, error) {
	prizes, err := service.GetActivePrizes(ctx)
	if err != nil {
		return nil, err
	}

	eligible := make([]models.Prize, 0, len(prizes))
	for _, prize := range prizes {
		if prize.WeightFor(tier) > 0 {
			eligible = append(eligible, prize)
		}
	}
	return eligible, nil
}

// CandidatesForUser applies the already-won filter on top of the tier catalog.
// The filter is keyed on prize id across every tier; winning a prize at basic
// also removes it from a later gold draw. The won set is cached briefly and
// invalidated on every committed spin.
func (service *ServiceCatalog) CandidatesForUser(ctx context.Context, userID string, tier models.Tier) ([]models.Prize, error) {
	eligible, err := service.GetActivePrizesForTier(ctx, tier)
	if err != nil {
		return nil, err
	}

	callback := func() ([]int, error) {
		prizeIDs, err := datastore.GetWonPrizeIDsByUserID(ctx, service.postgresDB, userID)
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return prizeIDs, err
	}

	wonPrizeIDs, err := caching.UseCache(ctx, service.cache, DBKeyUserWonPrizes(userID), CACHE_TTL_15_SECONDS, callback)
	if err != nil {
		return nil, err
	}

	return FilterWonPrizes(eligible, wonPrizeIDs), nil
}

func (service *ServiceCatalog) InvalidateWonPrizes(ctx context.Context, userID string) error {
	return service.cache.Delete(ctx, DBKeyUserWonPrizes(userID))
}

// ValidateCatalog reports active, positively-weighted prizes whose delivery
// payload is missing, so the gap surfaces at catalog-edit time instead of
// delivery time.
func (service *ServiceCatalog) ValidateCatalog(ctx context.Context) ([]string, error) {
	prizes, err := datastore.GetActivePrizes(ctx, service.postgresDB)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	var problems []string
	for _, prize := range prizes {
		if prize.WeightBasic <= 0 && prize.WeightGold <= 0 && prize.WeightVIP <= 0 {
			continue
		}

		content, err := datastore.FindPrizeContentByPrizeID(ctx, service.postgresDB, prize.ID)
		if err == sql.ErrNoRows || content == nil {
			problems = append(problems, fmt.Sprintf("prize %d (%s) has no delivery content", prize.ID, prize.Name))
			continue
		}
		if err != nil {
			return nil, err
		}

		for _, tier := range models.Tiers() {
			if prize.WeightFor(tier) > 0 && content.PayloadFor(tier) == "" {
				problems = append(problems, fmt.Sprintf("prize %d (%s) has no payload for tier %s", prize.ID, prize.Name, tier))
			}
		}
	}

	return problems, nil
}

func (service *ServiceCatalog) InvalidateCatalogCache(ctx context.Context) error {
	return service.cache.Delete(ctx, DBKeyActivePrizes())
}
