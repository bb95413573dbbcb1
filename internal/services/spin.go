package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"prizewheel/internal/datastore"
	"prizewheel/internal/models"
	"prizewheel/internal/pkg/caching"

	"github.com/go-redsync/redsync/v4"
	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

// InsufficientBalanceError carries enough detail for the client to show what
// a top-up needs to cover.
type InsufficientBalanceError struct {
	RequiredCents models.Cents
	BalanceCents  models.Cents
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: required %.2f, balance %.2f", e.RequiredCents.Dollars(), e.BalanceCents.Dollars())
}

type ServiceSpin struct {
	container  *do.Injector
	redisDB    redis.UniversalClient
	rs         *redsync.Redsync
	postgresDB *bun.DB
	cache      caching.Cache

	serviceConfig   *ServiceConfig
	serviceCatalog  *ServiceCatalog
	serviceWallet   *ServiceWallet
	serviceDelivery *ServiceDelivery
}

func NewServiceSpin(container *do.Injector) (*ServiceSpin, error) {
	db, err := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
	if err != nil {
		return nil, err
	}

	rs, err := do.Invoke[*redsync.Redsync](container)
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

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	serviceCatalog, err := do.Invoke[*ServiceCatalog](container)
	if err != nil {
		return nil, err
	}

	serviceWallet, err := do.Invoke[*ServiceWallet](container)
	if err != nil {
		return nil, err
	}

	serviceDelivery, err := do.Invoke[*ServiceDelivery](container)
	if err != nil {
		return nil, err
	}

	return &ServiceSpin{container, db, rs, postgresDB, cache, serviceConfig, serviceCatalog, serviceWallet, serviceDelivery}, nil
}

func (service *ServiceSpin) CostFor(ctx context.Context, tier models.Tier) models.Cents {
	switch tier {
	case models.TierBasic:
		cost, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_SPIN_COST_BASIC_CENTS, DEFAULT_SPIN_COST_BASIC_CENTS)
		return models.Cents(cost)
	case models.TierGold:
		cost, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_SPIN_COST_GOLD_CENTS, DEFAULT_SPIN_COST_GOLD_CENTS)
		return models.Cents(cost)
	case models.TierVIP:
		cost, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_SPIN_COST_VIP_CENTS, DEFAULT_SPIN_COST_VIP_CENTS)
		return models.Cents(cost)
	}
	return 0
}

// Spin runs the paid wheel: balance check, weighted draw, then debit + ledger
// row + spin row in one transaction. Delivery runs after commit and never
// rolls the spin back.
func (service *ServiceSpin) Spin(ctx context.Context, user *models.UserFromAuth, tier models.Tier) (*models.SpinResult, error) {
	if !tier.Valid() {
		return nil, errorx.Wrap(ErrInvalidTier, errorx.Invalid)
	}

	mutex := service.rs.NewMutex(LockKeyUserSpin(user.ID))
	if err := mutex.TryLock(); err != nil {
		return nil, errorx.Wrap(ErrUserSpinLock, errorx.Invalid)
	}
	// nolint:errcheck
	defer mutex.Unlock()

	cost := service.CostFor(ctx, tier)

	wallet, err := service.serviceWallet.GetOrCreateWallet(ctx, user)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	if wallet.BalanceCents < cost {
		return nil, errorx.Wrap(&InsufficientBalanceError{
			RequiredCents: cost,
			BalanceCents:  wallet.BalanceCents,
		}, errorx.Validation)
	}

	prize, content, err := service.draw(ctx, user, tier)
	if err != nil {
		return nil, err
	}

	spin := &models.Spin{
		UserID:      user.ID,
		UserEmail:   user.Email,
		PrizeID:     prize.ID,
		Tier:        tier,
		AmountCents: cost,
		Token:       uuid.NewString(),
		Status:      models.SpinStatusPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	var newBalance models.Cents
	err = service.postgresDB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		balance, debited, err := datastore.DebitWalletBalance(ctx, tx, wallet.ID, cost)
		if err != nil {
			return err
		}
		if !debited {
			// a concurrent spin won the race since the read above
			return &InsufficientBalanceError{RequiredCents: cost, BalanceCents: wallet.BalanceCents}
		}
		newBalance = balance

		err = datastore.InsertWalletTransaction(ctx, tx, &models.WalletTransaction{
			WalletID:    wallet.ID,
			UserID:      user.ID,
			AmountCents: -cost,
			Type:        models.WalletTransactionTypeSpin,
			Description: fmt.Sprintf("spin at tier %s", tier),
			CreatedAt:   time.Now(),
		})
		if err != nil {
			return err
		}

		return datastore.InsertSpin(ctx, tx, spin)
	})
	if err != nil {
		if insufficient, ok := err.(*InsufficientBalanceError); ok {
			return nil, errorx.Wrap(insufficient, errorx.Validation)
		}
		return nil, errorx.Wrap(err, errorx.Service)
	}

	service.invalidateWonPrizes(ctx, user.ID)
	service.dispatch(spin, prize, content)

	return service.result(newBalance, spin, prize, content), nil
}

// SpinWithToken is the legacy prepaid path: the tier cost was paid up front
// for a single-use token, so the wallet is never touched.
func (service *ServiceSpin) SpinWithToken(ctx context.Context, user *models.UserFromAuth, token string) (*models.SpinResult, error) {
	mutex := service.rs.NewMutex(LockKeyUserSpin(user.ID))
	if err := mutex.TryLock(); err != nil {
		return nil, errorx.Wrap(ErrUserSpinLock, errorx.Invalid)
	}
	// nolint:errcheck
	defer mutex.Unlock()

	spinToken, err := datastore.FindSpinToken(ctx, service.postgresDB, token)
	if err == sql.ErrNoRows {
		return nil, errorx.Wrap(fmt.Errorf("unknown token"), errorx.NotExist)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	if spinToken.Used {
		return nil, errorx.Wrap(ErrTokenAlreadyUsed, errorx.Validation)
	}

	prize, content, err := service.draw(ctx, user, spinToken.Tier)
	if err != nil {
		return nil, err
	}

	spin := &models.Spin{
		UserID:      user.ID,
		UserEmail:   user.Email,
		PrizeID:     prize.ID,
		Tier:        spinToken.Tier,
		AmountCents: spinToken.AmountCents,
		Token:       spinToken.Token,
		Status:      models.SpinStatusPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	err = service.postgresDB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		redeemed, err := datastore.RedeemSpinToken(ctx, tx, spinToken.ID)
		if err != nil {
			return err
		}
		if !redeemed {
			return ErrTokenAlreadyUsed
		}

		return datastore.InsertSpin(ctx, tx, spin)
	})
	if err != nil {
		if err == ErrTokenAlreadyUsed {
			return nil, errorx.Wrap(err, errorx.Validation)
		}
		return nil, errorx.Wrap(err, errorx.Service)
	}

	service.invalidateWonPrizes(ctx, user.ID)
	service.dispatch(spin, prize, content)

	wallet, err := service.serviceWallet.GetOrCreateWallet(ctx, user)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return service.result(wallet.BalanceCents, spin, prize, content), nil
}

// draw loads the candidate catalog for the user and tier and runs the
// weighted pick. No side effects; safe to call before any mutation.
func (service *ServiceSpin) draw(ctx context.Context, user *models.UserFromAuth, tier models.Tier) (*models.Prize, *models.PrizeContent, error) {
	candidates, err := service.serviceCatalog.CandidatesForUser(ctx, user.ID, tier)
	if err != nil {
		return nil, nil, errorx.Wrap(err, errorx.Service)
	}

	prize, err := PickPrize(candidates, tier)
	if err != nil {
		return nil, nil, errorx.Wrap(err, errorx.Validation)
	}

	// a missing payload is a delivery-time failure, not a draw-time rejection
	content, err := datastore.FindPrizeContentByPrizeID(ctx, service.postgresDB, prize.ID)
	if err != nil && err != sql.ErrNoRows {
		return nil, nil, errorx.Wrap(err, errorx.Service)
	}

	return prize, content, nil
}

// a committed spin changes the user's won set; drop the cached copy so the
// next draw filters on fresh data
func (service *ServiceSpin) invalidateWonPrizes(ctx context.Context, userID string) {
	if err := service.serviceCatalog.InvalidateWonPrizes(ctx, userID); err != nil {
		log.Println("invalidate won prizes cache:", err)
	}
}

func (service *ServiceSpin) dispatch(spin *models.Spin, prize *models.Prize, content *models.PrizeContent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if err := service.serviceDelivery.Dispatch(ctx, spin, prize, content); err != nil {
			log.Println("delivery dispatch failed:", "spin:", spin.ID, "err:", err)
		}
	}()
}

func (service *ServiceSpin) result(newBalance models.Cents, spin *models.Spin, prize *models.Prize, content *models.PrizeContent) *models.SpinResult {
	won := &models.WonPrize{
		ID:    prize.ID,
		Name:  prize.Name,
		Emoji: prize.Emoji,
		Type:  prize.Type,
	}

	// manual prizes hold their payload back until an admin fulfills them
	if prize.Type == models.PrizeTypeAutomatic && content != nil {
		won.DeliveryContent = content.PayloadFor(spin.Tier)
	}

	return &models.SpinResult{
		Prize:           won,
		NewBalance:      newBalance.Dollars(),
		NewBalanceCents: newBalance,
	}
}
