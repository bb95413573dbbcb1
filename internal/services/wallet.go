package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"prizewheel/internal/datastore"
	"prizewheel/internal/models"
	"prizewheel/internal/pkg/caching"
	"prizewheel/internal/pkg/payment"

	"github.com/go-redsync/redsync/v4"
	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceWallet struct {
	container  *do.Injector
	redisDB    redis.UniversalClient
	rs         *redsync.Redsync
	postgresDB *bun.DB
	cache      caching.Cache

	paymentClient payment.Client
}

func NewServiceWallet(container *do.Injector) (*ServiceWallet, error) {
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

	paymentClient, err := do.Invoke[payment.Client](container)
	if err != nil {
		return nil, err
	}

	return &ServiceWallet{container, db, rs, postgresDB, cache, paymentClient}, nil
}

func (service *ServiceWallet) GetOrCreateWallet(ctx context.Context, user *models.UserFromAuth) (*models.Wallet, error) {
	wallet, err := datastore.FindWalletByUserID(ctx, service.postgresDB, user.ID)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	if wallet != nil {
		return wallet, nil
	}

	now := time.Now()
	newWallet := &models.Wallet{
		UserID:       user.ID,
		Email:        user.Email,
		BalanceCents: 0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// insert is ON CONFLICT DO NOTHING, a concurrent create wins harmlessly
	_, err = datastore.CreateWallet(ctx, service.postgresDB, newWallet)
	if err != nil {
		return nil, err
	}

	return datastore.FindWalletByUserID(ctx, service.postgresDB, user.ID)
}

func (service *ServiceWallet) GetWalletTransactions(ctx context.Context, userID string) ([]models.WalletTransaction, error) {
	transactions, err := datastore.GetWalletTransactionsByUserID(ctx, service.postgresDB, userID, WALLET_TRANSACTIONS_PAGE_LIMIT)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return transactions, err
}

type TopupResult struct {
	Verified        bool         `json:"verified"`
	AlreadyCredited bool         `json:"already_credited,omitempty"`
	NewBalance      float64      `json:"new_balance"`
	NewBalanceCents models.Cents `json:"new_balance_cents"`
	AmountCents     models.Cents `json:"amount_cents"`
	SpinToken       string       `json:"spin_token,omitempty"`
}

// VerifyTopup confirms a checkout session with the payment gateway and
// credits the wallet once per session id.
func (service *ServiceWallet) VerifyTopup(ctx context.Context, user *models.UserFromAuth, sessionID string) (*TopupResult, error) {
	mutex := service.rs.NewMutex(LockKeyTopup(sessionID))
	if err := mutex.TryLock(); err != nil {
		return nil, errorx.Wrap(errors.New("topup verification in progress"), errorx.Invalid)
	}
	// nolint:errcheck
	defer mutex.Unlock()

	session, err := service.paymentClient.GetCheckoutSession(sessionID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	if !session.Paid {
		return nil, errorx.Wrap(ErrPaymentNotCompleted, errorx.Validation)
	}

	wallet, err := service.GetOrCreateWallet(ctx, user)
	if err != nil {
		return nil, err
	}

	existing, err := datastore.FindWalletTransactionByPaymentRef(ctx, service.postgresDB, session.ID)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	if existing != nil {
		return &TopupResult{
			Verified:        true,
			AlreadyCredited: true,
			NewBalance:      wallet.BalanceCents.Dollars(),
			NewBalanceCents: wallet.BalanceCents,
			AmountCents:     existing.AmountCents,
		}, nil
	}

	if session.Tier != "" {
		return service.recordLegacyTokenPurchase(ctx, user, session, wallet)
	}

	amount := models.Cents(session.AmountCents)
	err = service.postgresDB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := datastore.CreditWalletBalance(ctx, tx, wallet.ID, amount); err != nil {
			return err
		}

		return datastore.InsertWalletTransaction(ctx, tx, &models.WalletTransaction{
			WalletID:    wallet.ID,
			UserID:      user.ID,
			AmountCents: amount,
			Type:        models.WalletTransactionTypeTopup,
			Description: fmt.Sprintf("wallet topup via checkout session %s", session.ID),
			PaymentRef:  session.ID,
			CreatedAt:   time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	newBalance := wallet.BalanceCents + amount
	return &TopupResult{
		Verified:        true,
		NewBalance:      newBalance.Dollars(),
		NewBalanceCents: newBalance,
		AmountCents:     amount,
	}, nil
}

// recordLegacyTokenPurchase handles checkout sessions from the prepaid flow:
// the payment bought a single-use spin token, so the wallet balance stays put
// and the ledger row carries the payment ref for idempotency.
func (service *ServiceWallet) recordLegacyTokenPurchase(ctx context.Context, user *models.UserFromAuth, session *payment.CheckoutSession, wallet *models.Wallet) (*TopupResult, error) {
	tier := models.Tier(session.Tier)
	if !tier.Valid() {
		return nil, errorx.Wrap(ErrInvalidTier, errorx.Validation)
	}

	token := &models.SpinToken{
		Token:       uuid.NewString(),
		Tier:        tier,
		AmountCents: models.Cents(session.AmountCents),
		CreatedAt:   time.Now(),
	}

	err := service.postgresDB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := datastore.InsertSpinToken(ctx, tx, token); err != nil {
			return err
		}

		return datastore.InsertWalletTransaction(ctx, tx, &models.WalletTransaction{
			WalletID:    wallet.ID,
			UserID:      user.ID,
			AmountCents: 0,
			Type:        models.WalletTransactionTypeTokenPurchase,
			Description: fmt.Sprintf("prepaid %s spin token via checkout session %s", tier, session.ID),
			PaymentRef:  session.ID,
			CreatedAt:   time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	return &TopupResult{
		Verified:        true,
		NewBalance:      wallet.BalanceCents.Dollars(),
		NewBalanceCents: wallet.BalanceCents,
		AmountCents:     models.Cents(session.AmountCents),
		SpinToken:       token.Token,
	}, nil
}
