package datastore

import (
	"context"
	"errors"
	"testing"
	"time"

	"prizewheel/internal/models"

	"github.com/uptrace/bun"
)

func insertTestWallet(t *testing.T, db *bun.DB, userID string, balance models.Cents) *models.Wallet {
	t.Helper()

	wallet := &models.Wallet{
		UserID:       userID,
		Email:        userID + "@example.com",
		BalanceCents: balance,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if _, err := CreateWallet(context.Background(), db, wallet); err != nil {
		t.Fatalf("create wallet: %v", err)
	}
	return wallet
}

func TestDebitWalletBalanceNeverGoesNegative(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	wallet := insertTestWallet(t, db, "user-1", 1000)

	_, debited, err := DebitWalletBalance(ctx, db, wallet.ID, 1500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if debited {
		t.Fatal("debit should fail when the balance does not cover the amount")
	}

	stored, err := FindWalletByUserID(ctx, db, "user-1")
	if err != nil {
		t.Fatalf("find wallet: %v", err)
	}
	if stored.BalanceCents != 1000 {
		t.Fatalf("balance changed on failed debit: %d", stored.BalanceCents)
	}

	balance, debited, err := DebitWalletBalance(ctx, db, wallet.ID, 1000)
	if err != nil || !debited {
		t.Fatalf("debit failed: debited=%v err=%v", debited, err)
	}
	if balance != 0 {
		t.Fatalf("got balance %d, want 0", balance)
	}

	_, debited, err = DebitWalletBalance(ctx, db, wallet.ID, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if debited {
		t.Fatal("debit below zero should fail")
	}
}

func TestDebitWalletBalanceReturnsPostDebitBalance(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	wallet := insertTestWallet(t, db, "user-1", 5000)

	// a top-up lands after the caller's last read of the wallet
	if err := CreditWalletBalance(ctx, db, wallet.ID, 1000); err != nil {
		t.Fatalf("credit: %v", err)
	}

	balance, debited, err := DebitWalletBalance(ctx, db, wallet.ID, 1500)
	if err != nil || !debited {
		t.Fatalf("debit failed: debited=%v err=%v", debited, err)
	}
	if balance != 4500 {
		t.Fatalf("got balance %d, want 4500", balance)
	}
}

var errInsufficient = errors.New("insufficient")

// runs the same debit + ledger + spin transaction the spin service commits
func spinTx(ctx context.Context, db *bun.DB, wallet *models.Wallet, token string, cost models.Cents) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, debited, err := DebitWalletBalance(ctx, tx, wallet.ID, cost)
		if err != nil {
			return err
		}
		if !debited {
			return errInsufficient
		}

		err = InsertWalletTransaction(ctx, tx, &models.WalletTransaction{
			WalletID:    wallet.ID,
			UserID:      wallet.UserID,
			AmountCents: -cost,
			Type:        models.WalletTransactionTypeSpin,
			CreatedAt:   time.Now(),
		})
		if err != nil {
			return err
		}

		return InsertSpin(ctx, tx, &models.Spin{
			UserID:      wallet.UserID,
			UserEmail:   wallet.Email,
			PrizeID:     1,
			Tier:        models.TierBasic,
			AmountCents: cost,
			Token:       token,
			Status:      models.SpinStatusPending,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		})
	})
}

func countRows(t *testing.T, db *bun.DB, model any) int {
	t.Helper()
	count, err := db.NewSelect().Model(model).Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	return count
}

func TestSpinTransactionIsAtomic(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	wallet := insertTestWallet(t, db, "user-1", 2000)

	if err := spinTx(ctx, db, wallet, "spin-1", 1500); err != nil {
		t.Fatalf("spin tx: %v", err)
	}

	if got := countRows(t, db, (*models.Spin)(nil)); got != 1 {
		t.Fatalf("got %d spins, want 1", got)
	}
	if got := countRows(t, db, (*models.WalletTransaction)(nil)); got != 1 {
		t.Fatalf("got %d ledger rows, want 1", got)
	}

	// second spin cannot afford the cost: nothing commits
	if err := spinTx(ctx, db, wallet, "spin-2", 1500); err != errInsufficient {
		t.Fatalf("got %v, want errInsufficient", err)
	}

	if got := countRows(t, db, (*models.Spin)(nil)); got != 1 {
		t.Fatalf("rejected spin left a spin row: %d", got)
	}
	if got := countRows(t, db, (*models.WalletTransaction)(nil)); got != 1 {
		t.Fatalf("rejected spin left a ledger row: %d", got)
	}

	stored, err := FindWalletByUserID(ctx, db, "user-1")
	if err != nil {
		t.Fatalf("find wallet: %v", err)
	}
	if stored.BalanceCents != 500 {
		t.Fatalf("got balance %d, want 500", stored.BalanceCents)
	}
}
