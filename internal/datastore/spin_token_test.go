package datastore

import (
	"context"
	"testing"
	"time"

	"prizewheel/internal/models"

	"github.com/uptrace/bun"
)

func TestRedeemSpinTokenBurnsOnce(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	token := &models.SpinToken{
		Token:       "legacy-token-1",
		Tier:        models.TierGold,
		AmountCents: 3000,
		CreatedAt:   time.Now(),
	}
	if err := InsertSpinToken(ctx, db, token); err != nil {
		t.Fatalf("insert token: %v", err)
	}

	found, err := FindSpinToken(ctx, db, "legacy-token-1")
	if err != nil {
		t.Fatalf("find token: %v", err)
	}
	if found.Used {
		t.Fatal("fresh token already marked used")
	}

	redeemed, err := RedeemSpinToken(ctx, db, found.ID)
	if err != nil || !redeemed {
		t.Fatalf("first redemption failed: redeemed=%v err=%v", redeemed, err)
	}

	redeemed, err = RedeemSpinToken(ctx, db, found.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if redeemed {
		t.Fatal("used token redeemed twice")
	}
}

func TestTokenSpinTransactionRollsBackOnReplay(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	token := &models.SpinToken{
		Token:       "legacy-token-1",
		Tier:        models.TierBasic,
		AmountCents: 1500,
		CreatedAt:   time.Now(),
	}
	if err := InsertSpinToken(ctx, db, token); err != nil {
		t.Fatalf("insert token: %v", err)
	}

	redeemTx := func(spinToken string) error {
		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			redeemed, err := RedeemSpinToken(ctx, tx, token.ID)
			if err != nil {
				return err
			}
			if !redeemed {
				return errInsufficient
			}

			return InsertSpin(ctx, tx, &models.Spin{
				UserID:      "user-1",
				UserEmail:   "user-1@example.com",
				PrizeID:     1,
				Tier:        token.Tier,
				AmountCents: token.AmountCents,
				Token:       spinToken,
				Status:      models.SpinStatusPending,
				CreatedAt:   time.Now(),
				UpdatedAt:   time.Now(),
			})
		})
	}

	if err := redeemTx("spin-1"); err != nil {
		t.Fatalf("first redemption tx: %v", err)
	}
	if got := countRows(t, db, (*models.Spin)(nil)); got != 1 {
		t.Fatalf("got %d spins, want 1", got)
	}

	if err := redeemTx("spin-2"); err == nil {
		t.Fatal("replayed token should not commit")
	}
	if got := countRows(t, db, (*models.Spin)(nil)); got != 1 {
		t.Fatalf("replayed token left a spin row: %d", got)
	}
}
