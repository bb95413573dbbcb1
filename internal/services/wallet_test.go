package services

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"prizewheel/internal/datastore"
	"prizewheel/internal/models"
	"prizewheel/internal/pkg/payment"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newWalletTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	for _, create := range []func(context.Context, *bun.DB) error{
		datastore.CreateTableWallet,
		datastore.CreateTableWalletTransaction,
		datastore.CreateTableSpinToken,
	} {
		if err := create(ctx, db); err != nil {
			t.Fatalf("create table: %v", err)
		}
	}

	return db
}

func TestRecordLegacyTokenPurchase(t *testing.T) {
	db := newWalletTestDB(t)
	ctx := context.Background()

	wallet := &models.Wallet{UserID: "user-1", Email: "user-1@example.com", BalanceCents: 2000, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	if _, err := datastore.CreateWallet(ctx, db, wallet); err != nil {
		t.Fatalf("create wallet: %v", err)
	}

	service := &ServiceWallet{postgresDB: db}
	session := &payment.CheckoutSession{ID: "cs_legacy_1", Paid: true, AmountCents: 3000, Tier: "gold"}

	result, err := service.recordLegacyTokenPurchase(ctx, &models.UserFromAuth{ID: "user-1"}, session, wallet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Verified || result.SpinToken == "" {
		t.Fatalf("expected a minted token, got %+v", result)
	}
	if result.NewBalanceCents != 2000 {
		t.Fatalf("legacy purchase touched the balance: %d", result.NewBalanceCents)
	}

	token, err := datastore.FindSpinToken(ctx, db, result.SpinToken)
	if err != nil {
		t.Fatalf("minted token not found: %v", err)
	}
	if token.Tier != models.TierGold || token.Used {
		t.Fatalf("token minted wrong: %+v", token)
	}

	// the ledger row keys replay detection on the session id
	transaction, err := datastore.FindWalletTransactionByPaymentRef(ctx, db, "cs_legacy_1")
	if err != nil {
		t.Fatalf("ledger row not found: %v", err)
	}
	if transaction.AmountCents != 0 || transaction.Type != models.WalletTransactionTypeTokenPurchase {
		t.Fatalf("ledger row wrong: %+v", transaction)
	}
}

func TestRecordLegacyTokenPurchaseRejectsBadTier(t *testing.T) {
	db := newWalletTestDB(t)
	ctx := context.Background()

	service := &ServiceWallet{postgresDB: db}
	session := &payment.CheckoutSession{ID: "cs_legacy_2", Paid: true, AmountCents: 3000, Tier: "platinum"}

	wallet := &models.Wallet{ID: 1, UserID: "user-1"}
	if _, err := service.recordLegacyTokenPurchase(ctx, &models.UserFromAuth{ID: "user-1"}, session, wallet); err == nil {
		t.Fatal("expected invalid tier to be rejected")
	}
}
