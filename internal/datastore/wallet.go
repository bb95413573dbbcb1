package datastore

import (
	"context"
	"database/sql"
	"time"

	"prizewheel/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableWallet(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Wallet)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Wallet)(nil)).Index("index_wallet_user_id").Unique().IfNotExists().Column("user_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func FindWalletByUserID(ctx context.Context, db *bun.DB, userID string) (*models.Wallet, error) {
	var wallet models.Wallet
	err := db.NewSelect().Model(&wallet).Where("user_id = ?", userID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

func CreateWallet(ctx context.Context, db *bun.DB, wallet *models.Wallet) (*models.Wallet, error) {
	_, err := db.NewInsert().Model(wallet).On("CONFLICT (user_id) DO NOTHING").Exec(ctx)
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

// DebitWalletBalance decrements the balance only when it still covers the
// amount. Two concurrent spins can both pass a prior read of the balance, so
// the comparison has to happen inside the UPDATE itself; RETURNING hands the
// post-debit balance back so callers never report a stale one.
func DebitWalletBalance(ctx context.Context, db bun.IDB, walletID int, amount models.Cents) (models.Cents, bool, error) {
	var balance int64
	err := db.NewUpdate().Model((*models.Wallet)(nil)).
		Set("balance_cents = balance_cents - ?", int64(amount)).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", walletID).
		Where("balance_cents >= ?", int64(amount)).
		Returning("balance_cents").
		Scan(ctx, &balance)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return models.Cents(balance), true, nil
}

func CreditWalletBalance(ctx context.Context, db bun.IDB, walletID int, amount models.Cents) error {
	_, err := db.NewUpdate().Model((*models.Wallet)(nil)).
		Set("balance_cents = balance_cents + ?", int64(amount)).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", walletID).
		Exec(ctx)
	return err
}
