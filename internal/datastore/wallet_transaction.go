package datastore

import (
	"context"
	"prizewheel/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableWalletTransaction(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.WalletTransaction)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.WalletTransaction)(nil)).Index("index_wallet_transaction_user_id").IfNotExists().Column("user_id").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.WalletTransaction)(nil)).Index("index_wallet_transaction_payment_ref").IfNotExists().Column("payment_ref").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func InsertWalletTransaction(ctx context.Context, db bun.IDB, transaction *models.WalletTransaction) error {
	_, err := db.NewInsert().Model(transaction).Exec(ctx)
	return err
}

func GetWalletTransactionsByUserID(ctx context.Context, db *bun.DB, userID string, limit int) ([]models.WalletTransaction, error) {
	var transactions []models.WalletTransaction
	err := db.NewSelect().Model(&transactions).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

func FindWalletTransactionByPaymentRef(ctx context.Context, db *bun.DB, paymentRef string) (*models.WalletTransaction, error) {
	var transaction models.WalletTransaction
	err := db.NewSelect().Model(&transaction).Where("payment_ref = ?", paymentRef).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}
