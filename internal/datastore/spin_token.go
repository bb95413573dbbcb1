package datastore

import (
	"context"
	"time"

	"prizewheel/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableSpinToken(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.SpinToken)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.SpinToken)(nil)).Index("index_spin_token_token").Unique().IfNotExists().Column("token").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func FindSpinToken(ctx context.Context, db *bun.DB, token string) (*models.SpinToken, error) {
	var spinToken models.SpinToken
	err := db.NewSelect().Model(&spinToken).Where("token = ?", token).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &spinToken, nil
}

func InsertSpinToken(ctx context.Context, db bun.IDB, spinToken *models.SpinToken) error {
	_, err := db.NewInsert().Model(spinToken).Exec(ctx)
	return err
}

// RedeemSpinToken flips the used flag only when it is still clear, so a token
// replayed concurrently burns exactly once.
func RedeemSpinToken(ctx context.Context, db bun.IDB, tokenID int) (bool, error) {
	res, err := db.NewUpdate().Model((*models.SpinToken)(nil)).
		Set("used = ?", true).
		Set("used_at = ?", time.Now()).
		Where("id = ?", tokenID).
		Where("used = ?", false).
		Exec(ctx)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}
