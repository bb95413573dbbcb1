package datastore

import (
	"context"
	"prizewheel/internal/models"

	"github.com/uptrace/bun"
)

func CreateTablePrize(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Prize)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Prize)(nil)).Index("index_prize_active").IfNotExists().Column("active").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func GetActivePrizes(ctx context.Context, db *bun.DB) ([]models.Prize, error) {
	var prizes []models.Prize
	err := db.NewSelect().Model(&prizes).
		Where("active = ?", true).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return prizes, nil
}

func FindPrizeByID(ctx context.Context, db *bun.DB, prizeID int) (*models.Prize, error) {
	var prize models.Prize
	err := db.NewSelect().Model(&prize).Where("id = ?", prizeID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &prize, nil
}

func InsertPrize(ctx context.Context, db *bun.DB, prize *models.Prize) error {
	_, err := db.NewInsert().Model(prize).Exec(ctx)
	return err
}
