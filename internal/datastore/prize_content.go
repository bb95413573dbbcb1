package datastore

import (
	"context"
	"prizewheel/internal/models"

	"github.com/uptrace/bun"
)

func CreateTablePrizeContent(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.PrizeContent)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.PrizeContent)(nil)).Index("index_prize_content_prize_id").Unique().IfNotExists().Column("prize_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func FindPrizeContentByPrizeID(ctx context.Context, db *bun.DB, prizeID int) (*models.PrizeContent, error) {
	var content models.PrizeContent
	err := db.NewSelect().Model(&content).Where("prize_id = ?", prizeID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &content, nil
}

func GetPrizeContentsByPrizeIDs(ctx context.Context, db *bun.DB, prizeIDs []int) ([]models.PrizeContent, error) {
	var contents []models.PrizeContent
	err := db.NewSelect().Model(&contents).Where("prize_id IN (?)", bun.In(prizeIDs)).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return contents, nil
}

func InsertPrizeContent(ctx context.Context, db *bun.DB, content *models.PrizeContent) error {
	_, err := db.NewInsert().Model(content).On("CONFLICT (prize_id) DO UPDATE").
		Set("kind = EXCLUDED.kind").
		Set("payload = EXCLUDED.payload").
		Set("payload_basic = EXCLUDED.payload_basic").
		Set("payload_gold = EXCLUDED.payload_gold").
		Set("payload_vip = EXCLUDED.payload_vip").
		Exec(ctx)
	return err
}
