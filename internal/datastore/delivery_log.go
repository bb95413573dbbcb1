package datastore

import (
	"context"
	"prizewheel/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableDeliveryLog(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.DeliveryLog)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.DeliveryLog)(nil)).Index("index_delivery_log_spin_id").IfNotExists().Column("spin_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func InsertDeliveryLog(ctx context.Context, db *bun.DB, log *models.DeliveryLog) error {
	_, err := db.NewInsert().Model(log).Exec(ctx)
	return err
}
