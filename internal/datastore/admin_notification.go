package datastore

import (
	"context"
	"time"

	"prizewheel/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableAdminNotification(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.AdminNotification)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.AdminNotification)(nil)).Index("index_admin_notification_status").IfNotExists().Column("status").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func InsertAdminNotification(ctx context.Context, db *bun.DB, notification *models.AdminNotification) error {
	_, err := db.NewInsert().Model(notification).Exec(ctx)
	return err
}

func GetPendingAdminNotifications(ctx context.Context, db *bun.DB) ([]models.AdminNotification, error) {
	var notifications []models.AdminNotification
	err := db.NewSelect().Model(&notifications).
		Where("status = ?", models.AdminNotificationStatusPending).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func UpdateAdminNotificationStatus(ctx context.Context, db *bun.DB, notificationID int, status models.AdminNotificationStatus) error {
	_, err := db.NewUpdate().Model((*models.AdminNotification)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", notificationID).
		Exec(ctx)
	return err
}

func UpdateAdminNotificationStatusBySpinID(ctx context.Context, db *bun.DB, spinID int, status models.AdminNotificationStatus) error {
	_, err := db.NewUpdate().Model((*models.AdminNotification)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now()).
		Where("spin_id = ?", spinID).
		Where("status = ?", models.AdminNotificationStatusPending).
		Exec(ctx)
	return err
}
