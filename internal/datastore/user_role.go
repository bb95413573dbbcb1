package datastore

import (
	"context"
	"prizewheel/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableUserRole(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.UserRole)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.UserRole)(nil)).Index("index_user_role_user_id_role").Unique().IfNotExists().Column("user_id", "role").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func UserHasRole(ctx context.Context, db *bun.DB, userID string, role string) (bool, error) {
	count, err := db.NewSelect().Model((*models.UserRole)(nil)).
		Where("user_id = ?", userID).
		Where("role = ?", role).
		Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func InsertUserRole(ctx context.Context, db *bun.DB, userRole *models.UserRole) error {
	_, err := db.NewInsert().Model(userRole).On("CONFLICT (user_id, role) DO NOTHING").Exec(ctx)
	return err
}
