package datastore

import (
	"context"
	"time"

	"prizewheel/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableSpin(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Spin)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Spin)(nil)).Index("index_spin_user_id").IfNotExists().Column("user_id").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Spin)(nil)).Index("index_spin_token").Unique().IfNotExists().Column("token").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Spin)(nil)).Index("index_spin_status").IfNotExists().Column("status").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func InsertSpin(ctx context.Context, db bun.IDB, spin *models.Spin) error {
	_, err := db.NewInsert().Model(spin).Exec(ctx)
	return err
}

func FindSpinByID(ctx context.Context, db *bun.DB, spinID int) (*models.Spin, error) {
	var spin models.Spin
	err := db.NewSelect().Model(&spin).Where("spin.id = ?", spinID).Relation("Prize").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &spin, nil
}

// GetWonPrizeIDsByUserID returns the distinct prize ids the user has already
// won, feeding the exhaust-then-reset candidate filter.
func GetWonPrizeIDsByUserID(ctx context.Context, db *bun.DB, userID string) ([]int, error) {
	var prizeIDs []int
	err := db.NewSelect().Model((*models.Spin)(nil)).
		ColumnExpr("DISTINCT prize_id").
		Where("user_id = ?", userID).
		Scan(ctx, &prizeIDs)
	if err != nil {
		return nil, err
	}
	return prizeIDs, nil
}

func GetPendingManualSpins(ctx context.Context, db *bun.DB) ([]models.Spin, error) {
	var spins []models.Spin
	err := db.NewSelect().Model(&spins).
		Relation("Prize").
		Where("spin.status = ?", models.SpinStatusPending).
		Where("prize.type = ?", models.PrizeTypeManual).
		Order("spin.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return spins, nil
}

// GetUndeliveredAutomaticSpins lists automatic-type spins still pending after
// the given age, for the cron redelivery pass.
func GetUndeliveredAutomaticSpins(ctx context.Context, db *bun.DB, olderThan time.Duration, limit int) ([]models.Spin, error) {
	var spins []models.Spin
	err := db.NewSelect().Model(&spins).
		Relation("Prize").
		Where("spin.status = ?", models.SpinStatusPending).
		Where("prize.type = ?", models.PrizeTypeAutomatic).
		Where("spin.created_at < ?", time.Now().Add(-olderThan)).
		Order("spin.created_at ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return spins, nil
}

// AdvanceSpinStatus moves a spin forward only; a delivered or completed spin
// never drops back to pending.
func AdvanceSpinStatus(ctx context.Context, db *bun.DB, spinID int, from, to models.SpinStatus) (bool, error) {
	if !from.CanAdvanceTo(to) {
		return false, nil
	}

	q := db.NewUpdate().Model((*models.Spin)(nil)).
		Set("status = ?", to).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", spinID).
		Where("status = ?", from)

	if to == models.SpinStatusCompleted {
		q = q.Set("fulfilled_at = ?", time.Now())
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}
