package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"prizewheel/internal/datastore"
	"prizewheel/internal/models"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceAdmin struct {
	container  *do.Injector
	postgresDB *bun.DB

	serviceDelivery *ServiceDelivery
}

func NewServiceAdmin(container *do.Injector) (*ServiceAdmin, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	serviceDelivery, err := do.Invoke[*ServiceDelivery](container)
	if err != nil {
		return nil, err
	}

	return &ServiceAdmin{container, postgresDB, serviceDelivery}, nil
}

func (service *ServiceAdmin) IsAdmin(ctx context.Context, userID string) (bool, error) {
	return datastore.UserHasRole(ctx, service.postgresDB, userID, models.RoleAdmin)
}

// GetPendingPrizes lists manual-fulfillment spins waiting on an admin, with
// the prize and its fulfillment instructions attached.
func (service *ServiceAdmin) GetPendingPrizes(ctx context.Context) ([]models.Spin, error) {
	spins, err := datastore.GetPendingManualSpins(ctx, service.postgresDB)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	if len(spins) == 0 {
		return spins, nil
	}

	prizeIDs := make([]int, 0, len(spins))
	for _, spin := range spins {
		prizeIDs = append(prizeIDs, spin.PrizeID)
	}

	contents, err := datastore.GetPrizeContentsByPrizeIDs(ctx, service.postgresDB, prizeIDs)
	if err != nil && err != sql.ErrNoRows {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	byPrize := indexContentsByPrizeID(contents)
	for i := range spins {
		spins[i].Content = byPrize[spins[i].PrizeID]
	}

	return spins, nil
}

func indexContentsByPrizeID(contents []models.PrizeContent) map[int]*models.PrizeContent {
	byPrize := make(map[int]*models.PrizeContent, len(contents))
	for i := range contents {
		byPrize[contents[i].PrizeID] = &contents[i]
	}
	return byPrize
}

// Fulfill completes a manual prize: sends the admin-supplied link to the
// winner and marks the spin completed.
func (service *ServiceAdmin) Fulfill(ctx context.Context, spinID int, prizeLink string) (*models.Spin, error) {
	if prizeLink == "" {
		return nil, errorx.Wrap(errors.New("missing prize link"), errorx.Invalid)
	}

	spin, err := datastore.FindSpinByID(ctx, service.postgresDB, spinID)
	if err == sql.ErrNoRows {
		return nil, errorx.Wrap(fmt.Errorf("spin %d not found", spinID), errorx.NotExist)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	if spin.Status == models.SpinStatusCompleted {
		return nil, errorx.Wrap(errors.New("spin already fulfilled"), errorx.Validation)
	}

	if spin.Prize == nil || spin.Prize.Type != models.PrizeTypeManual {
		return nil, errorx.Wrap(errors.New("spin does not need manual fulfillment"), errorx.Validation)
	}

	if err := service.serviceDelivery.DeliverFulfillment(ctx, spin, spin.Prize, prizeLink); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	spin.Status = models.SpinStatusCompleted
	return spin, nil
}

func (service *ServiceAdmin) GetPendingNotifications(ctx context.Context) ([]models.AdminNotification, error) {
	notifications, err := datastore.GetPendingAdminNotifications(ctx, service.postgresDB)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return notifications, err
}

func (service *ServiceAdmin) DismissNotification(ctx context.Context, notificationID int) error {
	return datastore.UpdateAdminNotificationStatus(ctx, service.postgresDB, notificationID, models.AdminNotificationStatusDismissed)
}
