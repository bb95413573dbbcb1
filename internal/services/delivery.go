package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"prizewheel/internal/datastore"
	"prizewheel/internal/models"
	"prizewheel/internal/pkg/mailer"
	"prizewheel/internal/pkg/retry"
	"prizewheel/internal/pkg/webhook"

	"github.com/samber/do"
	"github.com/uptrace/bun"
)

var ErrNoDeliveryContent = errors.New("no delivery content configured")

type ServiceDelivery struct {
	container  *do.Injector
	postgresDB *bun.DB

	serviceConfig *ServiceConfig
	mail          mailer.Mailer
	notifier      webhook.Notifier
}

func NewServiceDelivery(container *do.Injector) (*ServiceDelivery, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	mail, err := do.Invoke[mailer.Mailer](container)
	if err != nil {
		return nil, err
	}

	notifier, err := do.Invoke[webhook.Notifier](container)
	if err != nil {
		return nil, err
	}

	return &ServiceDelivery{container, postgresDB, serviceConfig, mail, notifier}, nil
}

// Dispatch routes a won prize to its delivery channel. Failures end up in the
// delivery log, never back in the spin handler; the spin stands either way.
func (service *ServiceDelivery) Dispatch(ctx context.Context, spin *models.Spin, prize *models.Prize, content *models.PrizeContent) error {
	switch prize.Type {
	case models.PrizeTypeManual:
		return service.dispatchManual(ctx, spin, prize)
	default:
		return service.dispatchAutomatic(ctx, spin, prize, content)
	}
}

func (service *ServiceDelivery) dispatchAutomatic(ctx context.Context, spin *models.Spin, prize *models.Prize, content *models.PrizeContent) error {
	payload := ""
	if content != nil {
		payload = content.PayloadFor(spin.Tier)
	}

	if payload == "" {
		service.logDelivery(ctx, spin.ID, models.DeliveryChannelEmail, spin.UserEmail, "", 0, ErrNoDeliveryContent)
		return ErrNoDeliveryContent
	}

	email := ComposePrizeEmail(prize, spin.Tier, payload)
	email.To = spin.UserEmail

	attempts, err := SendWithRetry(ctx, service.mail, service.retryPolicy(ctx), email)
	service.logDelivery(ctx, spin.ID, models.DeliveryChannelEmail, spin.UserEmail, email.Subject, attempts, err)
	if err != nil {
		return err
	}

	_, err = datastore.AdvanceSpinStatus(ctx, service.postgresDB, spin.ID, models.SpinStatusPending, models.SpinStatusDelivered)
	return err
}

func (service *ServiceDelivery) dispatchManual(ctx context.Context, spin *models.Spin, prize *models.Prize) error {
	email := ComposeInterimEmail(prize)
	email.To = spin.UserEmail

	attempts, err := SendWithRetry(ctx, service.mail, service.retryPolicy(ctx), email)
	service.logDelivery(ctx, spin.ID, models.DeliveryChannelEmail, spin.UserEmail, email.Subject, attempts, err)

	err = datastore.InsertAdminNotification(ctx, service.postgresDB, &models.AdminNotification{
		SpinID:    spin.ID,
		PrizeID:   prize.ID,
		UserEmail: spin.UserEmail,
		Status:    models.AdminNotificationStatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return err
	}

	err = service.notifier.Notify("prize.pending_fulfillment", map[string]any{
		"spin_id":    spin.ID,
		"prize_id":   prize.ID,
		"prize_name": prize.Name,
		"user_email": spin.UserEmail,
		"tier":       spin.Tier,
	})
	service.logDelivery(ctx, spin.ID, models.DeliveryChannelWebhook, "workflow", "prize.pending_fulfillment", 1, err)

	// the spin stays pending until an admin fulfills it
	return nil
}

// DeliverFulfillment sends the real payload an admin supplied for a manual
// prize and advances the spin to completed.
func (service *ServiceDelivery) DeliverFulfillment(ctx context.Context, spin *models.Spin, prize *models.Prize, prizeLink string) error {
	email := ComposeFulfillmentEmail(prize, prizeLink)
	email.To = spin.UserEmail

	attempts, err := SendWithRetry(ctx, service.mail, service.retryPolicy(ctx), email)
	service.logDelivery(ctx, spin.ID, models.DeliveryChannelEmail, spin.UserEmail, email.Subject, attempts, err)
	if err != nil {
		return err
	}

	_, err = datastore.AdvanceSpinStatus(ctx, service.postgresDB, spin.ID, spin.Status, models.SpinStatusCompleted)
	if err != nil {
		return err
	}

	return datastore.UpdateAdminNotificationStatusBySpinID(ctx, service.postgresDB, spin.ID, models.AdminNotificationStatusCompleted)
}

// Redeliver retries automatic spins that are still pending, used by the cron
// pass. Content is looked up again in case an admin fixed it meanwhile.
func (service *ServiceDelivery) Redeliver(ctx context.Context, spin *models.Spin) error {
	prize := spin.Prize
	if prize == nil {
		loaded, err := datastore.FindPrizeByID(ctx, service.postgresDB, spin.PrizeID)
		if err != nil {
			return fmt.Errorf("load prize for spin %d: %w", spin.ID, err)
		}
		prize = loaded
	}

	content, err := datastore.FindPrizeContentByPrizeID(ctx, service.postgresDB, spin.PrizeID)
	if err != nil {
		content = nil
	}

	return service.dispatchAutomatic(ctx, spin, prize, content)
}

func (service *ServiceDelivery) retryPolicy(ctx context.Context) retry.Policy {
	attempts, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_DELIVERY_MAX_ATTEMPTS, DEFAULT_DELIVERY_MAX_ATTEMPTS)
	delaySec, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_DELIVERY_RETRY_DELAY_SEC, DEFAULT_DELIVERY_RETRY_DELAY_SEC)
	return retry.NewPolicy(attempts, time.Duration(delaySec)*time.Second)
}

func (service *ServiceDelivery) logDelivery(ctx context.Context, spinID int, channel models.DeliveryChannel, recipient, subject string, attempts int, sendErr error) {
	status := models.DeliveryStatusSent
	lastError := ""
	if sendErr != nil {
		status = models.DeliveryStatusFailed
		lastError = sendErr.Error()
	}

	err := datastore.InsertDeliveryLog(ctx, service.postgresDB, &models.DeliveryLog{
		SpinID:    spinID,
		Channel:   channel,
		Recipient: recipient,
		Subject:   subject,
		Attempts:  attempts,
		Status:    status,
		LastError: lastError,
		CreatedAt: time.Now(),
	})
	if err != nil {
		log.Println("insert delivery log:", err)
	}
}

// SendWithRetry pushes one email through the retry policy and reports how
// many attempts it took.
func SendWithRetry(ctx context.Context, m mailer.Mailer, policy retry.Policy, email *mailer.Email) (int, error) {
	return policy.Do(ctx, func() error {
		return m.Send(email)
	})
}

func ComposePrizeEmail(prize *models.Prize, tier models.Tier, payload string) *mailer.Email {
	return &mailer.Email{
		Subject: fmt.Sprintf("%s You won: %s", prize.Emoji, prize.Name),
		Body: fmt.Sprintf(
			"<p>Congratulations! Your %s spin landed on <strong>%s %s</strong>.</p><p>Here is your prize: %s</p>",
			tier, prize.Emoji, prize.Name, payload,
		),
	}
}

func ComposeInterimEmail(prize *models.Prize) *mailer.Email {
	return &mailer.Email{
		Subject: fmt.Sprintf("%s Your prize is being prepared", prize.Emoji),
		Body: fmt.Sprintf(
			"<p>You won <strong>%s %s</strong>! Our team is preparing it and you will receive it by email shortly.</p>",
			prize.Emoji, prize.Name,
		),
	}
}

func ComposeFulfillmentEmail(prize *models.Prize, prizeLink string) *mailer.Email {
	return &mailer.Email{
		Subject: fmt.Sprintf("%s Your prize is ready: %s", prize.Emoji, prize.Name),
		Body: fmt.Sprintf(
			"<p>Your prize <strong>%s %s</strong> is ready.</p><p>Claim it here: %s</p>",
			prize.Emoji, prize.Name, prizeLink,
		),
	}
}
