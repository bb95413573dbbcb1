package models

import (
	"time"

	"github.com/uptrace/bun"
)

type DeliveryChannel string

const (
	DeliveryChannelEmail   DeliveryChannel = "email"
	DeliveryChannelWebhook DeliveryChannel = "webhook"
)

type DeliveryStatus string

const (
	DeliveryStatusSent   DeliveryStatus = "sent"
	DeliveryStatusFailed DeliveryStatus = "failed"
)

// DeliveryLog is the audit trail for best-effort delivery attempts. A failed
// row never fails the spin that triggered it.
type DeliveryLog struct {
	bun.BaseModel `bun:"table:delivery_log"`
	ID            int             `bun:"id,pk,autoincrement" json:"id"`
	SpinID        int             `bun:"spin_id" json:"spin_id"`
	Channel       DeliveryChannel `bun:"channel" json:"channel"`
	Recipient     string          `bun:"recipient" json:"recipient"`
	Subject       string          `bun:"subject" json:"subject"`
	Attempts      int             `bun:"attempts" json:"attempts"`
	Status        DeliveryStatus  `bun:"status" json:"status"`
	LastError     string          `bun:"last_error" json:"last_error,omitempty"`
	CreatedAt     time.Time       `bun:"created_at,default:current_timestamp" json:"created_at"`
}
