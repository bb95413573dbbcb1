package models

import (
	"time"

	"github.com/uptrace/bun"
)

type AdminNotificationStatus string

const (
	AdminNotificationStatusPending   AdminNotificationStatus = "pending"
	AdminNotificationStatusCompleted AdminNotificationStatus = "completed"
	AdminNotificationStatusDismissed AdminNotificationStatus = "dismissed"
)

// AdminNotification tracks a manual-fulfillment prize waiting on a human.
type AdminNotification struct {
	bun.BaseModel `bun:"table:admin_notification"`
	ID            int                     `bun:"id,pk,autoincrement" json:"id"`
	SpinID        int                     `bun:"spin_id" json:"spin_id"`
	PrizeID       int                     `bun:"prize_id" json:"prize_id"`
	UserEmail     string                  `bun:"user_email" json:"user_email"`
	Status        AdminNotificationStatus `bun:"status" json:"status"`
	CreatedAt     time.Time               `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time               `bun:"updated_at" json:"updated_at"`
}
