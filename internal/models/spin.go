package models

import (
	"time"

	"github.com/uptrace/bun"
)

type SpinStatus string

const (
	SpinStatusPending   SpinStatus = "pending"
	SpinStatusDelivered SpinStatus = "delivered"
	SpinStatusCompleted SpinStatus = "completed"
)

// rank orders statuses so a spin never moves backward.
func (s SpinStatus) rank() int {
	switch s {
	case SpinStatusPending:
		return 0
	case SpinStatusDelivered:
		return 1
	case SpinStatusCompleted:
		return 2
	}
	return -1
}

func (s SpinStatus) CanAdvanceTo(next SpinStatus) bool {
	return next.rank() > s.rank()
}

type Spin struct {
	bun.BaseModel `bun:"table:spin"`
	ID            int        `bun:"id,pk,autoincrement" json:"id"`
	UserID        string     `bun:"user_id" json:"user_id"`
	UserEmail     string     `bun:"user_email" json:"user_email"`
	PrizeID       int        `bun:"prize_id" json:"prize_id"`
	Tier          Tier       `bun:"tier" json:"tier"`
	AmountCents   Cents      `bun:"amount_cents" json:"amount_cents"`
	Token         string     `bun:"token" json:"token"`
	Status        SpinStatus `bun:"status" json:"status"`
	CreatedAt     time.Time  `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time  `bun:"updated_at" json:"updated_at"`
	FulfilledAt   *time.Time `bun:"fulfilled_at" json:"fulfilled_at,omitempty"`

	Prize   *Prize        `bun:"rel:belongs-to,join:prize_id=id" json:"prize,omitempty"`
	Content *PrizeContent `bun:"-" json:"content,omitempty"`
}

// SpinResult is the spin endpoint response body.
type SpinResult struct {
	Prize           *WonPrize `json:"prize"`
	NewBalance      float64   `json:"new_balance"`
	NewBalanceCents Cents     `json:"new_balance_cents"`
}

type WonPrize struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	Emoji           string    `json:"emoji"`
	Type            PrizeType `json:"type"`
	DeliveryContent string    `json:"delivery_content,omitempty"`
}
