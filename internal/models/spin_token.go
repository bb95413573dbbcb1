package models

import (
	"time"

	"github.com/uptrace/bun"
)

// SpinToken is the legacy prepaid path: a token bought outside the wallet that
// grants exactly one spin at a fixed tier.
type SpinToken struct {
	bun.BaseModel `bun:"table:spin_token"`
	ID            int        `bun:"id,pk,autoincrement" json:"id"`
	Token         string     `bun:"token" json:"token"`
	Tier          Tier       `bun:"tier" json:"tier"`
	AmountCents   Cents      `bun:"amount_cents" json:"amount_cents"`
	Used          bool       `bun:"used" json:"used"`
	UsedAt        *time.Time `bun:"used_at" json:"used_at,omitempty"`
	CreatedAt     time.Time  `bun:"created_at,default:current_timestamp" json:"created_at"`
}
