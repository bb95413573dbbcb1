package models

import (
	"time"

	"github.com/uptrace/bun"
)

type PrizeContentKind string

const (
	PrizeContentKindLink    PrizeContentKind = "link"
	PrizeContentKindCode    PrizeContentKind = "code"
	PrizeContentKindMessage PrizeContentKind = "message"
)

// PrizeContent holds the deliverable payload for a prize, either one shared
// payload or a payload per tier.
type PrizeContent struct {
	bun.BaseModel `bun:"table:prize_content"`
	ID            int              `bun:"id,pk,autoincrement" json:"id"`
	PrizeID       int              `bun:"prize_id" json:"prize_id"`
	Kind          PrizeContentKind `bun:"kind" json:"kind"`
	Payload       string           `bun:"payload" json:"payload"`
	PayloadBasic  string           `bun:"payload_basic" json:"payload_basic"`
	PayloadGold   string           `bun:"payload_gold" json:"payload_gold"`
	PayloadVIP    string           `bun:"payload_vip" json:"payload_vip"`
	CreatedAt     time.Time        `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time        `bun:"updated_at" json:"updated_at"`
}

// PayloadFor prefers the tier-specific payload and falls back to the shared one.
func (content *PrizeContent) PayloadFor(tier Tier) string {
	var payload string
	switch tier {
	case TierBasic:
		payload = content.PayloadBasic
	case TierGold:
		payload = content.PayloadGold
	case TierVIP:
		payload = content.PayloadVIP
	}

	if payload == "" {
		payload = content.Payload
	}
	return payload
}
