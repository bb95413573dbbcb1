package models

import (
	"time"

	"github.com/uptrace/bun"
)

type PrizeType string

const (
	PrizeTypeAutomatic PrizeType = "automatic"
	PrizeTypeManual    PrizeType = "manual"
)

func (t PrizeType) Valid() bool {
	return t == PrizeTypeAutomatic || t == PrizeTypeManual
}

type Prize struct {
	bun.BaseModel `bun:"table:prize"`
	ID            int       `bun:"id,pk,autoincrement" json:"id"`
	Name          string    `bun:"name" json:"name"`
	Emoji         string    `bun:"emoji" json:"emoji"`
	Type          PrizeType `bun:"type" json:"type"`
	Active        bool      `bun:"active" json:"active"`
	WeightBasic   int       `bun:"weight_basic" json:"weight_basic"`
	WeightGold    int       `bun:"weight_gold" json:"weight_gold"`
	WeightVIP     int       `bun:"weight_vip" json:"weight_vip"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at" json:"updated_at"`
}

func (prize *Prize) WeightFor(tier Tier) int {
	switch tier {
	case TierBasic:
		return prize.WeightBasic
	case TierGold:
		return prize.WeightGold
	case TierVIP:
		return prize.WeightVIP
	}
	return 0
}
