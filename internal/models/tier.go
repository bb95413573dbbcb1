package models

type Tier string

const (
	TierBasic Tier = "basic"
	TierGold  Tier = "gold"
	TierVIP   Tier = "vip"
)

func (t Tier) Valid() bool {
	switch t {
	case TierBasic, TierGold, TierVIP:
		return true
	}
	return false
}

func (t Tier) String() string {
	return string(t)
}

func Tiers() []Tier {
	return []Tier{TierBasic, TierGold, TierVIP}
}

// Cents is a money amount in integer cents. Balances and costs never touch
// floating point until they are rendered for the client.
type Cents int64

func (c Cents) Dollars() float64 {
	return float64(c) / 100
}
