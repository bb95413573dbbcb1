package models

import "testing"

func TestTierValid(t *testing.T) {
	for _, tier := range Tiers() {
		if !tier.Valid() {
			t.Fatalf("tier %q should be valid", tier)
		}
	}

	for _, tier := range []Tier{"", "platinum", "Basic", "VIP"} {
		if tier.Valid() {
			t.Fatalf("tier %q should be invalid", tier)
		}
	}
}

func TestCentsDollars(t *testing.T) {
	tests := []struct {
		cents Cents
		want  float64
	}{
		{0, 0},
		{1500, 15},
		{4999, 49.99},
		{-250, -2.5},
	}
	for _, tc := range tests {
		if got := tc.cents.Dollars(); got != tc.want {
			t.Fatalf("%d cents: got %v, want %v", tc.cents, got, tc.want)
		}
	}
}
