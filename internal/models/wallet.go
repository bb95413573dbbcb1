package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Wallet struct {
	bun.BaseModel `bun:"table:wallet"`
	ID            int       `bun:"id,pk,autoincrement" json:"id"`
	UserID        string    `bun:"user_id" json:"user_id"`
	Email         string    `bun:"email" json:"email"`
	BalanceCents  Cents     `bun:"balance_cents" json:"balance_cents"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at" json:"updated_at"`
}

type WalletTransactionType string

const (
	WalletTransactionTypeTopup WalletTransactionType = "topup"
	WalletTransactionTypeSpin  WalletTransactionType = "spin"
	// legacy prepaid purchase: money bought a spin token, not balance
	WalletTransactionTypeTokenPurchase WalletTransactionType = "token_purchase"
)

// WalletTransaction is an append-only ledger row, one per wallet mutation.
type WalletTransaction struct {
	bun.BaseModel `bun:"table:wallet_transaction"`
	ID            int                   `bun:"id,pk,autoincrement" json:"id"`
	WalletID      int                   `bun:"wallet_id" json:"wallet_id"`
	UserID        string                `bun:"user_id" json:"user_id"`
	AmountCents   Cents                 `bun:"amount_cents" json:"amount_cents"`
	Type          WalletTransactionType `bun:"type" json:"type"`
	Description   string                `bun:"description" json:"description"`
	PaymentRef    string                `bun:"payment_ref" json:"payment_ref,omitempty"`
	CreatedAt     time.Time             `bun:"created_at,default:current_timestamp" json:"created_at"`
}
