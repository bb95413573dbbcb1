package models

import (
	"time"

	"github.com/uptrace/bun"
)

// UserFromAuth only use in middleware
type UserFromAuth struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

const RoleAdmin = "admin"

type UserRole struct {
	bun.BaseModel `bun:"table:user_role"`
	ID            int       `bun:"id,pk,autoincrement" json:"id"`
	UserID        string    `bun:"user_id" json:"user_id"`
	Role          string    `bun:"role" json:"role"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}
