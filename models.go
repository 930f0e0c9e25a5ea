package adminkit

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Admin marks an account as an administrator. Row existence is the sole
// admin signal consulted by the route guards.
type Admin struct {
	bun.BaseModel `bun:"table:admins,alias:adm"`
	ID            uuid.UUID  `bun:"id,pk,type:uuid" json:"id,omitempty"`
	Email         string     `bun:"email,notnull" json:"email,omitempty"`
	Name          string     `bun:"name,nullzero" json:"name,omitempty"`
	Role          AdminRole  `bun:"role,notnull" json:"role,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// UserProfile marks an account as a regular user.
type UserProfile struct {
	bun.BaseModel `bun:"table:user_profiles,alias:prf"`
	ID            uuid.UUID  `bun:"id,pk,type:uuid" json:"id,omitempty"`
	Email         string     `bun:"email,notnull" json:"email,omitempty"`
	Name          string     `bun:"name,nullzero" json:"name,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}
