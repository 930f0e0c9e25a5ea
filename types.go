package adminkit

import (
	"context"
	"fmt"

	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Identity holds the attributes of an account in the identity service
type Identity interface {
	ID() string
	Email() string
}

// IdentityVerifier exchanges a bearer token for the caller's identity
type IdentityVerifier interface {
	UserFromToken(ctx context.Context, token string) (Identity, error)
}

// IdentityAdmin exposes the privileged identity-service operations used by
// the provisioning workflow. Both interfaces are satisfied by the
// provider/supabase client.
type IdentityAdmin interface {
	InviteUserByEmail(ctx context.Context, email string) (Identity, error)
	ListUsers(ctx context.Context, page, perPage int) ([]Identity, error)
}

// SessionResolver extracts the signed-in session from an incoming request.
// A nil session with a nil error means no credential was presented.
type SessionResolver interface {
	SessionFromRequest(c router.Context) (*SessionObject, error)
}

// AdminFinder is the read side of the admin registry consumed by guards.
type AdminFinder interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Admin, error)
}

// AdminStore is the admin-registry contract used by provisioning.
type AdminStore interface {
	AdminFinder
	GetByEmail(ctx context.Context, email string) (*Admin, error)
	Save(ctx context.Context, record *Admin) (*Admin, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// ProfileStore is the user-profile registry contract used by provisioning.
type ProfileStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*UserProfile, error)
	GetByEmail(ctx context.Context, email string) (*UserProfile, error)
	Save(ctx context.Context, record *UserProfile) (*UserProfile, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] ADMINKIT "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] ADMINKIT "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] ADMINKIT "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
