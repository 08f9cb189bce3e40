package ports

import (
	"context"
	"time"
)

// RegisterInput carries all data needed to create a new account.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UserSummary is the identity view exposed to callers. Everything beyond the
// token subject is re-read from the credential store, never from claims.
type UserSummary struct {
	ID              string
	Username        string
	Email           string
	FirstName       string
	LastName        string
	FullName        string
	AvatarURL       string
	Roles           []string
	IsActive        bool
	IsEmailVerified bool
	CreatedAt       time.Time
}

// SessionResult is returned by login, register, and refresh.
type SessionResult struct {
	Token     string
	ExpiresAt time.Time
	User      UserSummary
}

// AuthService composes credential verification and token issuance. Each call
// is independent; the session is entirely the token's validity window.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*SessionResult, error)
	Register(ctx context.Context, input RegisterInput) (*SessionResult, error)
	// Refresh re-reads the current role set so role changes are reflected on
	// the new token. The old token must still be valid.
	Refresh(ctx context.Context, token string) (*SessionResult, error)
	// VerifyToken is a pure validity check with no store access.
	VerifyToken(token string) bool
	CurrentUser(ctx context.Context, token string) (*UserSummary, error)
	// Logout is best-effort: the event is logged, the token stays usable
	// until it expires (no revocation store).
	Logout(token string)
}
