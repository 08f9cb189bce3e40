package ports

import "time"

// TokenClaims is the decoded payload of a session token.
type TokenClaims struct {
	Subject   string
	Roles     []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues and checks signed, stateless session tokens.
type TokenService interface {
	// Issue signs a token for subject carrying the given roles, valid for the
	// configured lifetime starting at now.
	Issue(subject string, roles []string, now time.Time) (token string, expiresAt time.Time, err error)
	// Parse decodes and verifies the signature. It returns
	// domain.ErrMalformedToken for bad encoding, an unexpected signing method,
	// or a signature mismatch. Expiry is NOT checked here.
	Parse(token string) (*TokenClaims, error)
	// IsExpired reports whether claims are past their expiry at now.
	IsExpired(claims *TokenClaims, now time.Time) bool
	// Validate reports whether the token has a valid signature and is unexpired.
	Validate(token string, now time.Time) bool
}
