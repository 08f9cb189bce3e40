package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/moviehub/catalogue-system/internal/core/domain"
	"github.com/moviehub/catalogue-system/internal/core/ports"
)

// dummyHash is a valid bcrypt hash that matches no issued password. Login
// compares against it when the username is unknown so that both failure paths
// cost one bcrypt comparison and return the same error.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService composes the credential store, password hasher, and token
// service into the session operations. It holds no per-session state.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, log: log}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.SessionResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Matches(password, dummyHash)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Matches(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		s.log.Warn().Str("username", username).Msg("login attempt on inactive account")
		return nil, domain.ErrInvalidCredentials
	}

	result, err := s.newSession(user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", user.Username).Msg("user logged in")
	return result, nil
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.SessionResult, error) {
	ok, err := s.users.RoleExists(ctx, domain.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if !ok {
		// Deployment precondition: the default role is seeded by migration.
		return nil, domain.ErrRoleNotConfigured
	}

	// Pre-checks give user-friendly conflicts; the unique constraints in the
	// store close the race between two concurrent registrations.
	if taken, err := s.users.ExistsByUsername(ctx, input.Username); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	} else if taken {
		return nil, domain.ErrDuplicateUsername
	}
	if taken, err := s.users.ExistsByEmail(ctx, input.Email); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	} else if taken {
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:              uuid.NewString(),
		Username:        input.Username,
		Email:           input.Email,
		PasswordHash:    hash,
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		IsActive:        true,
		IsEmailVerified: false,
		Roles:           []domain.Role{domain.RoleUser},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Msg("user registered")

	// Auto-login. If issuance fails the account still exists; the caller can
	// retry with a plain login.
	result, err := s.newSession(created)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Refresh requires the old token to be fully valid: a stateless refresh of an
// expired token would make the expiry window meaningless. Roles are re-read
// from the store so a role change since issuance lands on the new token.
func (s *AuthService) Refresh(ctx context.Context, token string) (*ports.SessionResult, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		s.log.Debug().Err(err).Msg("refresh rejected: signature or encoding")
		return nil, domain.ErrInvalidToken
	}
	if s.tokens.IsExpired(claims, time.Now().UTC()) {
		s.log.Debug().Str("subject", claims.Subject).Msg("refresh rejected: expired")
		return nil, domain.ErrInvalidToken
	}

	user, err := s.users.FindByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("refresh: %w", err)
	}

	result, err := s.newSession(user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", user.Username).Msg("token refreshed")
	return result, nil
}

func (s *AuthService) VerifyToken(token string) bool {
	return s.tokens.Validate(token, time.Now().UTC())
}

func (s *AuthService) CurrentUser(ctx context.Context, token string) (*ports.UserSummary, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	if s.tokens.IsExpired(claims, time.Now().UTC()) {
		return nil, domain.ErrInvalidToken
	}

	// Claims are trusted for identity only; the full record comes from the store.
	user, err := s.users.FindByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("current user: %w", err)
	}

	summary := toSummary(user)
	return &summary, nil
}

// Logout does not invalidate the token: there is no revocation store, so the
// token stays usable until expiry. The event is logged for audit.
func (s *AuthService) Logout(token string) {
	subject := "unknown"
	if claims, err := s.tokens.Parse(token); err == nil {
		subject = claims.Subject
	}
	s.log.Info().Str("username", subject).Msg("user logged out")
}

func (s *AuthService) newSession(user *domain.User) (*ports.SessionResult, error) {
	token, expiresAt, err := s.tokens.Issue(user.Username, user.RoleNames(), time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &ports.SessionResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      toSummary(user),
	}, nil
}

func toSummary(user *domain.User) ports.UserSummary {
	return ports.UserSummary{
		ID:              user.ID,
		Username:        user.Username,
		Email:           user.Email,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		FullName:        user.FullName(),
		AvatarURL:       user.AvatarURL,
		Roles:           user.RoleNames(),
		IsActive:        user.IsActive,
		IsEmailVerified: user.IsEmailVerified,
		CreatedAt:       user.CreatedAt,
	}
}
