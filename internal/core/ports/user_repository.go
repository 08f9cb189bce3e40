package ports

import (
	"context"

	"github.com/moviehub/catalogue-system/internal/core/domain"
)

// UserRepository defines persistence for the relational credential store.
// Username and email uniqueness is enforced by store-level constraints, not
// by these methods; Create surfaces violations as domain.ErrDuplicateUsername
// or domain.ErrDuplicateEmail.
type UserRepository interface {
	// Create persists the user and its role links in a single transaction.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByUsername returns the user with its full role set loaded.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// RoleExists reports whether the named role has been seeded.
	RoleExists(ctx context.Context, role domain.Role) (bool, error)
}
