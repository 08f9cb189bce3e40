package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/moviehub/catalogue-system/internal/core/domain"
)

// UserRepository is the relational credential store: users, roles, and the
// links between them. Username and email uniqueness live in the schema as
// unique constraints, closing the check-then-write race between two
// concurrent registrations.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the user and its role links in one transaction. A missing
// role aborts with domain.ErrRoleNotConfigured; constraint violations map to
// the duplicate-field errors.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storeErr("begin tx", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (id, username, email, password_hash, first_name, last_name,
		                   avatar_url, is_active, is_email_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.AvatarURL, user.IsActive, user.IsEmailVerified, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if dup := duplicateFieldErr(err); dup != nil {
			return nil, dup
		}
		return nil, storeErr("insert user", err)
	}

	for _, role := range user.Roles {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO user_roles (user_id, role_id)
			SELECT $1, id FROM roles WHERE name = $2`,
			user.ID, string(role),
		)
		if err != nil {
			return nil, storeErr("link role", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil, domain.ErrRoleNotConfigured
		}
	}

	if err := tx.Commit(); err != nil {
		if dup := duplicateFieldErr(err); dup != nil {
			return nil, dup
		}
		return nil, storeErr("commit", err)
	}
	return user, nil
}

// FindByUsername loads the user together with its full role set.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u domain.User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, first_name, last_name,
		       avatar_url, is_active, is_email_verified, created_at, updated_at
		FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.AvatarURL, &u.IsActive, &u.IsEmailVerified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeErr("find user", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT r.name FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
		ORDER BY r.id`,
		u.ID,
	)
	if err != nil {
		return nil, storeErr("load roles", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, storeErr("scan role", err)
		}
		u.Roles = append(u.Roles, domain.Role(name))
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate roles", err)
	}
	return &u, nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email)
}

func (r *UserRepository) RoleExists(ctx context.Context, role domain.Role) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM roles WHERE name = $1)`, string(role))
}

func (r *UserRepository) exists(ctx context.Context, query string, arg string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ok bool
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&ok); err != nil {
		return false, storeErr("exists", err)
	}
	return ok, nil
}

// duplicateFieldErr maps a unique violation to the conflicting field by
// constraint name, or returns nil for any other error.
func duplicateFieldErr(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}
	switch pgErr.ConstraintName {
	case "users_username_key":
		return domain.ErrDuplicateUsername
	case "users_email_key":
		return domain.ErrDuplicateEmail
	}
	return nil
}

// storeErr wraps transport-level failures as retryable ErrStoreUnavailable.
func storeErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
