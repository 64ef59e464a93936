package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/folio-cms/folio/shared/domain"
	internal_errors "github.com/folio-cms/folio/shared/errors"
	sharedpg "github.com/folio-cms/folio/shared/storage/pg"
)

// =========================================================================
// Public Methods (satisfy service.UserStorage and service.AdminRegistry)
// =========================================================================

func (s *Storage) SaveUser(ctx context.Context, user domain.User) (domain.User, error) {
	var saved domain.User
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		saved, err = s.saveUser(ctx, tx, user)
		return err
	})
	return saved, err
}

func (s *Storage) UserByEmail(ctx context.Context, email domain.Email) (domain.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return s.userByEmail(ctx, s.db, email)
}

// SetAdmin grants or revokes membership. Granting twice is a no-op.
func (s *Storage) SetAdmin(ctx context.Context, id domain.UserId, admin bool) error {
	if !validId(id) {
		return internal_errors.NotFound("User not found")
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if admin {
			return s.grantAdmin(ctx, tx, id)
		}
		return s.revokeAdmin(ctx, tx, id)
	})
}

// IsAdmin treats a missing row as "not admin".
func (s *Storage) IsAdmin(ctx context.Context, id domain.UserId) (bool, error) {
	if !validId(id) {
		return false, nil
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var admin bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM admin_users WHERE user_id = $1)`, id).Scan(&admin)
	if err != nil {
		return false, fmt.Errorf("failed to query admin registry: %w", err)
	}
	return admin, nil
}

// =========================================================================
// Internal Methods
// =========================================================================

func (s *Storage) saveUser(ctx context.Context, q Querier, user domain.User) (domain.User, error) {
	err := q.QueryRowContext(ctx,
		`INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id, created_at`,
		user.Email, user.PassHash).Scan(&user.Id, &user.CreatedAt)
	if err != nil {
		if sharedpg.IsUniqueViolation(err) {
			return domain.User{}, internal_errors.Conflict("User already exists")
		}
		return domain.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	user.CreatedAt = user.CreatedAt.UTC()
	return user, nil
}

func (s *Storage) userByEmail(ctx context.Context, q Querier, email domain.Email) (domain.User, error) {
	var user domain.User
	err := q.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE email = $1`, email).
		Scan(&user.Id, &user.Email, &user.PassHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NotFound("User not found")
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	user.CreatedAt = user.CreatedAt.UTC()
	return user, nil
}

func (s *Storage) grantAdmin(ctx context.Context, q Querier, id domain.UserId) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO admin_users (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, id)
	if err != nil {
		if sharedpg.IsForeignKeyViolation(err) {
			return internal_errors.NotFound("User not found")
		}
		return fmt.Errorf("failed to grant admin: %w", err)
	}
	return nil
}

func (s *Storage) revokeAdmin(ctx context.Context, q Querier, id domain.UserId) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM admin_users WHERE user_id = $1`, id); err != nil {
		return fmt.Errorf("failed to revoke admin: %w", err)
	}
	return nil
}
