package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aryandumale04/SmartPrep/pkg/model"
)

type UserRepository struct {
	db *pgxpool.Pool
}

// Create inserts u and fills its id and timestamps.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	const q = `
INSERT INTO users (name, email, password_hash)
VALUES ($1, $2, $3)
RETURNING user_id, created_at, updated_at
`
	err := r.db.QueryRow(ctx, q, u.Name, u.Email, u.PasswordHash).Scan(&u.UserID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `
SELECT user_id, name, email, password_hash, created_at, updated_at
FROM users
WHERE email = $1
`
	var u model.User
	err := r.db.QueryRow(ctx, q, email).Scan(&u.UserID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", notFound(err))
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	const q = `
SELECT user_id, name, email, password_hash, created_at, updated_at
FROM users
WHERE user_id = $1
`
	var u model.User
	err := r.db.QueryRow(ctx, q, id).Scan(&u.UserID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", notFound(err))
	}
	return &u, nil
}

func (r *UserRepository) CreateSession(ctx context.Context, s *model.UserSession) error {
	const q = `
INSERT INTO user_sessions (session_id, user_id, refresh_token, expires_at, is_revoked)
VALUES ($1, $2, $3, $4, $5)
RETURNING created_at
`
	err := r.db.QueryRow(ctx, q, s.SessionID, s.UserID, s.RefreshToken, s.ExpiresAt, s.IsRevoked).Scan(&s.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert user session: %w", err)
	}
	return nil
}

func (r *UserRepository) GetSession(ctx context.Context, id string) (*model.UserSession, error) {
	const q = `
SELECT session_id, user_id, refresh_token, expires_at, is_revoked, created_at
FROM user_sessions
WHERE session_id = $1
`
	var s model.UserSession
	err := r.db.QueryRow(ctx, q, id).Scan(&s.SessionID, &s.UserID, &s.RefreshToken, &s.ExpiresAt, &s.IsRevoked, &s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get user session: %w", notFound(err))
	}
	return &s, nil
}

func (r *UserRepository) RevokeSession(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `UPDATE user_sessions SET is_revoked = true WHERE session_id = $1`, id)
	if err != nil {
		return fmt.Errorf("revoke user session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) DeleteSession(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM user_sessions WHERE session_id = $1`, id); err != nil {
		return fmt.Errorf("delete user session: %w", err)
	}
	return nil
}
