// Package repository persists users, prep sessions and questions in Postgres.
package repository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

//go:embed schema.sql
var schema string

// PostgreSQL unique_violation
const uniqueViolation = "23505"

type Repository struct {
	User        *UserRepository
	PrepSession *PrepSessionRepository
	Question    *QuestionRepository
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		User:        &UserRepository{db: db},
		PrepSession: &PrepSessionRepository{db: db},
		Question:    &QuestionRepository{db: db},
	}
}

// Migrate applies schema.sql. Every statement is idempotent.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// batcher is satisfied by both *pgxpool.Pool and pgx.Tx.
type batcher interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
