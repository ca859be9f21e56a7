package repository

import (
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}

func TestNotFound(t *testing.T) {
	assert.ErrorIs(t, fmt.Errorf("get: %w", notFound(pgx.ErrNoRows)), ErrNotFound)

	other := errors.New("conn reset")
	assert.Equal(t, other, notFound(other))
}

func TestSchemaIsIdempotent(t *testing.T) {
	stmts := regexp.MustCompile(`(?m)^CREATE [A-Z ]+`).FindAllString(schema, -1)
	assert.NotEmpty(t, stmts)
	for _, s := range stmts {
		assert.Contains(t, s, "IF NOT EXISTS", s)
	}
}
