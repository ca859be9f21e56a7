package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = strings.Repeat("k", 32)

func TestJWTMaker_RoundTrip(t *testing.T) {
	m := NewJWTMaker(secret)
	id := uuid.New()

	tok, claims, err := m.GenerateToken(id, "a@b.co", time.Minute)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)

	got, err := m.VerifyToken(tok)
	require.NoError(t, err)
	assert.Equal(t, id, got.UserID)
	assert.Equal(t, "a@b.co", got.Email)
	assert.Equal(t, claims.ID, got.ID)
}

func TestJWTMaker_Rejects(t *testing.T) {
	m := NewJWTMaker(secret)

	expired, _, err := m.GenerateToken(uuid.New(), "a@b.co", -time.Minute)
	require.NoError(t, err)
	_, err = m.VerifyToken(expired)
	assert.Error(t, err)

	other, _, err := NewJWTMaker(strings.Repeat("x", 32)).GenerateToken(uuid.New(), "a@b.co", time.Minute)
	require.NoError(t, err)
	_, err = m.VerifyToken(other)
	assert.Error(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &UserClaims{}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.VerifyToken(none)
	assert.Error(t, err)

	_, err = m.VerifyToken("garbage")
	assert.Error(t, err)
}
