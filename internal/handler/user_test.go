package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aryandumale04/SmartPrep/pkg/model"
)

func TestSignUp(t *testing.T) {
	env := newTestEnv(t)

	w, res := env.do(t, http.MethodPost, "/auth/signup", gin.H{"name": "Aryan Dumale", "email": "Aryan@Example.com", "password": "supersecret"})
	require.Equal(t, http.StatusCreated, w.Code)
	var u model.UserRes
	require.NoError(t, json.Unmarshal(res.Data, &u))
	assert.Equal(t, "aryan@example.com", u.Email)
	assert.Equal(t, "AD", u.Initials)

	w, res = env.do(t, http.MethodPost, "/auth/signup", gin.H{"name": "Again", "email": "aryan@example.com", "password": "supersecret"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", res.Error.Code)
}

func TestSignUp_Validation(t *testing.T) {
	env := newTestEnv(t)

	w, res := env.do(t, http.MethodPost, "/auth/signup", gin.H{"name": "A", "email": "a@b", "password": "supersecret"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", res.Error.Code)

	w, _ = env.do(t, http.MethodPost, "/auth/signup", gin.H{"name": "A", "email": "a@b.co", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = env.do(t, http.MethodPost, "/auth/signup", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginAndRenew(t *testing.T) {
	env := newTestEnv(t)
	w, _ := env.do(t, http.MethodPost, "/auth/signup", gin.H{"name": "Dev", "email": "dev@example.com", "password": "supersecret"})
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = env.do(t, http.MethodPost, "/auth/login", gin.H{"email": "dev@example.com", "password": "wrongpass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = env.do(t, http.MethodPost, "/auth/login", gin.H{"email": "nobody@example.com", "password": "supersecret"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, res := env.do(t, http.MethodPost, "/auth/login", gin.H{"email": "DEV@example.com", "password": "supersecret"})
	require.Equal(t, http.StatusOK, w.Code)
	var login model.LoginUserRes
	require.NoError(t, json.Unmarshal(res.Data, &login))
	assert.NotEmpty(t, login.AccessToken)
	assert.Contains(t, env.users.sessions, login.SessionID)

	w, res = env.do(t, http.MethodPost, "/auth/tokens/renew", gin.H{"refresh_token": login.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code)
	var renewed model.RenewAccessTokenRes
	require.NoError(t, json.Unmarshal(res.Data, &renewed))
	assert.NotEmpty(t, renewed.AccessToken)

	env.users.sessions[login.SessionID].IsRevoked = true
	w, _ = env.do(t, http.MethodPost, "/auth/tokens/renew", gin.H{"refresh_token": login.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = env.do(t, http.MethodPost, "/auth/tokens/renew", gin.H{"refresh_token": "garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
