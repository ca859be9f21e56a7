package handler

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aryandumale04/SmartPrep/internal/repository"
	"github.com/aryandumale04/SmartPrep/pkg"
	"github.com/aryandumale04/SmartPrep/pkg/model"
	"github.com/aryandumale04/SmartPrep/pkg/response"
)

func userRes(u *model.User) model.UserRes {
	return model.UserRes{UserID: u.UserID, Name: u.Name, Email: u.Email, Initials: pkg.GetInitials(u.Name)}
}

// SignUp creates a new user
func (h *Handler) SignUp(c *gin.Context) {
	var req model.SignUpReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !pkg.ValidateEmail(email) {
		response.ValidationError(c, "please enter a valid email address")
		return
	}

	pwHash, err := pkg.HashPassword(req.Password)
	if errors.Is(err, pkg.ErrPasswordTooLong) {
		response.ValidationError(c, "password must be at most 72 bytes")
		return
	}
	if err != nil {
		h.Logger.Error("signup: failed to hash password", zap.Error(err))
		response.InternalError(c, "")
		return
	}

	user := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: pwHash,
	}
	if err := h.Users.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			response.Conflict(c, "email already registered")
			return
		}
		h.Logger.Error("signup: failed to create user", zap.String("email", email), zap.Error(err))
		response.InternalError(c, "could not create user")
		return
	}

	response.Created(c, userRes(user))
}

// Login verifies credentials and returns an access and refresh token pair
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	ctx := c.Request.Context()
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			h.Logger.Error("login: failed to fetch user", zap.String("email", email), zap.Error(err))
		}
		response.Unauthorized(c, "invalid credentials")
		return
	}
	if err := pkg.ComparePassword(user.PasswordHash, req.Password); err != nil {
		response.Unauthorized(c, "invalid credentials")
		return
	}

	accessToken, accessClaims, err := h.TokenMaker.GenerateToken(user.UserID, user.Email, h.AccessTokenTTL)
	if err != nil {
		h.Logger.Error("login: failed to create access token", zap.Error(err))
		response.InternalError(c, "could not generate token")
		return
	}
	refreshToken, refreshClaims, err := h.TokenMaker.GenerateToken(user.UserID, user.Email, h.RefreshTokenTTL)
	if err != nil {
		h.Logger.Error("login: failed to create refresh token", zap.Error(err))
		response.InternalError(c, "could not generate token")
		return
	}

	session := &model.UserSession{
		SessionID:    refreshClaims.ID,
		UserID:       user.UserID,
		RefreshToken: refreshToken,
		ExpiresAt:    refreshClaims.ExpiresAt.Time,
	}
	if err := h.Users.CreateSession(ctx, session); err != nil {
		h.Logger.Error("login: failed to create session", zap.Error(err))
		response.InternalError(c, "could not create session")
		return
	}

	response.OK(c, model.LoginUserRes{
		SessionID:             session.SessionID,
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  accessClaims.ExpiresAt.Time,
		RefreshTokenExpiresAt: refreshClaims.ExpiresAt.Time,
		User:                  userRes(user),
	})
}

// Me returns the current user profile
func (h *Handler) Me(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	user, err := h.Users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Unauthorized(c, "")
		return
	}
	response.OK(c, userRes(user))
}

// Logout deletes the refresh session named by the request body, if any.
func (h *Handler) Logout(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	var req model.RenewAccessTokenReq
	if err := c.ShouldBindJSON(&req); err == nil {
		if refresh, err := h.TokenMaker.VerifyToken(req.RefreshToken); err == nil && refresh.UserID == claims.UserID {
			if err := h.Users.DeleteSession(c.Request.Context(), refresh.ID); err != nil {
				h.Logger.Error("logout: failed to delete session", zap.Error(err))
				response.InternalError(c, "could not revoke session")
				return
			}
		}
	}
	response.Message(c, "logged out")
}

// RenewAccessToken exchanges a live refresh token for a new access token
func (h *Handler) RenewAccessToken(c *gin.Context) {
	var req model.RenewAccessTokenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	refreshClaims, err := h.TokenMaker.VerifyToken(req.RefreshToken)
	if err != nil {
		response.Unauthorized(c, "invalid refresh token")
		return
	}

	session, err := h.Users.GetSession(c.Request.Context(), refreshClaims.ID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			h.Logger.Error("renew_token: failed to fetch session", zap.Error(err))
		}
		response.Unauthorized(c, "session not found")
		return
	}

	switch {
	case session.IsRevoked:
		response.Unauthorized(c, "session revoked")
		return
	case session.UserID != refreshClaims.UserID:
		response.Unauthorized(c, "incorrect session user")
		return
	case session.RefreshToken != req.RefreshToken:
		response.Unauthorized(c, "mismatched session token")
		return
	case time.Now().After(session.ExpiresAt):
		response.Unauthorized(c, "expired session")
		return
	}

	accessToken, accessClaims, err := h.TokenMaker.GenerateToken(refreshClaims.UserID, refreshClaims.Email, h.AccessTokenTTL)
	if err != nil {
		h.Logger.Error("renew_token: failed to create access token", zap.Error(err))
		response.InternalError(c, "could not generate access token")
		return
	}

	response.OK(c, model.RenewAccessTokenRes{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: accessClaims.ExpiresAt.Time,
	})
}

// RevokeSession marks the refresh session revoked without deleting it.
func (h *Handler) RevokeSession(c *gin.Context) {
	var req model.RenewAccessTokenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	claims := h.GetClaimsFromContext(c)
	refresh, err := h.TokenMaker.VerifyToken(req.RefreshToken)
	if err != nil || claims == nil || refresh.UserID != claims.UserID {
		response.Unauthorized(c, "invalid refresh token")
		return
	}

	if err := h.Users.RevokeSession(c.Request.Context(), refresh.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "session not found")
			return
		}
		h.Logger.Error("revoke_session: failed", zap.Error(err))
		response.InternalError(c, "could not revoke session")
		return
	}
	response.Message(c, "session revoked")
}
