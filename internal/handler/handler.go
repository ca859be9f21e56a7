package handler

import (
	"context"
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aryandumale04/SmartPrep/internal/ai"
	"github.com/aryandumale04/SmartPrep/internal/auth"
	"github.com/aryandumale04/SmartPrep/internal/render"
	"github.com/aryandumale04/SmartPrep/pkg/model"
)

// ClaimsKey is the gin context key holding *auth.UserClaims.
const ClaimsKey = "claims"

type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	CreateSession(ctx context.Context, s *model.UserSession) error
	GetSession(ctx context.Context, id string) (*model.UserSession, error)
	RevokeSession(ctx context.Context, id string) error
	DeleteSession(ctx context.Context, id string) error
}

type PrepSessionStore interface {
	Create(ctx context.Context, s *model.PrepSession, questions []model.Question) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.PrepSession, error)
	Get(ctx context.Context, userID, sessionID uuid.UUID) (*model.PrepSession, error)
	Delete(ctx context.Context, userID, sessionID uuid.UUID) error
}

type QuestionStore interface {
	CreateBatch(ctx context.Context, sessionID uuid.UUID, questions []model.Question) ([]model.Question, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]model.Question, error)
	TogglePin(ctx context.Context, userID uuid.UUID, qID int64) (*model.Question, error)
	UpdateNote(ctx context.Context, userID uuid.UUID, qID int64, note string) (*model.Question, error)
}

type AIService interface {
	GenerateQuestions(ctx context.Context, p ai.QuestionParams) ([]ai.QA, error)
	ExplainConcept(ctx context.Context, question string) (ai.Explanation, error)
	Provider() string
}

type Handler struct {
	Logger          *zap.Logger
	Users           UserStore
	Sessions        PrepSessionStore
	Questions       QuestionStore
	AI              AIService
	Renderer        *render.Renderer
	TokenMaker      *auth.JWTMaker
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// GetClaimsFromContext returns the claims set by the auth middleware, or nil.
func (h *Handler) GetClaimsFromContext(c *gin.Context) *auth.UserClaims {
	v, exists := c.Get(ClaimsKey)
	if !exists {
		return nil
	}
	claims, ok := v.(*auth.UserClaims)
	if !ok {
		return nil
	}
	return claims
}

// renderHTML renders markdown for a response body. Failures degrade to no HTML.
func (h *Handler) renderHTML(markdown string) template.HTML {
	out, err := h.Renderer.Render(markdown)
	if err != nil {
		h.Logger.Warn("render: markdown conversion failed", zap.Error(err))
		return ""
	}
	return out
}

func (h *Handler) questionRes(qs []model.Question) []model.QuestionRes {
	out := make([]model.QuestionRes, len(qs))
	for i, q := range qs {
		out[i] = model.QuestionRes{Question: q, AnswerHTML: h.renderHTML(q.Answer)}
	}
	return out
}

func toQuestions(qas []ai.QA) []model.Question {
	out := make([]model.Question, len(qas))
	for i, qa := range qas {
		out[i] = model.Question{Question: qa.Question, Answer: qa.Answer}
	}
	return out
}
