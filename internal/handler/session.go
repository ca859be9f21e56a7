package handler

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aryandumale04/SmartPrep/internal/ai"
	"github.com/aryandumale04/SmartPrep/internal/repository"
	"github.com/aryandumale04/SmartPrep/pkg"
	"github.com/aryandumale04/SmartPrep/pkg/model"
	"github.com/aryandumale04/SmartPrep/pkg/response"
)

func sessionRes(s *model.PrepSession) model.SessionRes {
	return model.SessionRes{PrepSession: *s, Initials: pkg.GetInitials(s.Role)}
}

func questionCount(n int) int {
	if n <= 0 {
		return model.DefaultQuestionCount
	}
	return n
}

func cleanTopics(topics []string) []string {
	out := make([]string, 0, len(topics))
	for _, t := range topics {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// aiFailed writes the response for a failed generation call.
func (h *Handler) aiFailed(c *gin.Context, op string, err error) {
	if errors.Is(err, ai.ErrNoQuestions) || errors.Is(err, ai.ErrEmptyOutput) {
		response.BadGateway(c, "the AI service returned an unusable response, please try again")
		return
	}
	h.Logger.Error(op+": ai generation failed", zap.String("provider", h.AI.Provider()), zap.Error(err))
	response.BadGateway(c, "")
}

func (h *Handler) sessionParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid session id")
		return uuid.Nil, false
	}
	return id, true
}

// CreateSession creates a prep session and its first batch of AI questions
func (h *Handler) CreateSession(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	var req model.CreateSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	topics := cleanTopics(req.Topics)
	if len(topics) == 0 {
		response.ValidationError(c, "at least one topic is required")
		return
	}

	ctx := c.Request.Context()
	qas, err := h.AI.GenerateQuestions(ctx, ai.QuestionParams{
		Role:          req.Role,
		Experience:    req.Experience,
		Topics:        topics,
		Description:   req.Description,
		QuestionCount: questionCount(req.QuestionCount),
	})
	if err != nil {
		h.aiFailed(c, "create_session", err)
		return
	}

	session := &model.PrepSession{
		UserID:      claims.UserID,
		Role:        strings.TrimSpace(req.Role),
		Experience:  strings.TrimSpace(req.Experience),
		Topics:      topics,
		Description: strings.TrimSpace(req.Description),
	}
	questions := toQuestions(qas)
	if err := h.Sessions.Create(ctx, session, questions); err != nil {
		h.Logger.Error("create_session: failed to save", zap.String("user_id", claims.UserID.String()), zap.Error(err))
		response.InternalError(c, "failed to create session")
		return
	}

	h.Logger.Info("create_session: session created",
		zap.String("session_id", session.SessionID.String()),
		zap.Int("questions", len(questions)),
	)
	response.Created(c, model.SessionDetailRes{SessionRes: sessionRes(session), Questions: h.questionRes(questions)})
}

// ListSessions returns the caller's sessions
func (h *Handler) ListSessions(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	sessions, err := h.Sessions.ListByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		h.Logger.Error("list_sessions: failed to fetch", zap.String("user_id", claims.UserID.String()), zap.Error(err))
		response.InternalError(c, "failed to fetch sessions")
		return
	}

	out := make([]model.SessionRes, len(sessions))
	for i := range sessions {
		out[i] = sessionRes(&sessions[i])
	}
	response.OKWithMeta(c, out, &response.Meta{Total: len(out)})
}

// loadSession fetches the caller's session and its questions, writing the
// error response itself when it returns false.
func (h *Handler) loadSession(c *gin.Context, op string) (*model.PrepSession, []model.Question, bool) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return nil, nil, false
	}
	id, ok := h.sessionParam(c)
	if !ok {
		return nil, nil, false
	}

	ctx := c.Request.Context()
	session, err := h.Sessions.Get(ctx, claims.UserID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "session not found")
			return nil, nil, false
		}
		h.Logger.Error(op+": failed to fetch session", zap.String("session_id", id.String()), zap.Error(err))
		response.InternalError(c, "failed to fetch session")
		return nil, nil, false
	}

	questions, err := h.Questions.ListBySession(ctx, id)
	if err != nil {
		h.Logger.Error(op+": failed to fetch questions", zap.String("session_id", id.String()), zap.Error(err))
		response.InternalError(c, "failed to fetch questions")
		return nil, nil, false
	}
	return session, questions, true
}

// GetSession returns a session with its questions and rendered answers
func (h *Handler) GetSession(c *gin.Context) {
	session, questions, ok := h.loadSession(c, "get_session")
	if !ok {
		return
	}
	response.OK(c, model.SessionDetailRes{SessionRes: sessionRes(session), Questions: h.questionRes(questions)})
}

// ExportSession downloads the session as a Markdown document
func (h *Handler) ExportSession(c *gin.Context) {
	session, questions, ok := h.loadSession(c, "export_session")
	if !ok {
		return
	}

	filename := pkg.GenerateSlug(session.Role) + ".md"
	response.Attachment(c, filename, "text/markdown; charset=utf-8", []byte(ExportMarkdown(session, questions)))
}

// ExportMarkdown lays a session out as one Markdown document.
func ExportMarkdown(s *model.PrepSession, questions []model.Question) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", s.Role)
	fmt.Fprintf(&sb, "- **Experience:** %s\n", s.Experience)
	fmt.Fprintf(&sb, "- **Topics:** %s\n", strings.Join(s.Topics, ", "))
	if s.Description != "" {
		fmt.Fprintf(&sb, "- **Description:** %s\n", s.Description)
	}
	for i, q := range questions {
		fmt.Fprintf(&sb, "\n## %d. %s\n\n", i+1, q.Question)
		sb.WriteString(strings.TrimSpace(q.Answer))
		sb.WriteString("\n")
		if note := strings.TrimSpace(q.Note); note != "" {
			sb.WriteString("\n> **Note:** ")
			sb.WriteString(strings.ReplaceAll(note, "\n", "\n> "))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// DeleteSession removes a session and its questions
func (h *Handler) DeleteSession(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}
	id, ok := h.sessionParam(c)
	if !ok {
		return
	}

	if err := h.Sessions.Delete(c.Request.Context(), claims.UserID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "session not found")
			return
		}
		h.Logger.Error("delete_session: failed", zap.String("session_id", id.String()), zap.Error(err))
		response.InternalError(c, "failed to delete session")
		return
	}
	response.Message(c, "session deleted")
}

// GenerateMore appends a new batch of AI questions to a session
func (h *Handler) GenerateMore(c *gin.Context) {
	var req model.GenerateMoreReq
	// the body is optional
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "invalid request body")
		return
	}

	session, _, ok := h.loadSession(c, "generate_more")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	qas, err := h.AI.GenerateQuestions(ctx, ai.QuestionParams{
		Role:          session.Role,
		Experience:    session.Experience,
		Topics:        session.Topics,
		Description:   session.Description,
		QuestionCount: questionCount(req.QuestionCount),
	})
	if err != nil {
		h.aiFailed(c, "generate_more", err)
		return
	}

	created, err := h.Questions.CreateBatch(ctx, session.SessionID, toQuestions(qas))
	if err != nil {
		h.Logger.Error("generate_more: failed to save", zap.String("session_id", session.SessionID.String()), zap.Error(err))
		response.InternalError(c, "failed to save questions")
		return
	}
	response.Created(c, h.questionRes(created))
}
