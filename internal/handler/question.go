package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aryandumale04/SmartPrep/internal/repository"
	"github.com/aryandumale04/SmartPrep/pkg/model"
	"github.com/aryandumale04/SmartPrep/pkg/response"
)

const maxNoteLength = 5000

func (h *Handler) questionParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		response.BadRequest(c, "invalid question id")
		return 0, false
	}
	return id, true
}

// TogglePin pins or unpins a question
func (h *Handler) TogglePin(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}
	qID, ok := h.questionParam(c)
	if !ok {
		return
	}

	q, err := h.Questions.TogglePin(c.Request.Context(), claims.UserID, qID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "question not found")
			return
		}
		h.Logger.Error("toggle_pin: failed", zap.Int64("question_id", qID), zap.Error(err))
		response.InternalError(c, "failed to update question")
		return
	}
	response.OK(c, h.questionRes([]model.Question{*q})[0])
}

// UpdateNote replaces a question's personal note
func (h *Handler) UpdateNote(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}
	qID, ok := h.questionParam(c)
	if !ok {
		return
	}

	var req model.UpdateNoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if len(req.Note) > maxNoteLength {
		response.ValidationError(c, "note is too long")
		return
	}

	q, err := h.Questions.UpdateNote(c.Request.Context(), claims.UserID, qID, req.Note)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "question not found")
			return
		}
		h.Logger.Error("update_note: failed", zap.Int64("question_id", qID), zap.Error(err))
		response.InternalError(c, "failed to update question")
		return
	}
	response.OK(c, h.questionRes([]model.Question{*q})[0])
}
