package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/aryandumale04/SmartPrep/internal/ai"
	"github.com/aryandumale04/SmartPrep/pkg/model"
	"github.com/aryandumale04/SmartPrep/pkg/response"
)

// GenerateQuestions returns AI questions without saving them
func (h *Handler) GenerateQuestions(c *gin.Context) {
	var req model.GenerateQuestionsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	topics := cleanTopics(req.Topics)
	if len(topics) == 0 {
		response.ValidationError(c, "at least one topic is required")
		return
	}

	qas, err := h.AI.GenerateQuestions(c.Request.Context(), ai.QuestionParams{
		Role:          req.Role,
		Experience:    req.Experience,
		Topics:        topics,
		Description:   req.Description,
		QuestionCount: questionCount(req.QuestionCount),
	})
	if err != nil {
		h.aiFailed(c, "generate_questions", err)
		return
	}
	response.OK(c, h.questionRes(toQuestions(qas)))
}

// ExplainConcept explains an interview question
func (h *Handler) ExplainConcept(c *gin.Context) {
	var req model.ExplainReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	e, err := h.AI.ExplainConcept(c.Request.Context(), req.Question)
	if err != nil {
		if errors.Is(err, ai.ErrEmptyQuestion) {
			response.ValidationError(c, "question is required")
			return
		}
		h.aiFailed(c, "explain_concept", err)
		return
	}

	response.OK(c, model.ExplainRes{
		Title:    e.Title,
		Markdown: e.Explanation,
		HTML:     h.renderHTML(e.Explanation),
		Provider: h.AI.Provider(),
	})
}
