package model

import (
	"encoding/json"
	"html/template"
	"time"

	"github.com/google/uuid"
)

type Question struct {
	QID       int64     `json:"q_id" db:"q_id"`
	SessionID uuid.UUID `json:"session_id" db:"session_id"`
	Question  string    `json:"question" db:"question"`
	Answer    string    `json:"answer" db:"answer"`
	Note      string    `json:"note" db:"note"`
	IsPinned  bool      `json:"is_pinned" db:"is_pinned"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// QuestionRes carries the Markdown answer and its rendered HTML.
type QuestionRes struct {
	Question
	AnswerHTML template.HTML `json:"answer_html"`
}

type UpdateNoteReq struct {
	Note string `json:"note"`
}

type GenerateQuestionsReq struct {
	Role          string   `json:"role" binding:"required"`
	Experience    string   `json:"experience" binding:"required"`
	Topics        []string `json:"topics" binding:"required,min=1"`
	Description   string   `json:"description"`
	QuestionCount int      `json:"question_count" binding:"omitempty,min=1,max=20"`
}

type ExplainReq struct {
	Question string `json:"question" binding:"required"`
}

type ExplainRes struct {
	Title    string        `json:"title"`
	Markdown string        `json:"markdown"`
	HTML     template.HTML `json:"html"`
	Provider string        `json:"provider,omitempty"`
}

// RenderReq accepts any AI response shape: a string, an object or null.
// Content stays raw so object key order survives.
type RenderReq struct {
	Content json.RawMessage `json:"content"`
}

type RenderRes struct {
	Markdown string        `json:"markdown"`
	HTML     template.HTML `json:"html"`
}
