package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultQuestionCount = 10
	MaxQuestionCount     = 20
)

// PrepSession is one interview-preparation session: a target role plus the
// questions generated for it.
type PrepSession struct {
	SessionID     uuid.UUID `json:"session_id" db:"session_id"`
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	Role          string    `json:"role" db:"role"`
	Experience    string    `json:"experience" db:"experience"`
	Topics        []string  `json:"topics" db:"topics"`
	Description   string    `json:"description" db:"description"`
	QuestionCount int       `json:"question_count" db:"question_count"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

type CreateSessionReq struct {
	Role          string   `json:"role" binding:"required"`
	Experience    string   `json:"experience" binding:"required"`
	Topics        []string `json:"topics" binding:"required,min=1"`
	Description   string   `json:"description"`
	QuestionCount int      `json:"question_count" binding:"omitempty,min=1,max=20"`
}

type GenerateMoreReq struct {
	QuestionCount int `json:"question_count" binding:"omitempty,min=1,max=20"`
}

type SessionRes struct {
	PrepSession
	Initials string `json:"initials"`
}

type SessionDetailRes struct {
	SessionRes
	Questions []QuestionRes `json:"questions"`
}
