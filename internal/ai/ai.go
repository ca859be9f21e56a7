// Package ai generates interview questions and concept explanations through
// an external text-generation provider.
package ai

import (
	"context"
	"errors"
)

var (
	// ErrNoQuestions means the provider's output held no usable question.
	ErrNoQuestions = errors.New("ai: no questions in model output")
	ErrEmptyOutput = errors.New("ai: empty model output")
)

// Generator is a chat-style text generation backend.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
	Name() string
}

// QA is one generated interview question with its Markdown answer.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Explanation is a generated concept explanation. Explanation is Markdown.
type Explanation struct {
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
}

type QuestionParams struct {
	Role          string
	Experience    string
	Topics        []string
	Description   string
	QuestionCount int
}
