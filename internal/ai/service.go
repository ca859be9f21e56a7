package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/aryandumale04/SmartPrep/internal/prompt"
)

var ErrEmptyQuestion = errors.New("ai: question is empty")

// ExplanationCache stores generated explanations by CacheKey.
type ExplanationCache interface {
	Get(ctx context.Context, key string) (Explanation, bool)
	Set(ctx context.Context, key string, value Explanation)
}

// CacheKey is stable across case and surrounding whitespace of question.
func CacheKey(question string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(question))))
	return "explain:" + hex.EncodeToString(sum[:])
}

type Service struct {
	gen    Generator
	cache  ExplanationCache
	logger *zap.Logger
}

type ServiceOption func(*Service)

func WithCache(c ExplanationCache) ServiceOption {
	return func(s *Service) { s.cache = c }
}

func NewService(gen Generator, logger *zap.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{gen: gen, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Provider() string { return s.gen.Name() }

func (s *Service) GenerateQuestions(ctx context.Context, p QuestionParams) ([]QA, error) {
	text := prompt.BuildQuestionPrompt(p.Role, p.Experience, p.Topics, p.Description, p.QuestionCount)

	raw, err := s.gen.Generate(ctx, "", text)
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	qas, err := ParseQuestions(raw)
	if err != nil {
		s.logger.Warn("ai: unusable question output",
			zap.String("provider", s.gen.Name()),
			zap.Int("raw_len", len(raw)),
			zap.Error(err))
		return nil, err
	}
	if p.QuestionCount > 0 && len(qas) > p.QuestionCount {
		qas = qas[:p.QuestionCount]
	}
	return qas, nil
}

func (s *Service) ExplainConcept(ctx context.Context, question string) (Explanation, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Explanation{}, ErrEmptyQuestion
	}

	key := CacheKey(question)
	if s.cache != nil {
		if e, ok := s.cache.Get(ctx, key); ok {
			return e, nil
		}
	}

	raw, err := s.gen.Generate(ctx, "", prompt.BuildConceptPrompt(question))
	if err != nil {
		return Explanation{}, fmt.Errorf("explain concept: %w", err)
	}

	e := ParseExplanation(raw)
	if e.Explanation == "" {
		s.logger.Warn("ai: empty explanation", zap.String("provider", s.gen.Name()))
		return Explanation{}, ErrEmptyOutput
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, e)
	}
	return e, nil
}
