package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aryandumale04/SmartPrep/pkg/model"
)

type QuestionRepository struct {
	db *pgxpool.Pool
}

const questionColumns = `q_id, session_id, question, answer, note, is_pinned, created_at`

// CreateBatch appends questions to a session and bumps its updated_at.
func (r *QuestionRepository) CreateBatch(ctx context.Context, sessionID uuid.UUID, questions []model.Question) ([]model.Question, error) {
	for i := range questions {
		questions[i].SessionID = sessionID
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insertQuestions(ctx, tx, questions); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `UPDATE prep_sessions SET updated_at = now() WHERE session_id = $1`, sessionID); err != nil {
		return nil, fmt.Errorf("touch prep session: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit questions: %w", err)
	}
	return questions, nil
}

func insertQuestions(ctx context.Context, db batcher, questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	const q = `
INSERT INTO questions (session_id, question, answer)
VALUES ($1, $2, $3)
RETURNING q_id, note, is_pinned, created_at
`
	for _, question := range questions {
		batch.Queue(q, question.SessionID, question.Question, question.Answer)
	}

	br := db.SendBatch(ctx, batch)
	defer br.Close()

	for i := range questions {
		qs := &questions[i]
		if err := br.QueryRow().Scan(&qs.QID, &qs.Note, &qs.IsPinned, &qs.CreatedAt); err != nil {
			return fmt.Errorf("batch insert question %d: %w", i, err)
		}
	}
	return nil
}

// ListBySession returns pinned questions first, then in creation order.
func (r *QuestionRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]model.Question, error) {
	q := `SELECT ` + questionColumns + `
FROM questions
WHERE session_id = $1
ORDER BY is_pinned DESC, created_at ASC, q_id ASC`

	rows, err := r.db.Query(ctx, q, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	out := []model.Question{}
	for rows.Next() {
		qs, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		out = append(out, *qs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return out, nil
}

// TogglePin flips is_pinned on a question owned by userID.
func (r *QuestionRepository) TogglePin(ctx context.Context, userID uuid.UUID, qID int64) (*model.Question, error) {
	const q = `
UPDATE questions AS q SET is_pinned = NOT q.is_pinned
FROM prep_sessions s
WHERE q.q_id = $1 AND q.session_id = s.session_id AND s.user_id = $2
RETURNING q.q_id, q.session_id, q.question, q.answer, q.note, q.is_pinned, q.created_at
`
	qs, err := scanQuestion(r.db.QueryRow(ctx, q, qID, userID))
	if err != nil {
		return nil, fmt.Errorf("toggle pin: %w", notFound(err))
	}
	return qs, nil
}

func (r *QuestionRepository) UpdateNote(ctx context.Context, userID uuid.UUID, qID int64, note string) (*model.Question, error) {
	const q = `
UPDATE questions AS q SET note = $3
FROM prep_sessions s
WHERE q.q_id = $1 AND q.session_id = s.session_id AND s.user_id = $2
RETURNING q.q_id, q.session_id, q.question, q.answer, q.note, q.is_pinned, q.created_at
`
	qs, err := scanQuestion(r.db.QueryRow(ctx, q, qID, userID, note))
	if err != nil {
		return nil, fmt.Errorf("update note: %w", notFound(err))
	}
	return qs, nil
}

func scanQuestion(row pgx.Row) (*model.Question, error) {
	var qs model.Question
	if err := row.Scan(&qs.QID, &qs.SessionID, &qs.Question, &qs.Answer, &qs.Note, &qs.IsPinned, &qs.CreatedAt); err != nil {
		return nil, err
	}
	return &qs, nil
}
