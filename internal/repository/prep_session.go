package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aryandumale04/SmartPrep/pkg/model"
)

type PrepSessionRepository struct {
	db *pgxpool.Pool
}

// Create inserts s and its questions in one transaction, filling the ids and
// timestamps of both.
func (r *PrepSessionRepository) Create(ctx context.Context, s *model.PrepSession, questions []model.Question) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO prep_sessions (user_id, role, experience, topics, description)
VALUES ($1, $2, $3, $4, $5)
RETURNING session_id, created_at, updated_at
`
	err = tx.QueryRow(ctx, q, s.UserID, s.Role, s.Experience, s.Topics, s.Description).
		Scan(&s.SessionID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert prep session: %w", err)
	}

	for i := range questions {
		questions[i].SessionID = s.SessionID
	}
	if err := insertQuestions(ctx, tx, questions); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit prep session: %w", err)
	}
	s.QuestionCount = len(questions)
	return nil
}

// ListByUser returns the user's sessions, most recently updated first.
func (r *PrepSessionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.PrepSession, error) {
	const q = `
SELECT s.session_id, s.user_id, s.role, s.experience, s.topics, s.description,
       COUNT(q.q_id) AS question_count, s.created_at, s.updated_at
FROM prep_sessions s
LEFT JOIN questions q ON q.session_id = s.session_id
WHERE s.user_id = $1
GROUP BY s.session_id
ORDER BY s.updated_at DESC
`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("query prep sessions: %w", err)
	}
	defer rows.Close()

	out := []model.PrepSession{}
	for rows.Next() {
		s, err := scanPrepSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prep sessions: %w", err)
	}
	return out, nil
}

func (r *PrepSessionRepository) Get(ctx context.Context, userID, sessionID uuid.UUID) (*model.PrepSession, error) {
	const q = `
SELECT s.session_id, s.user_id, s.role, s.experience, s.topics, s.description,
       (SELECT COUNT(*) FROM questions q WHERE q.session_id = s.session_id) AS question_count,
       s.created_at, s.updated_at
FROM prep_sessions s
WHERE s.session_id = $1 AND s.user_id = $2
`
	s, err := scanPrepSession(r.db.QueryRow(ctx, q, sessionID, userID))
	if err != nil {
		return nil, fmt.Errorf("get prep session: %w", notFound(err))
	}
	return s, nil
}

// Delete removes the session; its questions go with it through the foreign key.
func (r *PrepSessionRepository) Delete(ctx context.Context, userID, sessionID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM prep_sessions WHERE session_id = $1 AND user_id = $2`, sessionID, userID)
	if err != nil {
		return fmt.Errorf("delete prep session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPrepSession(row pgx.Row) (*model.PrepSession, error) {
	var s model.PrepSession
	var count int64
	err := row.Scan(&s.SessionID, &s.UserID, &s.Role, &s.Experience, &s.Topics, &s.Description,
		&count, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.QuestionCount = int(count)
	return &s, nil
}
