package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-language-bot/internal/domain"
	"telegram-language-bot/internal/domain/model"
	"telegram-language-bot/internal/domain/ports/repository"
)

var _ repository.QuizAttemptRepository = (*AttemptRepo)(nil)

type AttemptRepo struct {
	pool *pgxpool.Pool
}

func NewAttemptRepo(pool *pgxpool.Pool) *AttemptRepo {
	return &AttemptRepo{pool: pool}
}

func (r *AttemptRepo) Add(ctx context.Context, tx repository.Tx, a *model.QuizAttempt) (int64, error) {
	const q = `
INSERT INTO quiz_attempts (user_id, quiz_id, score, total_questions, completed_at)
VALUES ($1,$2,$3,$4,$5)
RETURNING id;`
	row, err := pickRow(ctx, r.pool, tx, q, a.UserID, nullID(a.QuizID), a.Score, a.TotalQuestions, a.CompletedAt)
	if err != nil {
		return 0, err
	}
	if err := row.Scan(&a.ID); err != nil {
		return 0, fmt.Errorf("add quiz attempt: %w", err)
	}
	return a.ID, nil
}

// ListByUser returns the most recent attempts first; limit <= 0 returns all of them.
func (r *AttemptRepo) ListByUser(ctx context.Context, tx repository.Tx, userID int64, limit int) ([]*model.QuizAttempt, error) {
	q := `
SELECT id, user_id, quiz_id, score, total_questions, completed_at
  FROM quiz_attempts
 WHERE user_id=$1
 ORDER BY completed_at DESC, id DESC`
	args := []any{userID}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := queryRows(ctx, r.pool, tx, q+";", args...)
	if err != nil {
		return nil, fmt.Errorf("list quiz attempts: %w", err)
	}
	defer rows.Close()
	var out []*model.QuizAttempt
	for rows.Next() {
		var (
			a      model.QuizAttempt
			quizID *int64
		)
		if err := rows.Scan(&a.ID, &a.UserID, &quizID, &a.Score, &a.TotalQuestions, &a.CompletedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		a.QuizID = derefID(quizID)
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

func (r *AttemptRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	return count[int](ctx, r.pool, tx, `SELECT COUNT(*) FROM quiz_attempts;`)
}
