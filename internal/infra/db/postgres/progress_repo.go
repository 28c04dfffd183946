package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-language-bot/internal/domain"
	"telegram-language-bot/internal/domain/ports/repository"
)

var _ repository.ProgressRepository = (*ProgressRepo)(nil)

type ProgressRepo struct {
	pool *pgxpool.Pool
}

func NewProgressRepo(pool *pgxpool.Pool) *ProgressRepo {
	return &ProgressRepo{pool: pool}
}

// MarkCompleted keeps the first completion time when called again.
func (r *ProgressRepo) MarkCompleted(ctx context.Context, tx repository.Tx, userID, contentID int64) error {
	const q = `
INSERT INTO user_progress (user_id, content_id, completed, completed_at)
VALUES ($1, $2, TRUE, NOW())
ON CONFLICT (user_id, content_id) DO UPDATE
  SET completed    = TRUE,
      completed_at = COALESCE(user_progress.completed_at, EXCLUDED.completed_at);`
	if _, err := execSQL(ctx, r.pool, tx, q, userID, contentID); err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}
	return nil
}

func (r *ProgressRepo) ListCompleted(ctx context.Context, tx repository.Tx, userID int64) ([]int64, error) {
	const q = `SELECT content_id FROM user_progress WHERE user_id=$1 AND completed ORDER BY completed_at, content_id;`
	rows, err := queryRows(ctx, r.pool, tx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list completed: %w", err)
	}
	defer rows.Close()
	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

func (r *ProgressRepo) CountCompleted(ctx context.Context, tx repository.Tx, userID int64) (int, error) {
	return count[int](ctx, r.pool, tx, `SELECT COUNT(*) FROM user_progress WHERE user_id=$1 AND completed;`, userID)
}
