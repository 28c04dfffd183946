package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-language-bot/internal/domain/ports/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

type StatsRepo struct {
	pool *pgxpool.Pool
}

func NewStatsRepo(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

func (r *StatsRepo) SumSessions(ctx context.Context, tx repository.Tx) (int64, error) {
	return count[int64](ctx, r.pool, tx, `SELECT COALESCE(SUM(total_sessions), 0)::BIGINT FROM users;`)
}

func (r *StatsRepo) SumWordsLearned(ctx context.Context, tx repository.Tx) (int64, error) {
	return count[int64](ctx, r.pool, tx, `SELECT COALESCE(SUM(words_learned), 0)::BIGINT FROM users;`)
}
