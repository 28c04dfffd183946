package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-language-bot/internal/domain/model"
	"telegram-language-bot/internal/domain/ports/repository"
)

var _ repository.ReferralRepository = (*ReferralRepo)(nil)

type ReferralRepo struct {
	pool *pgxpool.Pool
}

func NewReferralRepo(pool *pgxpool.Pool) *ReferralRepo {
	return &ReferralRepo{pool: pool}
}

func (r *ReferralRepo) Add(ctx context.Context, tx repository.Tx, ref *model.Referral) error {
	const q = `
INSERT INTO referrals (referrer_id, referred_id, created_at)
VALUES ($1, $2, $3)
RETURNING id;`
	row, err := pickRow(ctx, r.pool, tx, q, ref.ReferrerID, ref.ReferredID, ref.CreatedAt)
	if err != nil {
		return err
	}
	if err := row.Scan(&ref.ID); err != nil {
		return fmt.Errorf("add referral: %w", err)
	}
	return nil
}

func (r *ReferralRepo) CountByReferrer(ctx context.Context, tx repository.Tx, referrerID int64) (int, error) {
	return count[int](ctx, r.pool, tx, `SELECT COUNT(*) FROM referrals WHERE referrer_id=$1;`, referrerID)
}
