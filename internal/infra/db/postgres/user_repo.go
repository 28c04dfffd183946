package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-language-bot/internal/domain"
	"telegram-language-bot/internal/domain/model"
	"telegram-language-bot/internal/domain/ports/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// ReferralCodeConstraint is the unique constraint guarding users.referral_code.
const ReferralCodeConstraint = "users_referral_code_key"

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `
user_id, username, first_name, last_name, is_premium, premium_expires_at,
referral_code, referred_by, created_at, last_activity, total_sessions,
words_learned, quiz_score_total, quiz_attempts, rating_score, referral_count`

// Create inserts a user; an existing id is a no-op and reports false.
// A collision on the referral code is reported as domain.ErrAlreadyExists.
func (r *UserRepo) Create(ctx context.Context, tx repository.Tx, u *model.User) (bool, error) {
	const q = `
INSERT INTO users (user_id, username, first_name, last_name, referral_code, referred_by, created_at, last_activity)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
ON CONFLICT (user_id) DO NOTHING;`
	ct, err := execSQL(ctx, r.pool, tx, q, u.ID, u.Username, u.FirstName, u.LastName, u.ReferralCode, u.ReferredBy, u.CreatedAt, u.LastActivity)
	if err != nil {
		if uniqueViolation(err, ReferralCodeConstraint) {
			return false, fmt.Errorf("create user: referral code %w", domain.ErrAlreadyExists)
		}
		return false, fmt.Errorf("create user: %w", err)
	}
	return ct.RowsAffected() == 1, nil
}

func (r *UserRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.User, error) {
	return r.queryOne(ctx, tx, `SELECT `+userColumns+` FROM users WHERE user_id=$1;`, id)
}

func (r *UserRepo) FindByReferralCode(ctx context.Context, tx repository.Tx, code string) (*model.User, error) {
	return r.queryOne(ctx, tx, `SELECT `+userColumns+` FROM users WHERE referral_code=$1;`, code)
}

func (r *UserRepo) TouchActivity(ctx context.Context, tx repository.Tx, id int64, at time.Time) error {
	const q = `UPDATE users SET last_activity=$2, total_sessions = total_sessions + 1 WHERE user_id=$1;`
	return r.exec(ctx, tx, "touch activity", q, id, at)
}

func (r *UserRepo) SetPremium(ctx context.Context, tx repository.Tx, id int64, expiresAt time.Time) error {
	const q = `UPDATE users SET is_premium = TRUE, premium_expires_at=$2 WHERE user_id=$1;`
	return r.exec(ctx, tx, "set premium", q, id, expiresAt)
}

func (r *UserRepo) ClearPremium(ctx context.Context, tx repository.Tx, id int64) error {
	const q = `UPDATE users SET is_premium = FALSE, premium_expires_at = NULL WHERE user_id=$1;`
	return r.exec(ctx, tx, "clear premium", q, id)
}

// SetReferredBy links a user to a referrer only if no referrer is recorded yet.
func (r *UserRepo) SetReferredBy(ctx context.Context, tx repository.Tx, id, referrerID int64) (bool, error) {
	const q = `UPDATE users SET referred_by=$2 WHERE user_id=$1 AND referred_by IS NULL;`
	ct, err := execSQL(ctx, r.pool, tx, q, id, referrerID)
	if err != nil {
		return false, fmt.Errorf("set referred_by: %w", err)
	}
	return ct.RowsAffected() == 1, nil
}

func (r *UserRepo) AddRating(ctx context.Context, tx repository.Tx, id int64, points float64) error {
	const q = `UPDATE users SET rating_score = rating_score + $2 WHERE user_id=$1;`
	return r.exec(ctx, tx, "add rating", q, id, points)
}

func (r *UserRepo) AddWordsLearned(ctx context.Context, tx repository.Tx, id int64, count int) error {
	const q = `UPDATE users SET words_learned = words_learned + $2 WHERE user_id=$1;`
	return r.exec(ctx, tx, "add words learned", q, id, count)
}

func (r *UserRepo) AddReferralCount(ctx context.Context, tx repository.Tx, id int64, delta int) error {
	const q = `UPDATE users SET referral_count = referral_count + $2 WHERE user_id=$1;`
	return r.exec(ctx, tx, "add referral count", q, id, delta)
}

func (r *UserRepo) ResetReferralCount(ctx context.Context, tx repository.Tx, id int64) error {
	const q = `UPDATE users SET referral_count = 0 WHERE user_id=$1;`
	return r.exec(ctx, tx, "reset referral count", q, id)
}

func (r *UserRepo) AddQuizResult(ctx context.Context, tx repository.Tx, id int64, score int) error {
	const q = `
UPDATE users
   SET quiz_score_total = quiz_score_total + $2,
       quiz_attempts    = quiz_attempts + 1
 WHERE user_id=$1;`
	return r.exec(ctx, tx, "add quiz result", q, id, score)
}

func (r *UserRepo) ListIDs(ctx context.Context, tx repository.Tx) ([]int64, error) {
	rows, err := queryRows(ctx, r.pool, tx, `SELECT user_id FROM users ORDER BY user_id;`)
	if err != nil {
		return nil, fmt.Errorf("list user ids: %w", err)
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

func (r *UserRepo) ListPremium(ctx context.Context, tx repository.Tx) ([]model.PremiumUser, error) {
	const q = `
SELECT user_id, first_name, username, premium_expires_at
  FROM users
 WHERE is_premium = TRUE
 ORDER BY premium_expires_at DESC;`
	rows, err := queryRows(ctx, r.pool, tx, q)
	if err != nil {
		return nil, fmt.Errorf("list premium users: %w", err)
	}
	defer rows.Close()
	var out []model.PremiumUser
	for rows.Next() {
		var p model.PremiumUser
		if err := rows.Scan(&p.ID, &p.FirstName, &p.Username, &p.PremiumExpiresAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

func (r *UserRepo) CountUsers(ctx context.Context, tx repository.Tx) (int, error) {
	return count[int](ctx, r.pool, tx, `SELECT COUNT(*) FROM users;`)
}

func (r *UserRepo) CountPremiumUsers(ctx context.Context, tx repository.Tx) (int, error) {
	return count[int](ctx, r.pool, tx, `SELECT COUNT(*) FROM users WHERE is_premium = TRUE;`)
}

// Leaderboard ranks users with a positive rating by rating, then words learned,
// then quiz score. user_id is the final tie-break so equal rows keep a stable order.
func (r *UserRepo) Leaderboard(ctx context.Context, tx repository.Tx, limit int) ([]model.LeaderboardEntry, error) {
	const q = `
SELECT user_id, first_name, username, rating_score, words_learned, quiz_score_total
  FROM users
 WHERE rating_score > 0
 ORDER BY rating_score DESC, words_learned DESC, quiz_score_total DESC, user_id ASC
 LIMIT $1;`
	rows, err := queryRows(ctx, r.pool, tx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	defer rows.Close()
	var out []model.LeaderboardEntry
	for rows.Next() {
		e := model.LeaderboardEntry{Rank: len(out) + 1}
		if err := rows.Scan(&e.UserID, &e.FirstName, &e.Username, &e.RatingScore, &e.WordsLearned, &e.QuizScoreTotal); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

func (r *UserRepo) exec(ctx context.Context, tx repository.Tx, op, q string, args ...any) error {
	if _, err := execSQL(ctx, r.pool, tx, q, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *UserRepo) queryOne(ctx context.Context, tx repository.Tx, sql string, args ...any) (*model.User, error) {
	row, err := pickRow(ctx, r.pool, tx, sql, args...)
	if err != nil {
		return nil, err
	}
	var u model.User
	err = row.Scan(
		&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.IsPremium, &u.PremiumExpiresAt,
		&u.ReferralCode, &u.ReferredBy, &u.CreatedAt, &u.LastActivity, &u.TotalSessions,
		&u.WordsLearned, &u.QuizScoreTotal, &u.QuizAttempts, &u.RatingScore, &u.ReferralCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &u, nil
}
