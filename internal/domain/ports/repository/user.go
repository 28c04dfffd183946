package repository

import (
	"context"
	"time"

	"telegram-language-bot/internal/domain/model"
)

// -----------------------------
// Users
// -----------------------------

// UserRepository stores user records. Every counter mutation is a relative update
// evaluated by the store; implementations must never read-modify-write in Go.
type UserRepository interface {
	// Create inserts u unless a row with the same id exists. It reports whether a row was inserted.
	Create(ctx context.Context, tx Tx, u *model.User) (bool, error)
	FindByID(ctx context.Context, tx Tx, id int64) (*model.User, error)
	FindByReferralCode(ctx context.Context, tx Tx, code string) (*model.User, error)

	TouchActivity(ctx context.Context, tx Tx, id int64, at time.Time) error
	SetPremium(ctx context.Context, tx Tx, id int64, expiresAt time.Time) error
	ClearPremium(ctx context.Context, tx Tx, id int64) error
	SetReferredBy(ctx context.Context, tx Tx, id, referrerID int64) (bool, error)

	AddRating(ctx context.Context, tx Tx, id int64, points float64) error
	AddWordsLearned(ctx context.Context, tx Tx, id int64, count int) error
	AddReferralCount(ctx context.Context, tx Tx, id int64, delta int) error
	ResetReferralCount(ctx context.Context, tx Tx, id int64) error
	AddQuizResult(ctx context.Context, tx Tx, id int64, score int) error

	ListIDs(ctx context.Context, tx Tx) ([]int64, error)
	ListPremium(ctx context.Context, tx Tx) ([]model.PremiumUser, error)
	CountUsers(ctx context.Context, tx Tx) (int, error)
	CountPremiumUsers(ctx context.Context, tx Tx) (int, error)
	Leaderboard(ctx context.Context, tx Tx, limit int) ([]model.LeaderboardEntry, error)
}

// ReferralRepository stores append-only referral edges.
type ReferralRepository interface {
	Add(ctx context.Context, tx Tx, r *model.Referral) error
	CountByReferrer(ctx context.Context, tx Tx, referrerID int64) (int, error)
}
