package model

import (
	"time"

	"telegram-language-bot/internal/domain"
)

// User is a chat user identified by their external (Telegram) numeric id.
// Counters are denormalized aggregates maintained by relative updates only.
type User struct {
	ID               int64
	Username         string
	FirstName        string
	LastName         string
	IsPremium        bool
	PremiumExpiresAt *time.Time
	ReferralCode     string
	ReferredBy       *int64
	CreatedAt        time.Time
	LastActivity     time.Time
	TotalSessions    int
	WordsLearned     int
	QuizScoreTotal   int
	QuizAttempts     int
	RatingScore      float64
	ReferralCount    int
}

// NewUserParams carries the identity fields known on first interaction.
type NewUserParams struct {
	ID         int64
	Username   string
	FirstName  string
	LastName   string
	ReferredBy *int64
}

func NewUser(p NewUserParams, referralCode string) (*User, error) {
	if p.ID <= 0 || referralCode == "" {
		return nil, domain.ErrInvalidArgument
	}
	if p.ReferredBy != nil && *p.ReferredBy == p.ID {
		return nil, domain.ErrSelfReferral
	}
	now := time.Now()
	return &User{
		ID:           p.ID,
		Username:     p.Username,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		ReferralCode: referralCode,
		ReferredBy:   p.ReferredBy,
		CreatedAt:    now,
		LastActivity: now,
	}, nil
}

// PremiumActiveAt reports whether premium is active at the given instant:
// the flag is set, an expiry is present and it lies strictly after now.
func (u *User) PremiumActiveAt(now time.Time) bool {
	if u == nil || !u.IsPremium || u.PremiumExpiresAt == nil {
		return false
	}
	if u.PremiumExpiresAt.IsZero() {
		return false
	}
	return now.Before(*u.PremiumExpiresAt)
}

// RatingDetails is the per-user progress view shown on profile screens.
type RatingDetails struct {
	Rating       float64 `json:"rating"`
	Sessions     int     `json:"sessions"`
	WordsLearned int     `json:"words_learned"`
	Referrals    int     `json:"referrals"`
}

func (u *User) RatingDetails() RatingDetails {
	if u == nil {
		return RatingDetails{}
	}
	return RatingDetails{
		Rating:       u.RatingScore,
		Sessions:     u.TotalSessions,
		WordsLearned: u.WordsLearned,
		Referrals:    u.ReferralCount,
	}
}

// PremiumUser is the projection used by premium listings.
type PremiumUser struct {
	ID               int64      `json:"user_id"`
	FirstName        string     `json:"first_name"`
	Username         string     `json:"username"`
	PremiumExpiresAt *time.Time `json:"premium_expires_at"`
}

// LeaderboardEntry is one ranked row of the leaderboard.
type LeaderboardEntry struct {
	Rank           int     `json:"rank"`
	UserID         int64   `json:"user_id"`
	FirstName      string  `json:"first_name"`
	Username       string  `json:"username"`
	RatingScore    float64 `json:"rating_score"`
	WordsLearned   int     `json:"words_learned"`
	QuizScoreTotal int     `json:"quiz_score_total"`
}
