package model

import (
	"time"

	"telegram-language-bot/internal/domain"
)

// Referral is an append-only edge: ReferrerID brought in ReferredID.
type Referral struct {
	ID         int64
	ReferrerID int64
	ReferredID int64
	CreatedAt  time.Time
}

func NewReferral(referrerID, referredID int64) (*Referral, error) {
	if referrerID <= 0 || referredID <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	if referrerID == referredID {
		return nil, domain.ErrSelfReferral
	}
	return &Referral{ReferrerID: referrerID, ReferredID: referredID, CreatedAt: time.Now()}, nil
}
