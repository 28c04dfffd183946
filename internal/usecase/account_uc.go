package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"telegram-language-bot/internal/domain"
	"telegram-language-bot/internal/domain/model"
	"telegram-language-bot/internal/domain/ports/repository"
	"telegram-language-bot/internal/infra/logging"
	"telegram-language-bot/internal/infra/metrics"
)

// Compile-time check
var _ AccountUseCase = (*accountUC)(nil)

// errReferredUnknown is ErrNotFound for the redeeming user, kept apart from an unknown code.
var errReferredUnknown = fmt.Errorf("referred user: %w", domain.ErrNotFound)

const (
	DefaultPremiumDuration  = 30 * 24 * time.Hour
	DefaultLeaderboardLimit = 10
)

// AccountUseCase covers the user record: registration, activity, premium
// lifecycle, counters, referrals and the leaderboard.
// Fetches return (nil, nil) when the user does not exist.
type AccountUseCase interface {
	Register(ctx context.Context, p model.NewUserParams) (user *model.User, created bool, err error)
	Get(ctx context.Context, id int64) (*model.User, error)
	TouchActivity(ctx context.Context, id int64) error

	IsPremiumActive(ctx context.Context, id int64) (bool, error)
	ActivatePremium(ctx context.Context, id int64, d time.Duration) (time.Time, error)
	RevokePremium(ctx context.Context, id int64) error
	PremiumUsers(ctx context.Context) ([]model.PremiumUser, error)

	AdjustRating(ctx context.Context, id int64, points float64) error
	AdjustWordsLearned(ctx context.Context, id int64, n int) error
	IncrementReferralCount(ctx context.Context, id int64, n int) error
	ResetReferralCount(ctx context.Context, id int64) error
	RatingDetails(ctx context.Context, id int64) (model.RatingDetails, error)

	AddReferral(ctx context.Context, referrerID, referredID int64) error
	ReferralsCount(ctx context.Context, referrerID int64) (int, error)
	RedeemReferral(ctx context.Context, referredID int64, code string) (*model.User, error)
	FindByReferralCode(ctx context.Context, code string) (*model.User, error)

	AllUserIDs(ctx context.Context) ([]int64, error)
	CountUsers(ctx context.Context) (int, error)
	CountPremiumUsers(ctx context.Context) (int, error)
	Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
}

// AccountOption tunes an AccountUseCase at construction.
type AccountOption func(*accountUC)

func WithClock(now func() time.Time) AccountOption {
	return func(a *accountUC) { a.now = now }
}

func WithReferralCodes(gen ReferralCodeGenerator) AccountOption {
	return func(a *accountUC) { a.codes = gen }
}

func WithPremiumDuration(d time.Duration) AccountOption {
	return func(a *accountUC) {
		if d > 0 {
			a.premiumDefault = d
		}
	}
}

func WithLeaderboardLimit(n int) AccountOption {
	return func(a *accountUC) {
		if n > 0 {
			a.leaderboardLimit = n
		}
	}
}

type accountUC struct {
	users     repository.UserRepository
	referrals repository.ReferralRepository
	tm        repository.TransactionManager
	log       *zerolog.Logger

	now              func() time.Time
	codes            ReferralCodeGenerator
	premiumDefault   time.Duration
	leaderboardLimit int
}

func NewAccountUseCase(users repository.UserRepository, referrals repository.ReferralRepository, tm repository.TransactionManager, logger *zerolog.Logger, opts ...AccountOption) *accountUC {
	a := &accountUC{
		users:            users,
		referrals:        referrals,
		tm:               tm,
		log:              logger,
		now:              time.Now,
		codes:            NewReferralCode,
		premiumDefault:   DefaultPremiumDuration,
		leaderboardLimit: DefaultLeaderboardLimit,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Register creates the user on first contact. An existing id is returned
// unchanged with created=false. A referral code collision is retried with a
// fresh code; only exhaustion of the retries surfaces as an error.
func (a *accountUC) Register(ctx context.Context, p model.NewUserParams) (*model.User, bool, error) {
	defer logging.TraceDuration(a.log, "AccountUC.Register")()

	for attempt := 1; attempt <= referralCodeTries; attempt++ {
		code, err := a.codes()
		if err != nil {
			return nil, false, fmt.Errorf("generate referral code: %w", err)
		}
		u, err := model.NewUser(p, code)
		if err != nil {
			return nil, false, err
		}
		ts := a.now()
		u.CreatedAt, u.LastActivity = ts, ts

		created, err := a.users.Create(ctx, repository.NoTX, u)
		if errors.Is(err, domain.ErrAlreadyExists) {
			a.log.Debug().Int("attempt", attempt).Msg("referral code collision, retrying")
			continue
		}
		if err != nil {
			return nil, false, err
		}
		if created {
			metrics.IncUsersRegistered()
			a.log.Info().Int64("user_id", u.ID).Msg("user registered")
		}
		stored, err := a.Get(ctx, p.ID)
		if err != nil {
			return nil, false, err
		}
		if stored == nil {
			return nil, false, domain.ErrOperationFailed
		}
		return stored, created, nil
	}
	return nil, false, domain.ErrReferralCodeExhausted
}

func (a *accountUC) Get(ctx context.Context, id int64) (*model.User, error) {
	defer logging.TraceDuration(a.log, "AccountUC.Get")()
	return a.findUser(ctx, repository.NoTX, id)
}

func (a *accountUC) findUser(ctx context.Context, tx repository.Tx, id int64) (*model.User, error) {
	u, err := a.users.FindByID(ctx, tx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return u, err
}

func (a *accountUC) TouchActivity(ctx context.Context, id int64) error {
	defer logging.TraceDuration(a.log, "AccountUC.TouchActivity")()
	return a.users.TouchActivity(ctx, repository.NoTX, id, a.now())
}

func (a *accountUC) IsPremiumActive(ctx context.Context, id int64) (bool, error) {
	defer logging.TraceDuration(a.log, "AccountUC.IsPremiumActive")()
	u, err := a.findUser(ctx, repository.NoTX, id)
	if err != nil {
		if errors.Is(err, domain.ErrReadDatabaseRow) {
			// an unreadable row is treated as no premium
			a.log.Warn().Err(err).Int64("user_id", id).Msg("premium check on unreadable user row")
			return false, nil
		}
		return false, err
	}
	return u.PremiumActiveAt(a.now()), nil
}

// ActivatePremium sets the expiry to now+d, replacing any earlier expiry.
// A non-positive d uses the configured default.
func (a *accountUC) ActivatePremium(ctx context.Context, id int64, d time.Duration) (time.Time, error) {
	defer logging.TraceDuration(a.log, "AccountUC.ActivatePremium")()
	if d <= 0 {
		d = a.premiumDefault
	}
	expiresAt := a.now().Add(d)
	if err := a.users.SetPremium(ctx, repository.NoTX, id, expiresAt); err != nil {
		return time.Time{}, err
	}
	metrics.IncPremiumChange("activated")
	a.log.Info().Int64("user_id", id).Time("expires_at", expiresAt).Msg("premium activated")
	return expiresAt, nil
}

func (a *accountUC) RevokePremium(ctx context.Context, id int64) error {
	defer logging.TraceDuration(a.log, "AccountUC.RevokePremium")()
	if err := a.users.ClearPremium(ctx, repository.NoTX, id); err != nil {
		return err
	}
	metrics.IncPremiumChange("revoked")
	a.log.Info().Int64("user_id", id).Msg("premium revoked")
	return nil
}

func (a *accountUC) PremiumUsers(ctx context.Context) ([]model.PremiumUser, error) {
	defer logging.TraceDuration(a.log, "AccountUC.PremiumUsers")()
	return a.users.ListPremium(ctx, repository.NoTX)
}

func (a *accountUC) AdjustRating(ctx context.Context, id int64, points float64) error {
	defer logging.TraceDuration(a.log, "AccountUC.AdjustRating")()
	return a.users.AddRating(ctx, repository.NoTX, id, points)
}

// AdjustWordsLearned adds n words; n == 0 counts as one.
func (a *accountUC) AdjustWordsLearned(ctx context.Context, id int64, n int) error {
	defer logging.TraceDuration(a.log, "AccountUC.AdjustWordsLearned")()
	if n == 0 {
		n = 1
	}
	return a.users.AddWordsLearned(ctx, repository.NoTX, id, n)
}

// IncrementReferralCount adds n to the denormalized counter; n == 0 counts as one.
func (a *accountUC) IncrementReferralCount(ctx context.Context, id int64, n int) error {
	defer logging.TraceDuration(a.log, "AccountUC.IncrementReferralCount")()
	if n == 0 {
		n = 1
	}
	return a.users.AddReferralCount(ctx, repository.NoTX, id, n)
}

func (a *accountUC) ResetReferralCount(ctx context.Context, id int64) error {
	defer logging.TraceDuration(a.log, "AccountUC.ResetReferralCount")()
	return a.users.ResetReferralCount(ctx, repository.NoTX, id)
}

func (a *accountUC) RatingDetails(ctx context.Context, id int64) (model.RatingDetails, error) {
	defer logging.TraceDuration(a.log, "AccountUC.RatingDetails")()
	u, err := a.findUser(ctx, repository.NoTX, id)
	if err != nil {
		return model.RatingDetails{}, err
	}
	return u.RatingDetails(), nil
}

// AddReferral records the edge only; the referrer's counter is left alone.
func (a *accountUC) AddReferral(ctx context.Context, referrerID, referredID int64) error {
	defer logging.TraceDuration(a.log, "AccountUC.AddReferral")()
	r, err := model.NewReferral(referrerID, referredID)
	if err != nil {
		return err
	}
	return a.referrals.Add(ctx, repository.NoTX, r)
}

func (a *accountUC) ReferralsCount(ctx context.Context, referrerID int64) (int, error) {
	defer logging.TraceDuration(a.log, "AccountUC.ReferralsCount")()
	return a.referrals.CountByReferrer(ctx, repository.NoTX, referrerID)
}

// RedeemReferral links referredID to the owner of code, records the edge and
// bumps the referrer's counter in one transaction. It returns the referrer.
func (a *accountUC) RedeemReferral(ctx context.Context, referredID int64, code string) (*model.User, error) {
	defer logging.TraceDuration(a.log, "AccountUC.RedeemReferral")()

	var referrer *model.User
	err := a.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		ref, err := a.users.FindByReferralCode(ctx, tx, code)
		if err != nil {
			return err
		}
		if ref.ID == referredID {
			return domain.ErrSelfReferral
		}
		u, err := a.users.FindByID(ctx, tx, referredID)
		if errors.Is(err, domain.ErrNotFound) {
			return errReferredUnknown
		}
		if err != nil {
			return err
		}
		if u.ReferredBy != nil {
			return domain.ErrAlreadyReferred
		}
		linked, err := a.users.SetReferredBy(ctx, tx, referredID, ref.ID)
		if err != nil {
			return err
		}
		if !linked {
			return domain.ErrAlreadyReferred
		}
		edge, err := model.NewReferral(ref.ID, referredID)
		if err != nil {
			return err
		}
		if err := a.referrals.Add(ctx, tx, edge); err != nil {
			return err
		}
		if err := a.users.AddReferralCount(ctx, tx, ref.ID, 1); err != nil {
			return err
		}
		referrer = ref
		return nil
	})

	switch {
	case err == nil:
		metrics.IncReferral("recorded")
		a.log.Info().Int64("referrer_id", referrer.ID).Int64("referred_id", referredID).Msg("referral redeemed")
	case errors.Is(err, errReferredUnknown):
		metrics.IncReferral("unknown_user")
	case errors.Is(err, domain.ErrNotFound):
		metrics.IncReferral("unknown_code")
	case errors.Is(err, domain.ErrSelfReferral):
		metrics.IncReferral("self")
	case errors.Is(err, domain.ErrAlreadyReferred):
		metrics.IncReferral("already_referred")
	}
	if err != nil {
		return nil, err
	}
	return referrer, nil
}

func (a *accountUC) FindByReferralCode(ctx context.Context, code string) (*model.User, error) {
	defer logging.TraceDuration(a.log, "AccountUC.FindByReferralCode")()
	u, err := a.users.FindByReferralCode(ctx, repository.NoTX, code)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return u, err
}

func (a *accountUC) AllUserIDs(ctx context.Context) ([]int64, error) {
	defer logging.TraceDuration(a.log, "AccountUC.AllUserIDs")()
	return a.users.ListIDs(ctx, repository.NoTX)
}

func (a *accountUC) CountUsers(ctx context.Context) (int, error) {
	defer logging.TraceDuration(a.log, "AccountUC.CountUsers")()
	return a.users.CountUsers(ctx, repository.NoTX)
}

func (a *accountUC) CountPremiumUsers(ctx context.Context) (int, error) {
	defer logging.TraceDuration(a.log, "AccountUC.CountPremiumUsers")()
	return a.users.CountPremiumUsers(ctx, repository.NoTX)
}

func (a *accountUC) Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	defer logging.TraceDuration(a.log, "AccountUC.Leaderboard")()
	if limit <= 0 {
		limit = a.leaderboardLimit
	}
	return a.users.Leaderboard(ctx, repository.NoTX, limit)
}
