package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"telegram-language-bot/internal/domain/model"
	"telegram-language-bot/internal/domain/ports/repository"
	"telegram-language-bot/internal/infra/metrics"
	red "telegram-language-bot/internal/infra/redis"
)

var _ repository.UserRepository = (*userRepoCacheDecorator)(nil)

// userRepoCacheDecorator caches FindByID outside transactions.
// Every write drops the cached row once the inner call returns, and again after
// the enclosing transaction commits so a read racing the tx cannot pin stale data.
type userRepoCacheDecorator struct {
	repository.UserRepository
	cache red.RedisClient
	ttl   time.Duration
	log   *zerolog.Logger
}

func NewUserRepoCacheDecorator(inner repository.UserRepository, cache red.RedisClient, ttl time.Duration, logger *zerolog.Logger) repository.UserRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &userRepoCacheDecorator{
		UserRepository: inner,
		cache:          cache,
		ttl:            ttl,
		log:            logger,
	}
}

func userCacheKey(id int64) string { return fmt.Sprintf("user:id:%d", id) }

func (d *userRepoCacheDecorator) invalidate(ctx context.Context, tx repository.Tx, id int64) {
	d.drop(ctx, id)
	if tx != nil {
		repository.AfterCommit(ctx, func(ctx context.Context) { d.drop(ctx, id) })
	}
}

func (d *userRepoCacheDecorator) drop(ctx context.Context, id int64) {
	if err := d.cache.Del(ctx, userCacheKey(id)); err != nil {
		d.log.Warn().Err(err).Int64("user_id", id).Msg("user cache invalidation failed")
	}
}

func (d *userRepoCacheDecorator) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.User, error) {
	// reads inside a transaction must see its own writes
	if tx != nil {
		metrics.IncCacheRequest("user", "bypass")
		return d.UserRepository.FindByID(ctx, tx, id)
	}

	key := userCacheKey(id)
	val, err := d.cache.Get(ctx, key)
	if err == nil {
		var user model.User
		if json.Unmarshal([]byte(val), &user) == nil {
			metrics.IncCacheRequest("user", "hit")
			return &user, nil
		}
	} else if !red.IsMiss(err) {
		d.log.Warn().Err(err).Str("key", key).Msg("user cache read failed")
	}

	metrics.IncCacheRequest("user", "miss")
	user, err := d.UserRepository.FindByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if bytes, err := json.Marshal(user); err == nil {
		_ = d.cache.Set(ctx, key, bytes, d.ttl)
	}
	return user, nil
}

func (d *userRepoCacheDecorator) Create(ctx context.Context, tx repository.Tx, u *model.User) (bool, error) {
	ok, err := d.UserRepository.Create(ctx, tx, u)
	d.invalidate(ctx, tx, u.ID)
	return ok, err
}

func (d *userRepoCacheDecorator) TouchActivity(ctx context.Context, tx repository.Tx, id int64, at time.Time) error {
	err := d.UserRepository.TouchActivity(ctx, tx, id, at)
	d.invalidate(ctx, tx, id)
	return err
}

func (d *userRepoCacheDecorator) SetPremium(ctx context.Context, tx repository.Tx, id int64, expiresAt time.Time) error {
	err := d.UserRepository.SetPremium(ctx, tx, id, expiresAt)
	d.invalidate(ctx, tx, id)
	return err
}

func (d *userRepoCacheDecorator) ClearPremium(ctx context.Context, tx repository.Tx, id int64) error {
	err := d.UserRepository.ClearPremium(ctx, tx, id)
	d.invalidate(ctx, tx, id)
	return err
}

func (d *userRepoCacheDecorator) SetReferredBy(ctx context.Context, tx repository.Tx, id, referrerID int64) (bool, error) {
	ok, err := d.UserRepository.SetReferredBy(ctx, tx, id, referrerID)
	d.invalidate(ctx, tx, id)
	return ok, err
}

func (d *userRepoCacheDecorator) AddRating(ctx context.Context, tx repository.Tx, id int64, points float64) error {
	err := d.UserRepository.AddRating(ctx, tx, id, points)
	d.invalidate(ctx, tx, id)
	return err
}

func (d *userRepoCacheDecorator) AddWordsLearned(ctx context.Context, tx repository.Tx, id int64, count int) error {
	err := d.UserRepository.AddWordsLearned(ctx, tx, id, count)
	d.invalidate(ctx, tx, id)
	return err
}

func (d *userRepoCacheDecorator) AddReferralCount(ctx context.Context, tx repository.Tx, id int64, delta int) error {
	err := d.UserRepository.AddReferralCount(ctx, tx, id, delta)
	d.invalidate(ctx, tx, id)
	return err
}

func (d *userRepoCacheDecorator) ResetReferralCount(ctx context.Context, tx repository.Tx, id int64) error {
	err := d.UserRepository.ResetReferralCount(ctx, tx, id)
	d.invalidate(ctx, tx, id)
	return err
}

func (d *userRepoCacheDecorator) AddQuizResult(ctx context.Context, tx repository.Tx, id int64, score int) error {
	err := d.UserRepository.AddQuizResult(ctx, tx, id, score)
	d.invalidate(ctx, tx, id)
	return err
}
