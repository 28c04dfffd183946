//go:build !integration

package postgres

import (
	"context"
	"time"

	"telegram-language-bot/internal/domain/model"
	"telegram-language-bot/internal/domain/ports/repository"
	red "telegram-language-bot/internal/infra/redis"
)

// mockInnerUserRepo embeds the interface so tests only stub what they use.
type mockInnerUserRepo struct {
	repository.UserRepository
	FindByIDFunc   func(ctx context.Context, tx repository.Tx, id int64) (*model.User, error)
	AddRatingFunc  func(ctx context.Context, tx repository.Tx, id int64, points float64) error
	SetPremiumFunc func(ctx context.Context, tx repository.Tx, id int64, expiresAt time.Time) error
}

func (m *mockInnerUserRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.User, error) {
	return m.FindByIDFunc(ctx, tx, id)
}
func (m *mockInnerUserRepo) AddRating(ctx context.Context, tx repository.Tx, id int64, points float64) error {
	return m.AddRatingFunc(ctx, tx, id, points)
}
func (m *mockInnerUserRepo) SetPremium(ctx context.Context, tx repository.Tx, id int64, expiresAt time.Time) error {
	return m.SetPremiumFunc(ctx, tx, id, expiresAt)
}

// mockRedisClient mocks our Redis client wrapper.
type mockRedisClient struct {
	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	DelFunc    func(ctx context.Context, keys ...string) error
	PingFunc   func(ctx context.Context) error
	IncrFunc   func(ctx context.Context, key string) (int64, error)
	ExpireFunc func(ctx context.Context, key string, expiration time.Duration) error
	CloseFunc  func() error
}

var _ red.RedisClient = &mockRedisClient{}

func (m *mockRedisClient) Get(ctx context.Context, key string) (string, error) {
	return m.GetFunc(ctx, key)
}
func (m *mockRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return m.SetFunc(ctx, key, value, expiration)
}
func (m *mockRedisClient) Del(ctx context.Context, keys ...string) error {
	return m.DelFunc(ctx, keys...)
}
func (m *mockRedisClient) Ping(ctx context.Context) error { return m.PingFunc(ctx) }
func (m *mockRedisClient) Incr(ctx context.Context, key string) (int64, error) {
	return m.IncrFunc(ctx, key)
}
func (m *mockRedisClient) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return m.ExpireFunc(ctx, key, expiration)
}
func (m *mockRedisClient) Close() error { return m.CloseFunc() }
