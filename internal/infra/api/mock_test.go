//go:build !integration

package api_test

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"telegram-language-bot/internal/domain/model"
	"telegram-language-bot/internal/usecase"
)

func newLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

type mockAccountUC struct {
	usecase.AccountUseCase

	GetFunc             func(ctx context.Context, id int64) (*model.User, error)
	ActivatePremiumFunc func(ctx context.Context, id int64, d time.Duration) (time.Time, error)
	RevokePremiumFunc   func(ctx context.Context, id int64) error
	LeaderboardFunc     func(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
}

func (m *mockAccountUC) Get(ctx context.Context, id int64) (*model.User, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockAccountUC) ActivatePremium(ctx context.Context, id int64, d time.Duration) (time.Time, error) {
	if m.ActivatePremiumFunc != nil {
		return m.ActivatePremiumFunc(ctx, id, d)
	}
	return time.Time{}, nil
}

func (m *mockAccountUC) RevokePremium(ctx context.Context, id int64) error {
	if m.RevokePremiumFunc != nil {
		return m.RevokePremiumFunc(ctx, id)
	}
	return nil
}

func (m *mockAccountUC) Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	if m.LeaderboardFunc != nil {
		return m.LeaderboardFunc(ctx, limit)
	}
	return nil, nil
}

type mockStatsUC struct {
	AdminStatisticsFunc func(ctx context.Context) (*model.AdminStats, error)
}

func (m *mockStatsUC) AdminStatistics(ctx context.Context) (*model.AdminStats, error) {
	if m.AdminStatisticsFunc != nil {
		return m.AdminStatisticsFunc(ctx)
	}
	return &model.AdminStats{}, nil
}

type mockCatalogUC struct {
	usecase.CatalogUseCase

	DeleteSectionFunc func(ctx context.Context, id int64) error
}

func (m *mockCatalogUC) DeleteSection(ctx context.Context, id int64) error {
	if m.DeleteSectionFunc != nil {
		return m.DeleteSectionFunc(ctx, id)
	}
	return nil
}

type mockQuizUC struct {
	usecase.QuizUseCase

	DeleteQuizFunc func(ctx context.Context, id int64) error
}

func (m *mockQuizUC) DeleteQuiz(ctx context.Context, id int64) error {
	if m.DeleteQuizFunc != nil {
		return m.DeleteQuizFunc(ctx, id)
	}
	return nil
}

type mockPremiumContentUC struct {
	usecase.PremiumContentUseCase

	ListFunc func(ctx context.Context, track model.TrackType) ([]*model.PremiumContent, error)
}

func (m *mockPremiumContentUC) List(ctx context.Context, track model.TrackType) ([]*model.PremiumContent, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, track)
	}
	return nil, nil
}

type mockProgressUC struct {
	usecase.ProgressUseCase

	CompletedCountFunc func(ctx context.Context, userID int64) (int, error)
}

func (m *mockProgressUC) CompletedCount(ctx context.Context, userID int64) (int, error) {
	if m.CompletedCountFunc != nil {
		return m.CompletedCountFunc(ctx, userID)
	}
	return 0, nil
}

type mockLimiter struct {
	AllowFunc func(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

func (m *mockLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if m.AllowFunc != nil {
		return m.AllowFunc(ctx, key, limit, window)
	}
	return true, nil
}
