package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"telegram-language-bot/internal/domain/model"
	"telegram-language-bot/internal/domain/ports/repository"
	"telegram-language-bot/internal/infra/logging"
)

// Compile-time check
var _ StatsUseCase = (*statsUC)(nil)

type StatsUseCase interface {
	// AdminStatistics computes each figure with its own query; the set is not a snapshot.
	AdminStatistics(ctx context.Context) (*model.AdminStats, error)
}

type statsUC struct {
	users    repository.UserRepository
	sections repository.SectionRepository
	content  repository.ContentRepository
	quizzes  repository.QuizRepository
	attempts repository.QuizAttemptRepository
	totals   repository.StatsRepository

	log *zerolog.Logger
}

func NewStatsUseCase(
	users repository.UserRepository,
	sections repository.SectionRepository,
	content repository.ContentRepository,
	quizzes repository.QuizRepository,
	attempts repository.QuizAttemptRepository,
	totals repository.StatsRepository,
	logger *zerolog.Logger,
) *statsUC {
	return &statsUC{
		users:    users,
		sections: sections,
		content:  content,
		quizzes:  quizzes,
		attempts: attempts,
		totals:   totals,
		log:      logger,
	}
}

func (s *statsUC) AdminStatistics(ctx context.Context) (*model.AdminStats, error) {
	defer logging.TraceDuration(s.log, "StatsUC.AdminStatistics")()

	var (
		st  model.AdminStats
		err error
	)
	if st.TotalUsers, err = s.users.CountUsers(ctx, repository.NoTX); err != nil {
		return nil, err
	}
	if st.PremiumUsers, err = s.users.CountPremiumUsers(ctx, repository.NoTX); err != nil {
		return nil, err
	}
	if st.TotalSections, err = s.sections.Count(ctx, repository.NoTX); err != nil {
		return nil, err
	}
	if st.TotalContent, err = s.content.Count(ctx, repository.NoTX); err != nil {
		return nil, err
	}
	if st.TotalQuizzes, err = s.quizzes.Count(ctx, repository.NoTX); err != nil {
		return nil, err
	}
	if st.TotalQuestions, err = s.quizzes.CountQuestions(ctx, repository.NoTX); err != nil {
		return nil, err
	}
	if st.TotalQuizAttempts, err = s.attempts.Count(ctx, repository.NoTX); err != nil {
		return nil, err
	}
	if st.TotalSessions, err = s.totals.SumSessions(ctx, repository.NoTX); err != nil {
		return nil, err
	}
	if st.TotalWordsLearned, err = s.totals.SumWordsLearned(ctx, repository.NoTX); err != nil {
		return nil, err
	}
	return &st, nil
}
