package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"telegram-language-bot/internal/domain"
	"telegram-language-bot/internal/domain/ports/repository"
	"telegram-language-bot/internal/infra/logging"
)

// Compile-time check
var _ ProgressUseCase = (*progressUC)(nil)

type ProgressUseCase interface {
	MarkCompleted(ctx context.Context, userID, contentID int64) error
	Completed(ctx context.Context, userID int64) ([]int64, error)
	CompletedCount(ctx context.Context, userID int64) (int, error)
}

type progressUC struct {
	progress repository.ProgressRepository
	log      *zerolog.Logger
}

func NewProgressUseCase(progress repository.ProgressRepository, logger *zerolog.Logger) *progressUC {
	return &progressUC{progress: progress, log: logger}
}

func (p *progressUC) MarkCompleted(ctx context.Context, userID, contentID int64) error {
	defer logging.TraceDuration(p.log, "ProgressUC.MarkCompleted")()
	if userID <= 0 || contentID <= 0 {
		return domain.ErrInvalidArgument
	}
	return p.progress.MarkCompleted(ctx, repository.NoTX, userID, contentID)
}

func (p *progressUC) Completed(ctx context.Context, userID int64) ([]int64, error) {
	defer logging.TraceDuration(p.log, "ProgressUC.Completed")()
	return p.progress.ListCompleted(ctx, repository.NoTX, userID)
}

func (p *progressUC) CompletedCount(ctx context.Context, userID int64) (int, error) {
	defer logging.TraceDuration(p.log, "ProgressUC.CompletedCount")()
	return p.progress.CountCompleted(ctx, repository.NoTX, userID)
}
