package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"telegram-language-bot/internal/domain/model"
	"telegram-language-bot/internal/domain/ports/repository"
	"telegram-language-bot/internal/infra/logging"
)

// Compile-time check
var _ PremiumContentUseCase = (*premiumContentUC)(nil)

type PremiumContentUseCase interface {
	Add(ctx context.Context, p model.NewPremiumContentParams) (int64, error)
	// List returns every track when track is empty.
	List(ctx context.Context, track model.TrackType) ([]*model.PremiumContent, error)
	Delete(ctx context.Context, id int64) error
}

type premiumContentUC struct {
	items repository.PremiumContentRepository
	log   *zerolog.Logger
}

func NewPremiumContentUseCase(items repository.PremiumContentRepository, logger *zerolog.Logger) *premiumContentUC {
	return &premiumContentUC{items: items, log: logger}
}

func (p *premiumContentUC) Add(ctx context.Context, params model.NewPremiumContentParams) (int64, error) {
	defer logging.TraceDuration(p.log, "PremiumContentUC.Add")()
	item, err := model.NewPremiumContent(params)
	if err != nil {
		return 0, err
	}
	return p.items.Create(ctx, repository.NoTX, item)
}

func (p *premiumContentUC) List(ctx context.Context, track model.TrackType) ([]*model.PremiumContent, error) {
	defer logging.TraceDuration(p.log, "PremiumContentUC.List")()
	return p.items.List(ctx, repository.NoTX, track)
}

func (p *premiumContentUC) Delete(ctx context.Context, id int64) error {
	defer logging.TraceDuration(p.log, "PremiumContentUC.Delete")()
	return p.items.Delete(ctx, repository.NoTX, id)
}
