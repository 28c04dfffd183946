package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"telegram-language-bot/internal/domain"
	"telegram-language-bot/internal/domain/model"
	"telegram-language-bot/internal/domain/ports/repository"
	"telegram-language-bot/internal/infra/logging"
)

// Compile-time check
var _ CatalogUseCase = (*catalogUC)(nil)

// CatalogUseCase manages the section > subsection > content hierarchy.
// Premium flags are stored and returned; access decisions belong to the caller.
type CatalogUseCase interface {
	CreateSection(ctx context.Context, name, description, language string, isPremium bool, createdBy *int64) (int64, error)
	Sections(ctx context.Context, f model.SectionFilter) ([]*model.Section, error)
	Section(ctx context.Context, id int64) (*model.Section, error)
	DeleteSection(ctx context.Context, id int64) error

	CreateSubsection(ctx context.Context, sectionID int64, name, description string, isPremium bool) (int64, error)
	Subsections(ctx context.Context, sectionID int64) ([]*model.Subsection, error)
	Subsection(ctx context.Context, id int64) (*model.Subsection, error)
	DeleteSubsection(ctx context.Context, id int64) error

	AddContent(ctx context.Context, p model.NewContentParams) (int64, error)
	ContentBySection(ctx context.Context, sectionID int64) ([]*model.Content, error)
	ContentBySubsection(ctx context.Context, subsectionID int64) ([]*model.Content, error)
	Content(ctx context.Context, id int64) (*model.Content, error)
	DeleteContent(ctx context.Context, id int64) error
}

type catalogUC struct {
	sections    repository.SectionRepository
	subsections repository.SubsectionRepository
	content     repository.ContentRepository
	log         *zerolog.Logger
}

func NewCatalogUseCase(sections repository.SectionRepository, subsections repository.SubsectionRepository, content repository.ContentRepository, logger *zerolog.Logger) *catalogUC {
	return &catalogUC{sections: sections, subsections: subsections, content: content, log: logger}
}

func (c *catalogUC) CreateSection(ctx context.Context, name, description, language string, isPremium bool, createdBy *int64) (int64, error) {
	defer logging.TraceDuration(c.log, "CatalogUC.CreateSection")()
	s, err := model.NewSection(name, description, language, isPremium, createdBy)
	if err != nil {
		return 0, err
	}
	return c.sections.Create(ctx, repository.NoTX, s)
}

func (c *catalogUC) Sections(ctx context.Context, f model.SectionFilter) ([]*model.Section, error) {
	defer logging.TraceDuration(c.log, "CatalogUC.Sections")()
	return c.sections.List(ctx, repository.NoTX, f)
}

func (c *catalogUC) Section(ctx context.Context, id int64) (*model.Section, error) {
	defer logging.TraceDuration(c.log, "CatalogUC.Section")()
	return absent(c.sections.FindByID(ctx, repository.NoTX, id))
}

func (c *catalogUC) DeleteSection(ctx context.Context, id int64) error {
	defer logging.TraceDuration(c.log, "CatalogUC.DeleteSection")()
	if err := c.sections.Delete(ctx, repository.NoTX, id); err != nil {
		return err
	}
	c.log.Info().Int64("section_id", id).Msg("section deleted")
	return nil
}

func (c *catalogUC) CreateSubsection(ctx context.Context, sectionID int64, name, description string, isPremium bool) (int64, error) {
	defer logging.TraceDuration(c.log, "CatalogUC.CreateSubsection")()
	s, err := model.NewSubsection(sectionID, name, description, isPremium)
	if err != nil {
		return 0, err
	}
	return c.subsections.Create(ctx, repository.NoTX, s)
}

func (c *catalogUC) Subsections(ctx context.Context, sectionID int64) ([]*model.Subsection, error) {
	defer logging.TraceDuration(c.log, "CatalogUC.Subsections")()
	return c.subsections.ListBySection(ctx, repository.NoTX, sectionID)
}

func (c *catalogUC) Subsection(ctx context.Context, id int64) (*model.Subsection, error) {
	defer logging.TraceDuration(c.log, "CatalogUC.Subsection")()
	return absent(c.subsections.FindByID(ctx, repository.NoTX, id))
}

func (c *catalogUC) DeleteSubsection(ctx context.Context, id int64) error {
	defer logging.TraceDuration(c.log, "CatalogUC.DeleteSubsection")()
	if err := c.subsections.Delete(ctx, repository.NoTX, id); err != nil {
		return err
	}
	c.log.Info().Int64("subsection_id", id).Msg("subsection deleted")
	return nil
}

func (c *catalogUC) AddContent(ctx context.Context, p model.NewContentParams) (int64, error) {
	defer logging.TraceDuration(c.log, "CatalogUC.AddContent")()
	item, err := model.NewContent(p)
	if err != nil {
		return 0, err
	}
	return c.content.Create(ctx, repository.NoTX, item)
}

func (c *catalogUC) ContentBySection(ctx context.Context, sectionID int64) ([]*model.Content, error) {
	defer logging.TraceDuration(c.log, "CatalogUC.ContentBySection")()
	return c.content.ListBySection(ctx, repository.NoTX, sectionID)
}

func (c *catalogUC) ContentBySubsection(ctx context.Context, subsectionID int64) ([]*model.Content, error) {
	defer logging.TraceDuration(c.log, "CatalogUC.ContentBySubsection")()
	return c.content.ListBySubsection(ctx, repository.NoTX, subsectionID)
}

func (c *catalogUC) Content(ctx context.Context, id int64) (*model.Content, error) {
	defer logging.TraceDuration(c.log, "CatalogUC.Content")()
	return absent(c.content.FindByID(ctx, repository.NoTX, id))
}

func (c *catalogUC) DeleteContent(ctx context.Context, id int64) error {
	defer logging.TraceDuration(c.log, "CatalogUC.DeleteContent")()
	return c.content.Delete(ctx, repository.NoTX, id)
}

// absent turns a repository not-found into an empty result.
func absent[T any](v *T, err error) (*T, error) {
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return v, err
}
