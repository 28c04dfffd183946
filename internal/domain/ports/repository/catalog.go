package repository

import (
	"context"

	"telegram-language-bot/internal/domain/model"
)

type SectionRepository interface {
	Create(ctx context.Context, tx Tx, s *model.Section) (int64, error)
	List(ctx context.Context, tx Tx, f model.SectionFilter) ([]*model.Section, error)
	FindByID(ctx context.Context, tx Tx, id int64) (*model.Section, error)
	// Delete removes the section together with its subsections and all content below it.
	Delete(ctx context.Context, tx Tx, id int64) error
	Count(ctx context.Context, tx Tx) (int, error)
}

type SubsectionRepository interface {
	Create(ctx context.Context, tx Tx, s *model.Subsection) (int64, error)
	ListBySection(ctx context.Context, tx Tx, sectionID int64) ([]*model.Subsection, error)
	FindByID(ctx context.Context, tx Tx, id int64) (*model.Subsection, error)
	// Delete removes the subsection and the content under it.
	Delete(ctx context.Context, tx Tx, id int64) error
}

type ContentRepository interface {
	Create(ctx context.Context, tx Tx, c *model.Content) (int64, error)
	ListBySection(ctx context.Context, tx Tx, sectionID int64) ([]*model.Content, error)
	ListBySubsection(ctx context.Context, tx Tx, subsectionID int64) ([]*model.Content, error)
	FindByID(ctx context.Context, tx Tx, id int64) (*model.Content, error)
	Delete(ctx context.Context, tx Tx, id int64) error
	Count(ctx context.Context, tx Tx) (int, error)
}

type PremiumContentRepository interface {
	Create(ctx context.Context, tx Tx, c *model.PremiumContent) (int64, error)
	// List returns items of one track, or all tracks when track is empty.
	List(ctx context.Context, tx Tx, track model.TrackType) ([]*model.PremiumContent, error)
	Delete(ctx context.Context, tx Tx, id int64) error
}

type ProgressRepository interface {
	// MarkCompleted is idempotent per (user, content).
	MarkCompleted(ctx context.Context, tx Tx, userID, contentID int64) error
	ListCompleted(ctx context.Context, tx Tx, userID int64) ([]int64, error)
	CountCompleted(ctx context.Context, tx Tx, userID int64) (int, error)
}
