package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-language-bot/internal/domain"
	"telegram-language-bot/internal/domain/model"
	"telegram-language-bot/internal/domain/ports/repository"
)

var _ repository.PremiumContentRepository = (*PremiumContentRepo)(nil)

type PremiumContentRepo struct {
	pool *pgxpool.Pool
}

func NewPremiumContentRepo(pool *pgxpool.Pool) *PremiumContentRepo {
	return &PremiumContentRepo{pool: pool}
}

const premiumContentColumns = `id, section_type, title, description, file_id, file_type, content_text, order_index, created_at`

func (r *PremiumContentRepo) Create(ctx context.Context, tx repository.Tx, c *model.PremiumContent) (int64, error) {
	const q = `
INSERT INTO premium_content (section_type, title, description, file_id, file_type, content_text, order_index, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING id;`
	row, err := pickRow(ctx, r.pool, tx, q,
		string(c.Track), c.Title, c.Description, nullString(c.FileID), string(c.FileType),
		nullString(c.ContentText), c.OrderIndex, c.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	if err := row.Scan(&c.ID); err != nil {
		return 0, fmt.Errorf("create premium content: %w", err)
	}
	return c.ID, nil
}

func (r *PremiumContentRepo) List(ctx context.Context, tx repository.Tx, track model.TrackType) ([]*model.PremiumContent, error) {
	q := `SELECT ` + premiumContentColumns + ` FROM premium_content ORDER BY section_type, order_index, created_at, id;`
	var args []any
	if track != "" {
		q = `SELECT ` + premiumContentColumns + ` FROM premium_content WHERE section_type=$1 ORDER BY order_index, created_at, id;`
		args = append(args, string(track))
	}
	rows, err := queryRows(ctx, r.pool, tx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list premium content: %w", err)
	}
	defer rows.Close()
	var out []*model.PremiumContent
	for rows.Next() {
		var (
			c                   model.PremiumContent
			track, fileType     string
			fileID, contentText *string
		)
		if err := rows.Scan(&c.ID, &track, &c.Title, &c.Description, &fileID, &fileType, &contentText, &c.OrderIndex, &c.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		c.Track = model.TrackType(track)
		c.FileType = model.FileType(fileType)
		c.FileID = derefString(fileID)
		c.ContentText = derefString(contentText)
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

func (r *PremiumContentRepo) Delete(ctx context.Context, tx repository.Tx, id int64) error {
	ct, err := execSQL(ctx, r.pool, tx, `DELETE FROM premium_content WHERE id=$1;`, id)
	if err != nil {
		return fmt.Errorf("delete premium content: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
