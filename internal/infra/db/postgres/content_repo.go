package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-language-bot/internal/domain"
	"telegram-language-bot/internal/domain/model"
	"telegram-language-bot/internal/domain/ports/repository"
)

var _ repository.ContentRepository = (*ContentRepo)(nil)

type ContentRepo struct {
	pool *pgxpool.Pool
}

func NewContentRepo(pool *pgxpool.Pool) *ContentRepo {
	return &ContentRepo{pool: pool}
}

const contentColumns = `
id, section_id, subsection_id, title, description, content_type,
file_id, file_path, content_text, is_premium, created_at`

func (r *ContentRepo) Create(ctx context.Context, tx repository.Tx, c *model.Content) (int64, error) {
	const q = `
INSERT INTO content (section_id, subsection_id, title, description, content_type, file_id, file_path, content_text, is_premium, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
RETURNING id;`
	row, err := pickRow(ctx, r.pool, tx, q,
		nullID(c.SectionID), nullID(c.SubsectionID), c.Title, c.Description, string(c.ContentType),
		nullString(c.FileID), nullString(c.FilePath), nullString(c.ContentText), c.IsPremium, c.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	if err := row.Scan(&c.ID); err != nil {
		return 0, fmt.Errorf("create content: %w", err)
	}
	return c.ID, nil
}

func (r *ContentRepo) ListBySection(ctx context.Context, tx repository.Tx, sectionID int64) ([]*model.Content, error) {
	return r.list(ctx, tx, `SELECT `+contentColumns+` FROM content WHERE section_id=$1 ORDER BY created_at ASC, id ASC;`, sectionID)
}

func (r *ContentRepo) ListBySubsection(ctx context.Context, tx repository.Tx, subsectionID int64) ([]*model.Content, error) {
	return r.list(ctx, tx, `SELECT `+contentColumns+` FROM content WHERE subsection_id=$1 ORDER BY created_at ASC, id ASC;`, subsectionID)
}

func (r *ContentRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.Content, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT `+contentColumns+` FROM content WHERE id=$1;`, id)
	if err != nil {
		return nil, err
	}
	return scanContent(row)
}

func (r *ContentRepo) Delete(ctx context.Context, tx repository.Tx, id int64) error {
	return runInTx(ctx, r.pool, tx, pgx.TxOptions{}, func(t pgx.Tx) error {
		if _, err := t.Exec(ctx, `DELETE FROM user_progress WHERE content_id=$1;`, id); err != nil {
			return fmt.Errorf("delete content progress: %w", err)
		}
		ct, err := t.Exec(ctx, `DELETE FROM content WHERE id=$1;`, id)
		if err != nil {
			return fmt.Errorf("delete content: %w", err)
		}
		if ct.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *ContentRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	return count[int](ctx, r.pool, tx, `SELECT COUNT(*) FROM content;`)
}

func (r *ContentRepo) list(ctx context.Context, tx repository.Tx, q string, args ...any) ([]*model.Content, error) {
	rows, err := queryRows(ctx, r.pool, tx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	defer rows.Close()
	var out []*model.Content
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

func scanContent(row pgx.Row) (*model.Content, error) {
	var (
		c                          model.Content
		sectionID, subsectionID    *int64
		contentType                string
		fileID, filePath, bodyText *string
	)
	err := row.Scan(&c.ID, &sectionID, &subsectionID, &c.Title, &c.Description, &contentType,
		&fileID, &filePath, &bodyText, &c.IsPremium, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	c.SectionID = derefID(sectionID)
	c.SubsectionID = derefID(subsectionID)
	c.ContentType = model.FileType(contentType)
	c.FileID = derefString(fileID)
	c.FilePath = derefString(filePath)
	c.ContentText = derefString(bodyText)
	return &c, nil
}
