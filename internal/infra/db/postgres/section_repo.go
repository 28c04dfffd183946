package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-language-bot/internal/domain"
	"telegram-language-bot/internal/domain/model"
	"telegram-language-bot/internal/domain/ports/repository"
)

var _ repository.SectionRepository = (*SectionRepo)(nil)

type SectionRepo struct {
	pool *pgxpool.Pool
}

func NewSectionRepo(pool *pgxpool.Pool) *SectionRepo {
	return &SectionRepo{pool: pool}
}

const sectionColumns = `id, name, description, language, is_premium, created_by, created_at`

func (r *SectionRepo) Create(ctx context.Context, tx repository.Tx, s *model.Section) (int64, error) {
	const q = `
INSERT INTO sections (name, description, language, is_premium, created_by, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING id;`
	row, err := pickRow(ctx, r.pool, tx, q, s.Name, s.Description, s.Language, s.IsPremium, s.CreatedBy, s.CreatedAt)
	if err != nil {
		return 0, err
	}
	if err := row.Scan(&s.ID); err != nil {
		return 0, fmt.Errorf("create section: %w", err)
	}
	return s.ID, nil
}

func (r *SectionRepo) List(ctx context.Context, tx repository.Tx, f model.SectionFilter) ([]*model.Section, error) {
	var (
		where []string
		args  []any
	)
	if f.Language != "" {
		args = append(args, f.Language)
		where = append(where, fmt.Sprintf("language = $%d", len(args)))
	}
	if f.IsPremium != nil {
		args = append(args, *f.IsPremium)
		where = append(where, fmt.Sprintf("is_premium = $%d", len(args)))
	}
	q := `SELECT ` + sectionColumns + ` FROM sections`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY created_at ASC, id ASC;`

	rows, err := queryRows(ctx, r.pool, tx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	defer rows.Close()
	var out []*model.Section
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

func (r *SectionRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.Section, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT `+sectionColumns+` FROM sections WHERE id=$1;`, id)
	if err != nil {
		return nil, err
	}
	return scanSection(row)
}

// Delete removes progress rows, content, subsections and finally the section in one transaction.
// Content is matched both by section_id and by membership of its subsection in the section.
func (r *SectionRepo) Delete(ctx context.Context, tx repository.Tx, id int64) error {
	const contentScope = `
SELECT c.id FROM content c
 WHERE c.section_id = $1
    OR c.subsection_id IN (SELECT s.id FROM subsections s WHERE s.section_id = $1)`
	return runInTx(ctx, r.pool, tx, pgx.TxOptions{}, func(t pgx.Tx) error {
		if _, err := t.Exec(ctx, `DELETE FROM user_progress WHERE content_id IN (`+contentScope+`);`, id); err != nil {
			return fmt.Errorf("delete section progress: %w", err)
		}
		if _, err := t.Exec(ctx, `DELETE FROM content WHERE id IN (`+contentScope+`);`, id); err != nil {
			return fmt.Errorf("delete section content: %w", err)
		}
		if _, err := t.Exec(ctx, `DELETE FROM subsections WHERE section_id=$1;`, id); err != nil {
			return fmt.Errorf("delete subsections: %w", err)
		}
		ct, err := t.Exec(ctx, `DELETE FROM sections WHERE id=$1;`, id)
		if err != nil {
			return fmt.Errorf("delete section: %w", err)
		}
		if ct.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *SectionRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	return count[int](ctx, r.pool, tx, `SELECT COUNT(*) FROM sections;`)
}

func scanSection(row pgx.Row) (*model.Section, error) {
	var s model.Section
	if err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Language, &s.IsPremium, &s.CreatedBy, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &s, nil
}
