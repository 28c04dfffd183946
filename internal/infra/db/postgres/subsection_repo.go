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

var _ repository.SubsectionRepository = (*SubsectionRepo)(nil)

type SubsectionRepo struct {
	pool *pgxpool.Pool
}

func NewSubsectionRepo(pool *pgxpool.Pool) *SubsectionRepo {
	return &SubsectionRepo{pool: pool}
}

const subsectionColumns = `id, section_id, name, description, is_premium, created_at`

func (r *SubsectionRepo) Create(ctx context.Context, tx repository.Tx, s *model.Subsection) (int64, error) {
	const q = `
INSERT INTO subsections (section_id, name, description, is_premium, created_at)
VALUES ($1,$2,$3,$4,$5)
RETURNING id;`
	row, err := pickRow(ctx, r.pool, tx, q, s.SectionID, s.Name, s.Description, s.IsPremium, s.CreatedAt)
	if err != nil {
		return 0, err
	}
	if err := row.Scan(&s.ID); err != nil {
		return 0, fmt.Errorf("create subsection: %w", err)
	}
	return s.ID, nil
}

func (r *SubsectionRepo) ListBySection(ctx context.Context, tx repository.Tx, sectionID int64) ([]*model.Subsection, error) {
	q := `SELECT ` + subsectionColumns + ` FROM subsections WHERE section_id=$1 ORDER BY created_at ASC, id ASC;`
	rows, err := queryRows(ctx, r.pool, tx, q, sectionID)
	if err != nil {
		return nil, fmt.Errorf("list subsections: %w", err)
	}
	defer rows.Close()
	var out []*model.Subsection
	for rows.Next() {
		s, err := scanSubsection(rows)
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

func (r *SubsectionRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.Subsection, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT `+subsectionColumns+` FROM subsections WHERE id=$1;`, id)
	if err != nil {
		return nil, err
	}
	return scanSubsection(row)
}

func (r *SubsectionRepo) Delete(ctx context.Context, tx repository.Tx, id int64) error {
	return runInTx(ctx, r.pool, tx, pgx.TxOptions{}, func(t pgx.Tx) error {
		const progress = `DELETE FROM user_progress WHERE content_id IN (SELECT id FROM content WHERE subsection_id=$1);`
		if _, err := t.Exec(ctx, progress, id); err != nil {
			return fmt.Errorf("delete subsection progress: %w", err)
		}
		if _, err := t.Exec(ctx, `DELETE FROM content WHERE subsection_id=$1;`, id); err != nil {
			return fmt.Errorf("delete subsection content: %w", err)
		}
		ct, err := t.Exec(ctx, `DELETE FROM subsections WHERE id=$1;`, id)
		if err != nil {
			return fmt.Errorf("delete subsection: %w", err)
		}
		if ct.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func scanSubsection(row pgx.Row) (*model.Subsection, error) {
	var s model.Subsection
	if err := row.Scan(&s.ID, &s.SectionID, &s.Name, &s.Description, &s.IsPremium, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &s, nil
}
