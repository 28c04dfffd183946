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

var _ repository.QuizRepository = (*QuizRepo)(nil)

type QuizRepo struct {
	pool *pgxpool.Pool
}

func NewQuizRepo(pool *pgxpool.Pool) *QuizRepo {
	return &QuizRepo{pool: pool}
}

const quizColumns = `id, title, description, language, category, is_premium, created_by, created_at`

func (r *QuizRepo) Create(ctx context.Context, tx repository.Tx, q *model.Quiz) (int64, error) {
	const stmt = `
INSERT INTO quizzes (title, description, language, category, is_premium, created_by, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING id;`
	row, err := pickRow(ctx, r.pool, tx, stmt, q.Title, q.Description, q.Language, string(q.Category), q.IsPremium, q.CreatedBy, q.CreatedAt)
	if err != nil {
		return 0, err
	}
	if err := row.Scan(&q.ID); err != nil {
		return 0, fmt.Errorf("create quiz: %w", err)
	}
	return q.ID, nil
}

func (r *QuizRepo) List(ctx context.Context, tx repository.Tx, f model.QuizFilter) ([]*model.Quiz, error) {
	var (
		where []string
		args  []any
	)
	if f.Language != "" {
		args = append(args, f.Language)
		where = append(where, fmt.Sprintf("language = $%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, string(f.Category))
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	q := `SELECT ` + quizColumns + ` FROM quizzes`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY created_at DESC, id DESC;`
	return r.list(ctx, tx, q, args...)
}

func (r *QuizRepo) ListByCreator(ctx context.Context, tx repository.Tx, creatorID int64) ([]*model.Quiz, error) {
	return r.list(ctx, tx, `SELECT `+quizColumns+` FROM quizzes WHERE created_by=$1 ORDER BY created_at DESC, id DESC;`, creatorID)
}

func (r *QuizRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.Quiz, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT `+quizColumns+` FROM quizzes WHERE id=$1;`, id)
	if err != nil {
		return nil, err
	}
	return scanQuiz(row)
}

func (r *QuizRepo) Delete(ctx context.Context, tx repository.Tx, id int64) error {
	return runInTx(ctx, r.pool, tx, pgx.TxOptions{}, func(t pgx.Tx) error {
		if _, err := t.Exec(ctx, `UPDATE quiz_attempts SET quiz_id = NULL WHERE quiz_id=$1;`, id); err != nil {
			return fmt.Errorf("detach quiz attempts: %w", err)
		}
		if _, err := t.Exec(ctx, `DELETE FROM questions WHERE quiz_id=$1;`, id); err != nil {
			return fmt.Errorf("delete questions: %w", err)
		}
		ct, err := t.Exec(ctx, `DELETE FROM quizzes WHERE id=$1;`, id)
		if err != nil {
			return fmt.Errorf("delete quiz: %w", err)
		}
		if ct.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *QuizRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	return count[int](ctx, r.pool, tx, `SELECT COUNT(*) FROM quizzes;`)
}

func (r *QuizRepo) AddQuestion(ctx context.Context, tx repository.Tx, q *model.Question) (int64, error) {
	const stmt = `
INSERT INTO questions (quiz_id, question_text, option_a, option_b, option_c, option_d, correct_answer, explanation)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING id;`
	row, err := pickRow(ctx, r.pool, tx, stmt, q.QuizID, q.Text, q.OptionA, q.OptionB, q.OptionC, q.OptionD, string(q.CorrectAnswer), q.Explanation)
	if err != nil {
		return 0, err
	}
	if err := row.Scan(&q.ID); err != nil {
		return 0, fmt.Errorf("add question: %w", err)
	}
	return q.ID, nil
}

func (r *QuizRepo) Questions(ctx context.Context, tx repository.Tx, quizID int64) ([]*model.Question, error) {
	const q = `
SELECT id, quiz_id, question_text, option_a, option_b, option_c, option_d, correct_answer, explanation
  FROM questions
 WHERE quiz_id=$1
 ORDER BY id ASC;`
	rows, err := queryRows(ctx, r.pool, tx, q, quizID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()
	var out []*model.Question
	for rows.Next() {
		var (
			qq      model.Question
			correct string
		)
		if err := rows.Scan(&qq.ID, &qq.QuizID, &qq.Text, &qq.OptionA, &qq.OptionB, &qq.OptionC, &qq.OptionD, &correct, &qq.Explanation); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		qq.CorrectAnswer = model.OptionLabel(correct)
		out = append(out, &qq)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

func (r *QuizRepo) CountQuestions(ctx context.Context, tx repository.Tx) (int, error) {
	return count[int](ctx, r.pool, tx, `SELECT COUNT(*) FROM questions;`)
}

func (r *QuizRepo) list(ctx context.Context, tx repository.Tx, q string, args ...any) ([]*model.Quiz, error) {
	rows, err := queryRows(ctx, r.pool, tx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()
	var out []*model.Quiz
	for rows.Next() {
		qz, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, qz)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

func scanQuiz(row pgx.Row) (*model.Quiz, error) {
	var (
		q        model.Quiz
		category string
	)
	if err := row.Scan(&q.ID, &q.Title, &q.Description, &q.Language, &category, &q.IsPremium, &q.CreatedBy, &q.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	q.Category = model.QuizCategory(category)
	return &q, nil
}
