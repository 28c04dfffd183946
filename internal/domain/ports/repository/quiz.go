package repository

import (
	"context"

	"telegram-language-bot/internal/domain/model"
)

type QuizRepository interface {
	Create(ctx context.Context, tx Tx, q *model.Quiz) (int64, error)
	List(ctx context.Context, tx Tx, f model.QuizFilter) ([]*model.Quiz, error)
	ListByCreator(ctx context.Context, tx Tx, creatorID int64) ([]*model.Quiz, error)
	FindByID(ctx context.Context, tx Tx, id int64) (*model.Quiz, error)
	// Delete removes the quiz and its questions; attempts are kept but detached.
	Delete(ctx context.Context, tx Tx, id int64) error
	Count(ctx context.Context, tx Tx) (int, error)

	AddQuestion(ctx context.Context, tx Tx, q *model.Question) (int64, error)
	Questions(ctx context.Context, tx Tx, quizID int64) ([]*model.Question, error)
	CountQuestions(ctx context.Context, tx Tx) (int, error)
}

type QuizAttemptRepository interface {
	Add(ctx context.Context, tx Tx, a *model.QuizAttempt) (int64, error)
	ListByUser(ctx context.Context, tx Tx, userID int64, limit int) ([]*model.QuizAttempt, error)
	Count(ctx context.Context, tx Tx) (int, error)
}

// StatsRepository provides the activity aggregates that span the user table.
type StatsRepository interface {
	SumSessions(ctx context.Context, tx Tx) (int64, error)
	SumWordsLearned(ctx context.Context, tx Tx) (int64, error)
}
