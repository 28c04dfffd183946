package usecase

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"telegram-language-bot/internal/domain/model"
	"telegram-language-bot/internal/domain/ports/repository"
	"telegram-language-bot/internal/infra/logging"
	"telegram-language-bot/internal/infra/metrics"
)

// Compile-time check
var _ QuizUseCase = (*quizUC)(nil)

type QuizUseCase interface {
	CreateQuiz(ctx context.Context, p model.NewQuizParams) (int64, error)
	Quizzes(ctx context.Context, f model.QuizFilter) ([]*model.Quiz, error)
	QuizzesByCreator(ctx context.Context, creatorID int64) ([]*model.Quiz, error)
	Quiz(ctx context.Context, id int64) (*model.Quiz, error)
	DeleteQuiz(ctx context.Context, id int64) error

	AddQuestion(ctx context.Context, quizID int64, text string, options [4]string, correct model.OptionLabel, explanation string) (int64, error)
	Questions(ctx context.Context, quizID int64) ([]*model.Question, error)

	// RecordAttempt appends the attempt and adds score to the user's quiz totals atomically.
	RecordAttempt(ctx context.Context, userID, quizID int64, score, total int) (*model.QuizAttempt, error)
	Attempts(ctx context.Context, userID int64, limit int) ([]*model.QuizAttempt, error)
}

type quizUC struct {
	quizzes  repository.QuizRepository
	attempts repository.QuizAttemptRepository
	users    repository.UserRepository
	tm       repository.TransactionManager
	log      *zerolog.Logger
}

func NewQuizUseCase(quizzes repository.QuizRepository, attempts repository.QuizAttemptRepository, users repository.UserRepository, tm repository.TransactionManager, logger *zerolog.Logger) *quizUC {
	return &quizUC{quizzes: quizzes, attempts: attempts, users: users, tm: tm, log: logger}
}

func (q *quizUC) CreateQuiz(ctx context.Context, p model.NewQuizParams) (int64, error) {
	defer logging.TraceDuration(q.log, "QuizUC.CreateQuiz")()
	quiz, err := model.NewQuiz(p)
	if err != nil {
		return 0, err
	}
	return q.quizzes.Create(ctx, repository.NoTX, quiz)
}

func (q *quizUC) Quizzes(ctx context.Context, f model.QuizFilter) ([]*model.Quiz, error) {
	defer logging.TraceDuration(q.log, "QuizUC.Quizzes")()
	return q.quizzes.List(ctx, repository.NoTX, f)
}

func (q *quizUC) QuizzesByCreator(ctx context.Context, creatorID int64) ([]*model.Quiz, error) {
	defer logging.TraceDuration(q.log, "QuizUC.QuizzesByCreator")()
	return q.quizzes.ListByCreator(ctx, repository.NoTX, creatorID)
}

func (q *quizUC) Quiz(ctx context.Context, id int64) (*model.Quiz, error) {
	defer logging.TraceDuration(q.log, "QuizUC.Quiz")()
	return absent(q.quizzes.FindByID(ctx, repository.NoTX, id))
}

func (q *quizUC) DeleteQuiz(ctx context.Context, id int64) error {
	defer logging.TraceDuration(q.log, "QuizUC.DeleteQuiz")()
	if err := q.quizzes.Delete(ctx, repository.NoTX, id); err != nil {
		return err
	}
	q.log.Info().Int64("quiz_id", id).Msg("quiz deleted")
	return nil
}

func (q *quizUC) AddQuestion(ctx context.Context, quizID int64, text string, options [4]string, correct model.OptionLabel, explanation string) (int64, error) {
	defer logging.TraceDuration(q.log, "QuizUC.AddQuestion")()
	label, err := model.ParseOptionLabel(string(correct))
	if err != nil {
		return 0, err
	}
	question, err := model.NewQuestion(quizID, text, options, label, explanation)
	if err != nil {
		return 0, err
	}
	return q.quizzes.AddQuestion(ctx, repository.NoTX, question)
}

func (q *quizUC) Questions(ctx context.Context, quizID int64) ([]*model.Question, error) {
	defer logging.TraceDuration(q.log, "QuizUC.Questions")()
	return q.quizzes.Questions(ctx, repository.NoTX, quizID)
}

func (q *quizUC) RecordAttempt(ctx context.Context, userID, quizID int64, score, total int) (*model.QuizAttempt, error) {
	defer logging.TraceDuration(q.log, "QuizUC.RecordAttempt")()

	attempt, err := model.NewQuizAttempt(userID, quizID, score, total)
	if err != nil {
		return nil, err
	}
	var category model.QuizCategory
	err = q.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		quiz, err := q.quizzes.FindByID(ctx, tx, quizID)
		if err != nil {
			return err
		}
		category = quiz.Category
		if _, err := q.attempts.Add(ctx, tx, attempt); err != nil {
			return err
		}
		return q.users.AddQuizResult(ctx, tx, userID, score)
	})
	if err != nil {
		q.log.Error().Err(err).Int64("user_id", userID).Int64("quiz_id", quizID).Msg("record quiz attempt failed")
		return nil, err
	}
	metrics.ObserveQuizAttempt(string(category), score, total)
	return attempt, nil
}

func (q *quizUC) Attempts(ctx context.Context, userID int64, limit int) ([]*model.QuizAttempt, error) {
	defer logging.TraceDuration(q.log, "QuizUC.Attempts")()
	return q.attempts.ListByUser(ctx, repository.NoTX, userID, limit)
}
