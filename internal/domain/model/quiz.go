package model

import (
	"strings"
	"time"

	"telegram-language-bot/internal/domain"
)

// QuizCategory is the closed set of quiz categories.
type QuizCategory string

const (
	CategoryVocabulary QuizCategory = "vocabulary"
	CategoryGrammar    QuizCategory = "grammar"
	CategoryReading    QuizCategory = "reading"
	CategoryListening  QuizCategory = "listening"
	CategoryGeneral    QuizCategory = "general"
)

var quizCategories = map[QuizCategory]struct{}{
	CategoryVocabulary: {}, CategoryGrammar: {}, CategoryReading: {},
	CategoryListening: {}, CategoryGeneral: {},
}

func (c QuizCategory) Valid() bool {
	_, ok := quizCategories[c]
	return ok
}

// OptionLabel names one of the four answer options.
type OptionLabel string

const (
	OptionA OptionLabel = "A"
	OptionB OptionLabel = "B"
	OptionC OptionLabel = "C"
	OptionD OptionLabel = "D"
)

func ParseOptionLabel(s string) (OptionLabel, error) {
	l := OptionLabel(strings.ToUpper(strings.TrimSpace(s)))
	switch l {
	case OptionA, OptionB, OptionC, OptionD:
		return l, nil
	}
	return "", domain.ErrInvalidArgument
}

type Quiz struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Language    string       `json:"language"`
	Category    QuizCategory `json:"category"`
	IsPremium   bool         `json:"is_premium"`
	CreatedBy   *int64       `json:"created_by,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

type NewQuizParams struct {
	Title       string
	Description string
	Language    string
	Category    QuizCategory
	IsPremium   bool
	CreatedBy   *int64
}

func NewQuiz(p NewQuizParams) (*Quiz, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, domain.ErrInvalidArgument
	}
	cat := p.Category
	if cat == "" {
		cat = CategoryGeneral
	}
	if !cat.Valid() {
		return nil, domain.ErrInvalidArgument
	}
	lang := strings.ToLower(strings.TrimSpace(p.Language))
	if lang == "" {
		lang = DefaultLanguage
	}
	return &Quiz{
		Title:       title,
		Description: p.Description,
		Language:    lang,
		Category:    cat,
		IsPremium:   p.IsPremium,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   time.Now(),
	}, nil
}

// QuizFilter narrows quiz listings; empty fields do not filter.
type QuizFilter struct {
	Language string
	Category QuizCategory
}

// Question is a four-option multiple choice question.
type Question struct {
	ID            int64       `json:"id"`
	QuizID        int64       `json:"quiz_id"`
	Text          string      `json:"question_text"`
	OptionA       string      `json:"option_a"`
	OptionB       string      `json:"option_b"`
	OptionC       string      `json:"option_c"`
	OptionD       string      `json:"option_d"`
	CorrectAnswer OptionLabel `json:"correct_answer"`
	Explanation   string      `json:"explanation,omitempty"`
}

func NewQuestion(quizID int64, text string, options [4]string, correct OptionLabel, explanation string) (*Question, error) {
	text = strings.TrimSpace(text)
	if quizID <= 0 || text == "" {
		return nil, domain.ErrInvalidArgument
	}
	for _, o := range options {
		if strings.TrimSpace(o) == "" {
			return nil, domain.ErrInvalidArgument
		}
	}
	if _, err := ParseOptionLabel(string(correct)); err != nil {
		return nil, err
	}
	return &Question{
		QuizID:        quizID,
		Text:          text,
		OptionA:       options[0],
		OptionB:       options[1],
		OptionC:       options[2],
		OptionD:       options[3],
		CorrectAnswer: correct,
		Explanation:   explanation,
	}, nil
}

// QuizAttempt is an immutable record of one completed quiz run.
// QuizID is 0 once the quiz has been deleted.
type QuizAttempt struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	QuizID         int64     `json:"quiz_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	CompletedAt    time.Time `json:"completed_at"`
}

func NewQuizAttempt(userID, quizID int64, score, total int) (*QuizAttempt, error) {
	if userID <= 0 || quizID <= 0 || score < 0 || total < 0 || score > total {
		return nil, domain.ErrInvalidArgument
	}
	return &QuizAttempt{
		UserID:         userID,
		QuizID:         quizID,
		Score:          score,
		TotalQuestions: total,
		CompletedAt:    time.Now(),
	}, nil
}
