//go:build !integration

package usecase_test

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"telegram-language-bot/internal/domain"
	"telegram-language-bot/internal/domain/model"
	"telegram-language-bot/internal/domain/ports/repository"
)

// =============================
// Repositories (in-memory + override hooks)
// =============================

// ---- Mock UserRepository ----

type MockUserRepo struct {
	mu   sync.Mutex
	byID map[int64]*model.User

	CreateFunc        func(ctx context.Context, tx repository.Tx, u *model.User) (bool, error)
	FindByIDFunc      func(ctx context.Context, tx repository.Tx, id int64) (*model.User, error)
	AddQuizResultFunc func(ctx context.Context, tx repository.Tx, id int64, score int) error

	// Txs records the transaction handle each mutating call ran under.
	Txs []repository.Tx
}

var _ repository.UserRepository = (*MockUserRepo)(nil)

func NewMockUserRepo() *MockUserRepo {
	return &MockUserRepo{byID: map[int64]*model.User{}}
}

func (r *MockUserRepo) put(u *model.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.byID[u.ID] = &cp
}

func (r *MockUserRepo) update(tx repository.Tx, id int64, fn func(u *model.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Txs = append(r.Txs, tx)
	if u, ok := r.byID[id]; ok {
		fn(u)
	}
	return nil
}

func (r *MockUserRepo) Create(ctx context.Context, tx repository.Tx, u *model.User) (bool, error) {
	if r.CreateFunc != nil {
		return r.CreateFunc(ctx, tx, u)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[u.ID]; ok {
		return false, nil
	}
	for _, other := range r.byID {
		if other.ReferralCode == u.ReferralCode {
			return false, domain.ErrAlreadyExists
		}
	}
	cp := *u
	r.byID[u.ID] = &cp
	return true, nil
}

func (r *MockUserRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.User, error) {
	if r.FindByIDFunc != nil {
		return r.FindByIDFunc(ctx, tx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *MockUserRepo) FindByReferralCode(ctx context.Context, tx repository.Tx, code string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.ReferralCode == code {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MockUserRepo) TouchActivity(ctx context.Context, tx repository.Tx, id int64, at time.Time) error {
	return r.update(tx, id, func(u *model.User) {
		u.LastActivity = at
		u.TotalSessions++
	})
}

func (r *MockUserRepo) SetPremium(ctx context.Context, tx repository.Tx, id int64, expiresAt time.Time) error {
	return r.update(tx, id, func(u *model.User) {
		u.IsPremium = true
		u.PremiumExpiresAt = &expiresAt
	})
}

func (r *MockUserRepo) ClearPremium(ctx context.Context, tx repository.Tx, id int64) error {
	return r.update(tx, id, func(u *model.User) {
		u.IsPremium = false
		u.PremiumExpiresAt = nil
	})
}

func (r *MockUserRepo) SetReferredBy(ctx context.Context, tx repository.Tx, id, referrerID int64) (bool, error) {
	linked := false
	err := r.update(tx, id, func(u *model.User) {
		if u.ReferredBy == nil {
			u.ReferredBy = &referrerID
			linked = true
		}
	})
	return linked, err
}

func (r *MockUserRepo) AddRating(ctx context.Context, tx repository.Tx, id int64, points float64) error {
	return r.update(tx, id, func(u *model.User) { u.RatingScore += points })
}

func (r *MockUserRepo) AddWordsLearned(ctx context.Context, tx repository.Tx, id int64, count int) error {
	return r.update(tx, id, func(u *model.User) { u.WordsLearned += count })
}

func (r *MockUserRepo) AddReferralCount(ctx context.Context, tx repository.Tx, id int64, delta int) error {
	return r.update(tx, id, func(u *model.User) { u.ReferralCount += delta })
}

func (r *MockUserRepo) ResetReferralCount(ctx context.Context, tx repository.Tx, id int64) error {
	return r.update(tx, id, func(u *model.User) { u.ReferralCount = 0 })
}

func (r *MockUserRepo) AddQuizResult(ctx context.Context, tx repository.Tx, id int64, score int) error {
	if r.AddQuizResultFunc != nil {
		return r.AddQuizResultFunc(ctx, tx, id, score)
	}
	return r.update(tx, id, func(u *model.User) {
		u.QuizScoreTotal += score
		u.QuizAttempts++
	})
}

func (r *MockUserRepo) ListIDs(ctx context.Context, tx repository.Tx) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int64, 0, len(r.byID))
	for id := range r.byID {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (r *MockUserRepo) ListPremium(ctx context.Context, tx repository.Tx) ([]model.PremiumUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.PremiumUser
	for _, u := range r.byID {
		if u.IsPremium {
			out = append(out, model.PremiumUser{ID: u.ID, FirstName: u.FirstName, Username: u.Username, PremiumExpiresAt: u.PremiumExpiresAt})
		}
	}
	return out, nil
}

func (r *MockUserRepo) CountUsers(ctx context.Context, tx repository.Tx) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID), nil
}

func (r *MockUserRepo) CountPremiumUsers(ctx context.Context, tx repository.Tx) (int, error) {
	ps, _ := r.ListPremium(ctx, tx)
	return len(ps), nil
}

func (r *MockUserRepo) Leaderboard(ctx context.Context, tx repository.Tx, limit int) ([]model.LeaderboardEntry, error) {
	r.mu.Lock()
	var eligible []*model.User
	for _, u := range r.byID {
		if u.RatingScore > 0 {
			eligible = append(eligible, u)
		}
	}
	r.mu.Unlock()
	sort.Slice(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		if a.RatingScore != b.RatingScore {
			return a.RatingScore > b.RatingScore
		}
		if a.WordsLearned != b.WordsLearned {
			return a.WordsLearned > b.WordsLearned
		}
		if a.QuizScoreTotal != b.QuizScoreTotal {
			return a.QuizScoreTotal > b.QuizScoreTotal
		}
		return a.ID < b.ID
	})
	var out []model.LeaderboardEntry
	for i, u := range eligible {
		if i >= limit {
			break
		}
		out = append(out, model.LeaderboardEntry{
			Rank: i + 1, UserID: u.ID, FirstName: u.FirstName, Username: u.Username,
			RatingScore: u.RatingScore, WordsLearned: u.WordsLearned, QuizScoreTotal: u.QuizScoreTotal,
		})
	}
	return out, nil
}

// ---- Mock ReferralRepository ----

type MockReferralRepo struct {
	mu    sync.Mutex
	edges []model.Referral

	AddFunc func(ctx context.Context, tx repository.Tx, r *model.Referral) error
}

var _ repository.ReferralRepository = (*MockReferralRepo)(nil)

func NewMockReferralRepo() *MockReferralRepo { return &MockReferralRepo{} }

func (m *MockReferralRepo) Add(ctx context.Context, tx repository.Tx, r *model.Referral) error {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, tx, r)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = int64(len(m.edges) + 1)
	m.edges = append(m.edges, *r)
	return nil
}

func (m *MockReferralRepo) CountByReferrer(ctx context.Context, tx repository.Tx, referrerID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.edges {
		if e.ReferrerID == referrerID {
			n++
		}
	}
	return n, nil
}

// ---- Mock catalog repositories ----

type MockSectionRepo struct {
	repository.SectionRepository
	CreateFunc   func(ctx context.Context, tx repository.Tx, s *model.Section) (int64, error)
	FindByIDFunc func(ctx context.Context, tx repository.Tx, id int64) (*model.Section, error)
	DeleteFunc   func(ctx context.Context, tx repository.Tx, id int64) error
	CountFunc    func(ctx context.Context, tx repository.Tx) (int, error)
}

func (m *MockSectionRepo) Create(ctx context.Context, tx repository.Tx, s *model.Section) (int64, error) {
	return m.CreateFunc(ctx, tx, s)
}
func (m *MockSectionRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.Section, error) {
	return m.FindByIDFunc(ctx, tx, id)
}
func (m *MockSectionRepo) Delete(ctx context.Context, tx repository.Tx, id int64) error {
	return m.DeleteFunc(ctx, tx, id)
}
func (m *MockSectionRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	return m.CountFunc(ctx, tx)
}

type MockSubsectionRepo struct {
	repository.SubsectionRepository
	CreateFunc        func(ctx context.Context, tx repository.Tx, s *model.Subsection) (int64, error)
	ListBySectionFunc func(ctx context.Context, tx repository.Tx, sectionID int64) ([]*model.Subsection, error)
	DeleteFunc        func(ctx context.Context, tx repository.Tx, id int64) error
}

func (m *MockSubsectionRepo) Create(ctx context.Context, tx repository.Tx, s *model.Subsection) (int64, error) {
	return m.CreateFunc(ctx, tx, s)
}
func (m *MockSubsectionRepo) ListBySection(ctx context.Context, tx repository.Tx, sectionID int64) ([]*model.Subsection, error) {
	return m.ListBySectionFunc(ctx, tx, sectionID)
}
func (m *MockSubsectionRepo) Delete(ctx context.Context, tx repository.Tx, id int64) error {
	return m.DeleteFunc(ctx, tx, id)
}

type MockContentRepo struct {
	repository.ContentRepository
	CreateFunc           func(ctx context.Context, tx repository.Tx, c *model.Content) (int64, error)
	ListBySubsectionFunc func(ctx context.Context, tx repository.Tx, subsectionID int64) ([]*model.Content, error)
	FindByIDFunc         func(ctx context.Context, tx repository.Tx, id int64) (*model.Content, error)
	DeleteFunc           func(ctx context.Context, tx repository.Tx, id int64) error
	CountFunc            func(ctx context.Context, tx repository.Tx) (int, error)
}

func (m *MockContentRepo) Create(ctx context.Context, tx repository.Tx, c *model.Content) (int64, error) {
	return m.CreateFunc(ctx, tx, c)
}
func (m *MockContentRepo) ListBySubsection(ctx context.Context, tx repository.Tx, subsectionID int64) ([]*model.Content, error) {
	return m.ListBySubsectionFunc(ctx, tx, subsectionID)
}
func (m *MockContentRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.Content, error) {
	return m.FindByIDFunc(ctx, tx, id)
}
func (m *MockContentRepo) Delete(ctx context.Context, tx repository.Tx, id int64) error {
	return m.DeleteFunc(ctx, tx, id)
}
func (m *MockContentRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	return m.CountFunc(ctx, tx)
}

type MockPremiumContentRepo struct {
	repository.PremiumContentRepository
	CreateFunc func(ctx context.Context, tx repository.Tx, c *model.PremiumContent) (int64, error)
	ListFunc   func(ctx context.Context, tx repository.Tx, track model.TrackType) ([]*model.PremiumContent, error)
}

func (m *MockPremiumContentRepo) Create(ctx context.Context, tx repository.Tx, c *model.PremiumContent) (int64, error) {
	return m.CreateFunc(ctx, tx, c)
}
func (m *MockPremiumContentRepo) List(ctx context.Context, tx repository.Tx, track model.TrackType) ([]*model.PremiumContent, error) {
	return m.ListFunc(ctx, tx, track)
}

type MockProgressRepo struct {
	repository.ProgressRepository
	MarkCompletedFunc func(ctx context.Context, tx repository.Tx, userID, contentID int64) error
}

func (m *MockProgressRepo) MarkCompleted(ctx context.Context, tx repository.Tx, userID, contentID int64) error {
	return m.MarkCompletedFunc(ctx, tx, userID, contentID)
}

// ---- Mock quiz repositories ----

type MockQuizRepo struct {
	repository.QuizRepository
	FindByIDFunc       func(ctx context.Context, tx repository.Tx, id int64) (*model.Quiz, error)
	ListByCreatorFunc  func(ctx context.Context, tx repository.Tx, creatorID int64) ([]*model.Quiz, error)
	DeleteFunc         func(ctx context.Context, tx repository.Tx, id int64) error
	AddQuestionFunc    func(ctx context.Context, tx repository.Tx, q *model.Question) (int64, error)
	CountFunc          func(ctx context.Context, tx repository.Tx) (int, error)
	CountQuestionsFunc func(ctx context.Context, tx repository.Tx) (int, error)
}

func (m *MockQuizRepo) ListByCreator(ctx context.Context, tx repository.Tx, creatorID int64) ([]*model.Quiz, error) {
	return m.ListByCreatorFunc(ctx, tx, creatorID)
}
func (m *MockQuizRepo) Delete(ctx context.Context, tx repository.Tx, id int64) error {
	return m.DeleteFunc(ctx, tx, id)
}

func (m *MockQuizRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.Quiz, error) {
	return m.FindByIDFunc(ctx, tx, id)
}
func (m *MockQuizRepo) AddQuestion(ctx context.Context, tx repository.Tx, q *model.Question) (int64, error) {
	return m.AddQuestionFunc(ctx, tx, q)
}
func (m *MockQuizRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	return m.CountFunc(ctx, tx)
}
func (m *MockQuizRepo) CountQuestions(ctx context.Context, tx repository.Tx) (int, error) {
	return m.CountQuestionsFunc(ctx, tx)
}

type MockAttemptRepo struct {
	mu    sync.Mutex
	rows  []*model.QuizAttempt
	Txs   []repository.Tx
	Fails error
}

var _ repository.QuizAttemptRepository = (*MockAttemptRepo)(nil)

func (m *MockAttemptRepo) Add(ctx context.Context, tx repository.Tx, a *model.QuizAttempt) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Txs = append(m.Txs, tx)
	if m.Fails != nil {
		return 0, m.Fails
	}
	a.ID = int64(len(m.rows) + 1)
	m.rows = append(m.rows, a)
	return a.ID, nil
}

func (m *MockAttemptRepo) ListByUser(ctx context.Context, tx repository.Tx, userID int64, limit int) ([]*model.QuizAttempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.QuizAttempt
	for _, a := range m.rows {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MockAttemptRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows), nil
}

type MockStatsRepo struct {
	Sessions, Words int64
}

func (m *MockStatsRepo) SumSessions(ctx context.Context, tx repository.Tx) (int64, error) {
	return m.Sessions, nil
}
func (m *MockStatsRepo) SumWordsLearned(ctx context.Context, tx repository.Tx) (int64, error) {
	return m.Words, nil
}

// =============================
// Transactions
// =============================

type MockTxManager struct {
	WithTxFunc func(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error
}

func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

var _ repository.TransactionManager = (*MockTxManager)(nil)

// WithTx runs fn immediately with NoTX unless WithTxFunc is set.
func (m *MockTxManager) WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, txOpt, fn)
	}
	return fn(ctx, repository.NoTX)
}

// fakeTx is a distinguishable transaction handle.
type fakeTx struct{ id int }

// newRecordingTxManager hands out a fakeTx and records the error fn returned,
// so tests can assert every write joined the same unit of work.
func newRecordingTxManager(result *error) (*MockTxManager, *fakeTx) {
	tx := &fakeTx{id: 1}
	return &MockTxManager{
		WithTxFunc: func(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
			err := fn(ctx, tx)
			*result = err
			return err
		},
	}, tx
}

// newTestLogger creates a silent zerolog.Logger for use in tests.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}
