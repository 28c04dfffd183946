//go:build integration

package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"telegram-language-bot/internal/domain"
	"telegram-language-bot/internal/domain/model"
	"telegram-language-bot/internal/domain/ports/repository"
)

func seedUser(t *testing.T, repo *UserRepo, id int64) *model.User {
	t.Helper()
	u, err := model.NewUser(model.NewUserParams{ID: id, FirstName: fmt.Sprintf("user%d", id)}, fmt.Sprintf("REF%06d", id))
	if err != nil {
		t.Fatalf("model.NewUser() failed: %v", err)
	}
	if _, err := repo.Create(context.Background(), repository.NoTX, u); err != nil {
		t.Fatalf("create user %d: %v", id, err)
	}
	return u
}

func TestUserRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}

	repo := NewUserRepo(testPool)
	ctx := context.Background()

	t.Run("migrate is idempotent", func(t *testing.T) {
		if err := Migrate(ctx, testPool); err != nil {
			t.Fatalf("second migrate failed: %v", err)
		}
	})

	t.Run("create is a no-op for an existing id", func(t *testing.T) {
		cleanup(t)
		u := seedUser(t, repo, 1001)

		again, _ := model.NewUser(model.NewUserParams{ID: 1001, FirstName: "other"}, "REF999999")
		created, err := repo.Create(ctx, repository.NoTX, again)
		if err != nil {
			t.Fatalf("second create failed: %v", err)
		}
		if created {
			t.Error("expected second create to report false")
		}
		got, err := repo.FindByID(ctx, repository.NoTX, 1001)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if got.FirstName != u.FirstName || got.ReferralCode != u.ReferralCode {
			t.Errorf("existing row was modified: %+v", got)
		}
	})

	t.Run("duplicate referral code is a unique violation", func(t *testing.T) {
		cleanup(t)
		seedUser(t, repo, 1)
		dup, _ := model.NewUser(model.NewUserParams{ID: 2}, "REF000001")
		_, err := repo.Create(ctx, repository.NoTX, dup)
		if !errors.Is(err, domain.ErrAlreadyExists) {
			t.Fatalf("expected referral code violation, got %v", err)
		}
	})

	t.Run("missing user is ErrNotFound", func(t *testing.T) {
		cleanup(t)
		if _, err := repo.FindByID(ctx, repository.NoTX, 404); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("concurrent rating increments are not lost", func(t *testing.T) {
		cleanup(t)
		seedUser(t, repo, 7)
		const n = 20
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := repo.AddRating(ctx, repository.NoTX, 7, 0.5); err != nil {
					t.Errorf("add rating: %v", err)
				}
			}()
		}
		wg.Wait()
		got, _ := repo.FindByID(ctx, repository.NoTX, 7)
		if got.RatingScore != n*0.5 {
			t.Errorf("expected rating %v, got %v", n*0.5, got.RatingScore)
		}
	})

	t.Run("premium set and clear", func(t *testing.T) {
		cleanup(t)
		seedUser(t, repo, 9)
		exp := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Microsecond)
		if err := repo.SetPremium(ctx, repository.NoTX, 9, exp); err != nil {
			t.Fatalf("set premium: %v", err)
		}
		got, _ := repo.FindByID(ctx, repository.NoTX, 9)
		if !got.IsPremium || got.PremiumExpiresAt == nil || !got.PremiumExpiresAt.Equal(exp) {
			t.Errorf("premium not stored: %+v", got)
		}
		if n, _ := repo.CountPremiumUsers(ctx, repository.NoTX); n != 1 {
			t.Errorf("expected 1 premium user, got %d", n)
		}
		if err := repo.ClearPremium(ctx, repository.NoTX, 9); err != nil {
			t.Fatalf("clear premium: %v", err)
		}
		got, _ = repo.FindByID(ctx, repository.NoTX, 9)
		if got.IsPremium || got.PremiumExpiresAt != nil {
			t.Errorf("premium not cleared: %+v", got)
		}
	})

	t.Run("leaderboard ordering and filtering", func(t *testing.T) {
		cleanup(t)
		for _, id := range []int64{1, 2, 3, 4} {
			seedUser(t, repo, id)
		}
		_ = repo.AddRating(ctx, repository.NoTX, 1, 5)
		_ = repo.AddRating(ctx, repository.NoTX, 2, 5)
		_ = repo.AddWordsLearned(ctx, repository.NoTX, 2, 3)
		_ = repo.AddRating(ctx, repository.NoTX, 3, 9)
		// user 4 keeps a zero rating and must not appear

		board, err := repo.Leaderboard(ctx, repository.NoTX, 10)
		if err != nil {
			t.Fatalf("leaderboard: %v", err)
		}
		want := []int64{3, 2, 1}
		if len(board) != len(want) {
			t.Fatalf("expected %d entries, got %d", len(want), len(board))
		}
		for i, id := range want {
			if board[i].UserID != id || board[i].Rank != i+1 {
				t.Errorf("position %d: expected user %d, got %+v", i, id, board[i])
			}
		}
		top, _ := repo.Leaderboard(ctx, repository.NoTX, 1)
		if len(top) != 1 || top[0].UserID != 3 {
			t.Errorf("limit not applied: %+v", top)
		}
	})

	t.Run("referred_by is set only once", func(t *testing.T) {
		cleanup(t)
		seedUser(t, repo, 1)
		seedUser(t, repo, 2)
		seedUser(t, repo, 3)
		if ok, err := repo.SetReferredBy(ctx, repository.NoTX, 3, 1); err != nil || !ok {
			t.Fatalf("first link: %v %v", ok, err)
		}
		if ok, _ := repo.SetReferredBy(ctx, repository.NoTX, 3, 2); ok {
			t.Error("second link must not overwrite the referrer")
		}
		got, _ := repo.FindByID(ctx, repository.NoTX, 3)
		if got.ReferredBy == nil || *got.ReferredBy != 1 {
			t.Errorf("unexpected referrer: %v", got.ReferredBy)
		}
	})
}

func TestReferralRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}
	users := NewUserRepo(testPool)
	refs := NewReferralRepo(testPool)
	ctx := context.Background()

	t.Run("count comes from the rows, not the counter", func(t *testing.T) {
		cleanup(t)
		for _, id := range []int64{1, 2, 3} {
			seedUser(t, users, id)
		}
		for _, referred := range []int64{2, 3} {
			r, _ := model.NewReferral(1, referred)
			if err := refs.Add(ctx, repository.NoTX, r); err != nil {
				t.Fatalf("add referral: %v", err)
			}
			if r.ID == 0 {
				t.Error("expected id to be assigned")
			}
		}
		n, err := refs.CountByReferrer(ctx, repository.NoTX, 1)
		if err != nil || n != 2 {
			t.Fatalf("expected 2 referrals, got %d (%v)", n, err)
		}
		u, _ := users.FindByID(ctx, repository.NoTX, 1)
		if u.ReferralCount != 0 {
			t.Errorf("adding referrals must not touch the counter, got %d", u.ReferralCount)
		}
	})
}
