package redis

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeCounter struct {
	RedisClient
	counts  map[string]int64
	expires map[string]time.Duration
	incrErr error
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{counts: map[string]int64{}, expires: map[string]time.Duration{}}
}

func (f *fakeCounter) Incr(_ context.Context, key string) (int64, error) {
	if f.incrErr != nil {
		return 0, f.incrErr
	}
	f.counts[key]++
	return f.counts[key], nil
}

func (f *fakeCounter) Expire(_ context.Context, key string, d time.Duration) error {
	f.expires[key] = d
	return nil
}

func TestRateLimiter_Allow(t *testing.T) {
	ctx := context.Background()

	t.Run("allows up to the limit then blocks", func(t *testing.T) {
		fc := newFakeCounter()
		rl := NewRateLimiter(fc)
		key := AdminClientKey("10.0.0.1")
		for i := 1; i <= 3; i++ {
			ok, err := rl.Allow(ctx, key, 3, time.Minute)
			if err != nil || !ok {
				t.Fatalf("hit %d: expected allowed, got %v %v", i, ok, err)
			}
		}
		ok, err := rl.Allow(ctx, key, 3, time.Minute)
		if err != nil || ok {
			t.Fatalf("expected 4th hit to be blocked, got %v %v", ok, err)
		}
		if fc.expires[key] != time.Minute {
			t.Errorf("expected window to be set on the first hit")
		}
	})

	t.Run("propagates redis errors", func(t *testing.T) {
		fc := newFakeCounter()
		fc.incrErr = errors.New("down")
		if _, err := NewRateLimiter(fc).Allow(ctx, "k", 1, time.Second); err == nil {
			t.Fatal("expected error")
		}
	})
}
