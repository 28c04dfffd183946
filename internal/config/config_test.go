package config

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		cfg, err := Parse([]byte(`
database:
  url: postgres://u:p@localhost/db
redis:
  url: localhost:6379
admin:
  jwt_secret: s3cret
`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
			t.Errorf("log defaults not applied: %+v", cfg.Log)
		}
		if cfg.Redis.TTL != time.Hour {
			t.Errorf("expected 1h redis ttl, got %v", cfg.Redis.TTL)
		}
		if cfg.Premium.DefaultDays != 30 {
			t.Errorf("expected 30 premium days, got %d", cfg.Premium.DefaultDays)
		}
		if cfg.PremiumDuration() != 30*24*time.Hour {
			t.Errorf("unexpected premium duration %v", cfg.PremiumDuration())
		}
		if cfg.Leaderboard.DefaultLimit != 10 {
			t.Errorf("expected leaderboard limit 10, got %d", cfg.Leaderboard.DefaultLimit)
		}
		if cfg.Admin.Port != 8080 || cfg.Admin.RateWindow != time.Minute {
			t.Errorf("admin defaults not applied: %+v", cfg.Admin)
		}
	})

	t.Run("DATABASE_URL overrides the file", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://env/db")
		cfg, err := Parse([]byte("database:\n  url: postgres://file/db\nredis:\n  url: r:6379\nadmin:\n  jwt_secret: x\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Database.URL != "postgres://env/db" {
			t.Errorf("expected env url, got %s", cfg.Database.URL)
		}
	})

	t.Run("missing required fields", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		cases := map[string]string{
			"database": "redis:\n  url: r\nadmin:\n  jwt_secret: x\n",
			"redis":    "database:\n  url: d\nadmin:\n  jwt_secret: x\n",
			"secret":   "database:\n  url: d\nredis:\n  url: r\n",
		}
		for name, doc := range cases {
			if _, err := Parse([]byte(doc)); err == nil {
				t.Errorf("%s: expected validation error", name)
			}
		}
	})
}
