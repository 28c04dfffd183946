package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-language-bot/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

// Migrate creates every table and index if missing. It is safe to call on each start:
// the whole script runs as one implicit transaction, so a failure leaves no partial schema.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if pool == nil {
		return fmt.Errorf("%w: nil pool", domain.ErrSchemaInit)
	}
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSchemaInit, err)
	}
	return nil
}
