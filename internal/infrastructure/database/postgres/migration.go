package postgres

import (
	"context"
	_ "embed"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

//go:embed schema.sql
var schema string

// Migrate creates every table that does not exist yet. It is safe to run on each start.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		log.Error().Err(err).Str("component", "Migrate").Msg("")
		return err
	}

	log.Info().Str("component", "Migrate").Msg("schema is up to date")
	return nil
}
