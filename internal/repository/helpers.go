package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	pkgdto "github.com/vparmar-art/MarketplaceApp/pkg/dto"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// runInTx commits when fn succeeds and rolls back when it fails or panics.
func runInTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		log.Error().Err(err).Str("component", "HandleTrx").Msg("")
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}

		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Str("component", "HandleTrx").Msg("rollback failed")
			}
			return
		}

		if err = tx.Commit(); err != nil {
			log.Error().Err(err).Str("component", "HandleTrx").Msg("commit failed")
		}
	}()

	err = fn(tx)
	return err
}

// uniqueViolation returns the violated constraint name when err is a unique violation.
func uniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return pqErr.Constraint, true
	}
	return "", false
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation
}

// insertReturningID runs a named INSERT ... RETURNING id statement.
func insertReturningID(ctx context.Context, conn sqlx.ExtContext, query string, arg interface{}) (id int64, err error) {
	bound, args, err := conn.BindNamed(query, arg)
	if err != nil {
		return 0, err
	}

	err = sqlx.GetContext(ctx, conn, &id, bound, args...)
	return id, err
}

// selectIn loads rows whose column matches one of ids. An empty ids slice loads nothing.
func selectIn(ctx context.Context, conn sqlx.ExtContext, dest interface{}, query string, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(query, ids)
	if err != nil {
		return err
	}

	return sqlx.SelectContext(ctx, conn, dest, conn.Rebind(query), args...)
}

// queryArgs accumulates positional arguments for a dynamically built query.
type queryArgs struct {
	values []interface{}
}

func (a *queryArgs) add(value interface{}) string {
	a.values = append(a.values, value)
	return fmt.Sprintf("$%d", len(a.values))
}

func (a *queryArgs) paginate(filter pkgdto.Filter) string {
	if filter.Limit <= 0 {
		return ""
	}
	return fmt.Sprintf(" LIMIT %s OFFSET %s", a.add(filter.Limit), a.add(filter.Offset()))
}

// containsPattern builds a case-insensitive substring pattern where LIKE wildcards
// in term are matched literally.
func containsPattern(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(term) + "%"
}
