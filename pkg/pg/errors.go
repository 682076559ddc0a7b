package pg

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrConnectionFailed      = errors.New("pg.connection_failed")
	ErrParseConfig           = errors.New("pg.parse_config_failed")
	ErrHealthcheckFailed     = errors.New("pg.healthcheck_failed")
	ErrMigrationFailed       = errors.New("pg.migration_failed")
	ErrMigrationsPathMissing = errors.New("pg.migrations_path_missing")
)

// IsNotFound reports whether err is pgx.ErrNoRows, for consistent
// "not found" handling across stores.
func IsNotFound(err error) bool {
	return err != nil && errors.Is(err, pgx.ErrNoRows)
}

// IsUniqueViolation reports a unique constraint violation (SQLSTATE 23505),
// e.g. a duplicate tenant slug or a second membership for the same pair.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return err != nil && errors.As(err, &pgErr) && pgErr.Code == "23505"
}
