// Package pg provides PostgreSQL connection pooling, schema migration, and
// error classification helpers built on pgx and goose.
package pg
