// Package storage holds the Postgres stores backing tenant resolution,
// membership lookup, and profile upserts, plus the goose migrations that
// shape them.
package storage
