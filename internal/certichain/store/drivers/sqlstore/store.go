// Package sqlstore implements store.Store on top of sqlx. Queries are written
// with '?' placeholders and rebound for the driver, the sqlite and postgres
// drivers only differ in how they open the database, classify constraint
// errors and migrate the schema.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/certichain/internal/certichain/store"
	"github.com/jmoiron/sqlx"
)

// Dialect carries the driver specific behaviour.
type Dialect struct {
	// IsUniqueViolation reports whether err is a unique constraint failure.
	IsUniqueViolation func(error) bool

	// Migrate applies the embedded schema migrations.
	Migrate func(db *sql.DB) error
}

type Store struct {
	db *sqlx.DB
	d  Dialect
}

func New(db *sqlx.DB, d Dialect) *Store {
	return &Store{db: db, d: d}
}

// DB exposes the underlying handle for driver specific setup.
func (s *Store) DB() *sqlx.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) ApplyMigrations() error {
	if s.d.Migrate == nil {
		return errors.New("sqlstore: dialect has no migrations")
	}
	return s.d.Migrate(s.db.DB)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &txStore{tx: tx, d: s.d}, nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) Identities() store.Identities       { return &identitiesRepo{q: s.db, d: s.d} }
func (s *Store) Institutions() store.Institutions   { return &institutionsRepo{q: s.db, d: s.d} }
func (s *Store) Certificates() store.Certificates   { return &certificatesRepo{q: s.db, d: s.d} }
func (s *Store) Shares() store.Shares               { return &sharesRepo{q: s.db, d: s.d} }
func (s *Store) Notifications() store.Notifications { return &notificationsRepo{q: s.db, d: s.d} }

func (d Dialect) mapWriteErr(err error) error {
	if err != nil && d.IsUniqueViolation != nil && d.IsUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// expectOne turns a zero-row update or delete into ErrNotFound.
func expectOne(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func mapNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func mapStringNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func mapNullTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		val := nt.Time.UTC()
		return &val
	}
	return nil
}

func mapOptionalTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern lower-cases q and wraps it for a LIKE ... ESCAPE '\' query.
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(q))) + "%"
}

func clampLimit(limit, def, ceiling int) int {
	if limit <= 0 {
		return def
	}
	return min(limit, ceiling)
}
