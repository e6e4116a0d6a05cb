package sqlstore

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/certichain/internal/certichain/store"
	"github.com/jmoiron/sqlx"
)

type txStore struct {
	tx *sqlx.Tx
	d  Dialect
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error                   { return nil }
func (t *txStore) Ping(ctx context.Context) error { return nil }
func (t *txStore) ApplyMigrations() error         { return nil }

// Nested transactions are not supported.
func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Identities() store.Identities       { return &identitiesRepo{q: t.tx, d: t.d} }
func (t *txStore) Institutions() store.Institutions   { return &institutionsRepo{q: t.tx, d: t.d} }
func (t *txStore) Certificates() store.Certificates   { return &certificatesRepo{q: t.tx, d: t.d} }
func (t *txStore) Shares() store.Shares               { return &sharesRepo{q: t.tx, d: t.d} }
func (t *txStore) Notifications() store.Notifications { return &notificationsRepo{q: t.tx, d: t.d} }
