package sqlite

import (
	"context"
	"database/sql"

	"github.com/jotmail/jotmail/internal/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // caller commits/rollbacks; outer DB stays open

// Ping is a no-op for transactions; the connection is already live.
func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Accounts() store.Accounts { return &accountsRepo{db: t.tx} }
func (t *txStore) Notes() store.Notes       { return &notesRepo{db: t.tx} }

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx starts
