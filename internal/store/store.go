package store

import (
	"context"
	"errors"
	"time"

	"github.com/jotmail/jotmail/internal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Accounts() Accounts
	Notes() Notes

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to handle transactions.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// GetAccountByID returns an account by id.
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByEmail looks up an account by its lowercased email.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// CreateAccount inserts a new account (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	CreateAccount(ctx context.Context, a domain.Account) error

	// SetChallenge overwrites the pending challenge in a single write so
	// the (hash, expiry) pair is always self-consistent even under
	// concurrent reissue.
	SetChallenge(ctx context.Context, accountID, otpHash string, expiresAt time.Time) error

	// ConsumeChallenge nulls both challenge fields, but only while the
	// stored hash still equals otpHash. The predicate makes acceptance a
	// single atomic claim: of any number of concurrent validations of
	// the same code, exactly one consumes it. Returns ErrNotFound when
	// the challenge was already consumed or replaced.
	ConsumeChallenge(ctx context.Context, accountID, otpHash string) error
}

type Notes interface {
	// CreateNote inserts a new note (id is ULID).
	CreateNote(ctx context.Context, n domain.Note) error

	// ListNotesByAccount returns the account's notes, newest first.
	ListNotesByAccount(ctx context.Context, accountID string) ([]domain.Note, error)

	// DeleteNote removes a note only if it belongs to the given account.
	// Returns ErrNotFound otherwise, so callers cannot probe for other
	// owners' note ids.
	DeleteNote(ctx context.Context, noteID, accountID string) error
}
