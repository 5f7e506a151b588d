package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jotmail/jotmail/internal/domain"
	"github.com/jotmail/jotmail/internal/store"
	"github.com/jotmail/jotmail/internal/store/drivers/sqlite"
	"github.com/jotmail/jotmail/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000"
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTestAccount(email string) domain.Account {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return domain.Account{
		ID:        idx.New().String(),
		Email:     email,
		Name:      "Test Person",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestAccountsCreateAndGet(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	ctx := context.Background()

	dob := time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)
	a := newTestAccount("a@x.com")
	a.DateOfBirth = &dob
	require.NoError(t, st.Accounts().CreateAccount(ctx, a))

	got, err := st.Accounts().GetAccountByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, a.Email, got.Email)
	require.Equal(t, a.Name, got.Name)
	require.NotNil(t, got.DateOfBirth)
	require.True(t, dob.Equal(*got.DateOfBirth))
	require.False(t, got.HasChallenge())

	byEmail, err := st.Accounts().GetAccountByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, a.ID, byEmail.ID)

	_, err = st.Accounts().GetAccountByEmail(ctx, "missing@x.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestAccountsDuplicateEmail(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Accounts().CreateAccount(ctx, newTestAccount("dup@x.com")))

	err := st.Accounts().CreateAccount(ctx, newTestAccount("dup@x.com"))
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestAccountsChallengeLifecycle(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	ctx := context.Background()

	a := newTestAccount("otp@x.com")
	require.NoError(t, st.Accounts().CreateAccount(ctx, a))

	expiry := time.Now().Add(10 * time.Minute).UTC().Truncate(time.Millisecond)
	require.NoError(t, st.Accounts().SetChallenge(ctx, a.ID, "hash-1", expiry))

	got, err := st.Accounts().GetAccountByID(ctx, a.ID)
	require.NoError(t, err)
	require.True(t, got.HasChallenge())
	require.Equal(t, "hash-1", *got.OTPHash)
	require.True(t, expiry.Equal(*got.OTPExpiresAt))

	// A second issuance overwrites, never appends.
	require.NoError(t, st.Accounts().SetChallenge(ctx, a.ID, "hash-2", expiry))
	got, err = st.Accounts().GetAccountByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, "hash-2", *got.OTPHash)

	require.NoError(t, st.Accounts().ConsumeChallenge(ctx, a.ID, "hash-2"))
	got, err = st.Accounts().GetAccountByID(ctx, a.ID)
	require.NoError(t, err)
	require.False(t, got.HasChallenge())
	require.Nil(t, got.OTPHash)
	require.Nil(t, got.OTPExpiresAt)

	require.ErrorIs(t, st.Accounts().SetChallenge(ctx, "missing", "h", expiry), store.ErrNotFound)
	require.ErrorIs(t, st.Accounts().ConsumeChallenge(ctx, "missing", "h"), store.ErrNotFound)
}

func TestAccountsConsumeChallengeIsConditional(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	ctx := context.Background()

	a := newTestAccount("claim@x.com")
	require.NoError(t, st.Accounts().CreateAccount(ctx, a))

	expiry := time.Now().Add(10 * time.Minute).UTC()
	require.NoError(t, st.Accounts().SetChallenge(ctx, a.ID, "hash-1", expiry))

	// A stale or wrong hash never consumes and leaves the challenge alone.
	require.ErrorIs(t, st.Accounts().ConsumeChallenge(ctx, a.ID, "hash-0"), store.ErrNotFound)
	got, err := st.Accounts().GetAccountByID(ctx, a.ID)
	require.NoError(t, err)
	require.True(t, got.HasChallenge())

	// The claim succeeds exactly once.
	require.NoError(t, st.Accounts().ConsumeChallenge(ctx, a.ID, "hash-1"))
	require.ErrorIs(t, st.Accounts().ConsumeChallenge(ctx, a.ID, "hash-1"), store.ErrNotFound)
}

func TestNotesOwnership(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	ctx := context.Background()

	alice := newTestAccount("alice@x.com")
	bob := newTestAccount("bob@x.com")
	require.NoError(t, st.Accounts().CreateAccount(ctx, alice))
	require.NoError(t, st.Accounts().CreateAccount(ctx, bob))

	first := domain.Note{
		ID:        idx.New().String(),
		AccountID: alice.ID,
		Title:     "first",
		Content:   "hello",
		CreatedAt: time.Now().UTC(),
	}
	second := domain.Note{
		ID:        idx.New().String(),
		AccountID: alice.ID,
		Title:     "second",
		Content:   "world",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, st.Notes().CreateNote(ctx, first))
	require.NoError(t, st.Notes().CreateNote(ctx, second))

	notes, err := st.Notes().ListNotesByAccount(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	// Newest first: ULIDs sort by creation time.
	require.Equal(t, "second", notes[0].Title)
	require.Equal(t, "first", notes[1].Title)

	// Bob sees nothing and cannot delete Alice's notes.
	bobNotes, err := st.Notes().ListNotesByAccount(ctx, bob.ID)
	require.NoError(t, err)
	require.Empty(t, bobNotes)
	require.ErrorIs(t, st.Notes().DeleteNote(ctx, first.ID, bob.ID), store.ErrNotFound)

	require.NoError(t, st.Notes().DeleteNote(ctx, first.ID, alice.ID))
	notes, err = st.Notes().ListNotesByAccount(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
}

func TestWithTxRollback(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	ctx := context.Background()

	boom := errors.New("boom")
	a := newTestAccount("tx@x.com")

	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Accounts().CreateAccount(ctx, a); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = st.Accounts().GetAccountByEmail(ctx, "tx@x.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxCommit(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	ctx := context.Background()

	a := newTestAccount("commit@x.com")
	require.NoError(t, st.WithTx(ctx, func(tx store.Tx) error {
		return tx.Accounts().CreateAccount(ctx, a)
	}))

	got, err := st.Accounts().GetAccountByEmail(ctx, "commit@x.com")
	require.NoError(t, err)
	require.Equal(t, a.ID, got.ID)
}
