package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/jotmail/jotmail/internal/domain"
	"github.com/jotmail/jotmail/internal/store"
)

type accountsRepo struct {
	db dbtx
}

const accountColumns = `id, email, name, date_of_birth, otp_hash, otp_expires_at, created_at, updated_at`

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	return scanAccount(row)
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = ?`, email)
	return scanAccount(row)
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (id, email, name, date_of_birth, otp_hash, otp_expires_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID,
		a.Email,
		a.Name,
		toMillisPtr(a.DateOfBirth),
		toNullString(a.OTPHash),
		toMillisPtr(a.OTPExpiresAt),
		toMillis(a.CreatedAt),
		toMillis(a.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *accountsRepo) SetChallenge(ctx context.Context, accountID, otpHash string, expiresAt time.Time) error {
	// Both fields land in one UPDATE so a concurrent reissue can only
	// produce one self-consistent pair, never a torn one.
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET otp_hash = ?, otp_expires_at = ?, updated_at = ? WHERE id = ?`,
		otpHash, toMillis(expiresAt), toMillis(time.Now()), accountID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *accountsRepo) ConsumeChallenge(ctx context.Context, accountID, otpHash string) error {
	// The hash is part of the predicate, so two validations racing on the
	// same code can't both claim it: the second sees zero rows.
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET otp_hash = NULL, otp_expires_at = NULL, updated_at = ?
		 WHERE id = ? AND otp_hash = ?`,
		toMillis(time.Now()), accountID, otpHash)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var (
		a            domain.Account
		dob          sql.NullInt64
		otpHash      sql.NullString
		otpExpiresAt sql.NullInt64
		createdAt    int64
		updatedAt    int64
	)

	err := row.Scan(&a.ID, &a.Email, &a.Name, &dob, &otpHash, &otpExpiresAt, &createdAt, &updatedAt)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}

	a.DateOfBirth = fromMillisPtr(dob)
	a.OTPHash = fromNullString(otpHash)
	a.OTPExpiresAt = fromMillisPtr(otpExpiresAt)
	a.CreatedAt = fromMillis(createdAt)
	a.UpdatedAt = fromMillis(updatedAt)
	return a, nil
}
