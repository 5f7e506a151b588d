package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jotmail/jotmail/internal/domain"
	"github.com/jotmail/jotmail/internal/store"
	"github.com/jotmail/jotmail/pkg/cryptox"
)

// DefaultCodeLifetime is how long an issued code stays valid.
const DefaultCodeLifetime = 10 * time.Minute

// Challenge rejection variants. The HTTP boundary collapses all three
// into one generic failure so callers can't distinguish a wrong code
// from an expired one; the variants exist for logging and tests.
var (
	ErrNoChallenge  = errors.New("no pending challenge")
	ErrCodeMismatch = errors.New("code mismatch")
	ErrCodeExpired  = errors.New("code expired")
)

// OTPService issues, validates and expires one-time codes. Codes live on
// the account row as an (argon2 hash, absolute expiry) pair; there is no
// background sweep, expiry is enforced lazily when a code is submitted.
type OTPService struct {
	Store store.Store

	// CodeLifetime defaults to DefaultCodeLifetime when zero.
	CodeLifetime time.Duration

	// Now is a clock hook for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *OTPService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *OTPService) lifetime() time.Duration {
	if s.CodeLifetime > 0 {
		return s.CodeLifetime
	}
	return DefaultCodeLifetime
}

// IssueChallenge generates a fresh 6-digit code for the account and
// persists its hash and expiry, overwriting any prior challenge. The old
// code becomes permanently invalid even if unexpired; that is the
// documented resend behavior, not a bug. The plaintext code is returned
// to the caller for delivery and is never stored.
func (s *OTPService) IssueChallenge(ctx context.Context, accountID string) (string, time.Time, error) {
	code, err := cryptox.GenerateOTP()
	if err != nil {
		return "", time.Time{}, err
	}

	hash, err := cryptox.HashOTP(code)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("hash otp: %w", err)
	}

	expiresAt := s.now().Add(s.lifetime())
	if err := s.Store.Accounts().SetChallenge(ctx, accountID, hash, expiresAt); err != nil {
		return "", time.Time{}, fmt.Errorf("persist challenge: %w", err)
	}

	return code, expiresAt, nil
}

// ValidateChallenge decides accept/reject for a submitted code. Accept
// requires a pending challenge, an exact code match against the stored
// hash, and the current time strictly before the stored expiry. On
// accept the challenge is consumed before returning, so a code can
// never be replayed; on any reject the challenge is left untouched and
// the same code may be retried until it expires or is replaced.
func (s *OTPService) ValidateChallenge(ctx context.Context, account domain.Account, submitted string) error {
	if !account.HasChallenge() {
		return ErrNoChallenge
	}

	if err := cryptox.VerifyOTPHash(submitted, *account.OTPHash); err != nil {
		if errors.Is(err, cryptox.ErrHashMismatch) {
			return ErrCodeMismatch
		}
		return fmt.Errorf("verify otp: %w", err)
	}

	if !s.now().Before(*account.OTPExpiresAt) {
		return ErrCodeExpired
	}

	// The account was read before validation, so the stored challenge
	// may have been consumed or replaced since. The conditional consume
	// is the arbiter: only the validation that wins the claim accepts.
	if err := s.Store.Accounts().ConsumeChallenge(ctx, account.ID, *account.OTPHash); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNoChallenge
		}
		return fmt.Errorf("consume challenge: %w", err)
	}

	return nil
}
