package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/jotmail/jotmail/internal/domain"
	"github.com/jotmail/jotmail/internal/notify"
	"github.com/jotmail/jotmail/internal/store"
	"github.com/jotmail/jotmail/pkg/idx"
	"github.com/jotmail/jotmail/pkg/jwtx"
	"github.com/jotmail/jotmail/pkg/slogx"
)

// Gateway-level failures. Each maps to exactly one HTTP response; the
// mapping happens once, at the handler boundary.
var (
	ErrAccountExists      = errors.New("account already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidOTP         = errors.New("invalid otp")
	ErrValidation         = errors.New("validation failed")
)

// AuthService binds the credential store, the challenge engine, the
// notifier and the session issuer into the two flows: registration and
// login. Both end in the same place, a signed session token.
type AuthService struct {
	Store    store.Store
	OTP      *OTPService
	Notifier notify.Notifier
	Sessions *jwtx.HS256
	SiteName string
}

// NormalizeEmail validates and canonicalizes an address. All store
// lookups and writes go through the lowercased form, so "A@X.com" and
// "a@x.com" are the same account.
func NormalizeEmail(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidEmail
	}
	parsed, err := mail.ParseAddress(raw)
	if err != nil {
		return "", ErrInvalidEmail
	}
	return strings.ToLower(parsed.Address), nil
}

// RequestSignupOTP starts registration: creates the account with its
// identity fields and issues the first challenge. Fails with
// ErrAccountExists when the email is taken, in which case the existing
// account's challenge state is untouched and no email is sent.
func (s *AuthService) RequestSignupOTP(ctx context.Context, name, email string, dateOfBirth *time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}

	email, err := NormalizeEmail(email)
	if err != nil {
		return err
	}

	if _, err := s.Store.Accounts().GetAccountByEmail(ctx, email); err == nil {
		return ErrAccountExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("lookup account: %w", err)
	}

	now := time.Now().UTC()
	account := domain.Account{
		ID:          idx.New().String(),
		Email:       email,
		Name:        name,
		DateOfBirth: dateOfBirth,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Accounts().CreateAccount(ctx, account); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost a race with a concurrent signup for the same email.
			return ErrAccountExists
		}
		return fmt.Errorf("create account: %w", err)
	}

	return s.issueAndDeliver(ctx, account)
}

// CompleteSignup finishes registration with (email, code). Any challenge
// rejection collapses to ErrInvalidOTP; the challenge survives rejects,
// so the same code may be retried until expiry or replacement.
func (s *AuthService) CompleteSignup(ctx context.Context, email, code string) (string, domain.Account, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return "", domain.Account{}, err
	}

	account, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", domain.Account{}, ErrInvalidEmail
		}
		return "", domain.Account{}, fmt.Errorf("lookup account: %w", err)
	}

	return s.validateAndIssueSession(ctx, account, code)
}

// RequestLoginOTP issues a challenge for an existing account. Unknown
// emails fail with ErrAccountNotFound; registration must happen first.
func (s *AuthService) RequestLoginOTP(ctx context.Context, email string) error {
	email, err := NormalizeEmail(email)
	if err != nil {
		return err
	}

	account, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("lookup account: %w", err)
	}

	return s.issueAndDeliver(ctx, account)
}

// CompleteLogin finishes login with (email, code). An unknown account
// and a bad code both come back as credential-shaped failures so the
// response doesn't reveal which field was wrong.
func (s *AuthService) CompleteLogin(ctx context.Context, email, code string) (string, domain.Account, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return "", domain.Account{}, err
	}

	account, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", domain.Account{}, ErrInvalidCredentials
		}
		return "", domain.Account{}, fmt.Errorf("lookup account: %w", err)
	}

	return s.validateAndIssueSession(ctx, account, code)
}

// GetAccountByID loads an account for the identity endpoint.
func (s *AuthService) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	return s.Store.Accounts().GetAccountByID(ctx, id)
}

// issueAndDeliver creates a challenge and hands the code to the notifier.
// Delivery failure is logged but does not fail the request: the challenge
// is already persisted, and the user can rely on resend.
func (s *AuthService) issueAndDeliver(ctx context.Context, account domain.Account) error {
	log := slogx.FromContext(ctx)

	code, expiresAt, err := s.OTP.IssueChallenge(ctx, account.ID)
	if err != nil {
		return fmt.Errorf("issue challenge: %w", err)
	}

	if err := s.Notifier.SendOTP(ctx, notify.EmailParams{
		To:           account.Email,
		Name:         account.Name,
		SiteName:     s.SiteName,
		Code:         code,
		CodeLifetime: time.Until(expiresAt),
	}); err != nil {
		log.Error("otp delivery failed", "account_id", account.ID, "err", err)
	}

	return nil
}

func (s *AuthService) validateAndIssueSession(ctx context.Context, account domain.Account, code string) (string, domain.Account, error) {
	log := slogx.FromContext(ctx)

	if err := s.OTP.ValidateChallenge(ctx, account, code); err != nil {
		switch {
		case errors.Is(err, ErrNoChallenge), errors.Is(err, ErrCodeMismatch), errors.Is(err, ErrCodeExpired):
			log.Info("otp rejected", "account_id", account.ID, "reason", err)
			return "", domain.Account{}, ErrInvalidOTP
		default:
			return "", domain.Account{}, err
		}
	}

	token, err := s.Sessions.Issue(account.ID, account.Email, time.Now())
	if err != nil {
		return "", domain.Account{}, fmt.Errorf("issue session: %w", err)
	}

	return token, account, nil
}
