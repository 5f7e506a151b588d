package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
)

// MinSecretBytes is the smallest accepted HS256 secret. Anything shorter
// than the HMAC block makes brute force cheaper than the token lifetime.
const MinSecretBytes = 32

// Verifier validates a session token and returns the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// HS256 signs and verifies session tokens with a single symmetric secret.
// It is both the Session Issuer and the Verifier; there is deliberately no
// key rotation or revocation here.
type HS256 struct {
	secret []byte
	issuer string
	ttl    time.Duration
	leeway time.Duration
}

// NewHS256 creates a symmetric signer/verifier. The secret must be at
// least MinSecretBytes long. A zero ttl falls back to DefaultSessionTTL.
func NewHS256(secret []byte, issuer string, ttl time.Duration) (*HS256, error) {
	if len(secret) < MinSecretBytes {
		return nil, fmt.Errorf("jwtx: secret must be at least %d bytes, got %d", MinSecretBytes, len(secret))
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &HS256{
		secret: secret,
		issuer: issuer,
		ttl:    ttl,
		leeway: 30 * time.Second,
	}, nil
}

// TTL returns the configured session lifetime.
func (h *HS256) TTL() time.Duration { return h.ttl }

// Issue mints a signed session token for the given account at the given
// time. Expiry is now + TTL, absolute; the token self-destructs by clock,
// not by server state.
func (h *HS256) Issue(accountID, email string, now time.Time) (string, error) {
	claims := NewSessionClaims(accountID, email, h.issuer, h.ttl, now)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := tok.SignedString(h.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, expiry, not-before and issuer, and returns the
// decoded claims. Failures map to the package sentinel errors so callers
// can collapse them into one generic response.
func (h *HS256) Verify(token string) (Claims, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (any, error) { return h.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(h.issuer),
		jwt.WithLeeway(h.leeway),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return Claims{}, ErrNotYetValid
		case errors.Is(err, jwt.ErrTokenInvalidIssuer):
			return Claims{}, ErrIssuer
		default:
			return Claims{}, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
	}

	return claims, nil
}
