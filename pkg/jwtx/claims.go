package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the default lifetime for session tokens. There is
// no refresh or revocation path; a token stays valid until this elapses,
// so keep it short.
const DefaultSessionTTL = time.Hour

// Claims are the session-token claims. Subject carries the account ID;
// everything the guard needs is in the token, nothing is stored
// server-side.
type Claims struct {
	jwt.RegisteredClaims

	// Email of the authenticated account, for logging and display.
	Email string `json:"email,omitempty"`
}

// NewSessionClaims builds minimally-correct claims for a session token.
func NewSessionClaims(subject, email, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Email: email,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
