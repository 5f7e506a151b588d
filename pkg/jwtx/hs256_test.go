package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/jotmail/jotmail/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestSigner(t *testing.T, ttl time.Duration) *jwtx.HS256 {
	t.Helper()
	s, err := jwtx.NewHS256(testSecret, "jotmail-test", ttl)
	require.NoError(t, err)
	return s
}

func TestNewHS256RejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := jwtx.NewHS256([]byte("too-short"), "jotmail-test", time.Hour)
	require.Error(t, err)
}

func TestIssueVerifyRoundtrip(t *testing.T) {
	t.Parallel()

	s := newTestSigner(t, time.Hour)

	token, err := s.Issue("01JACCOUNT", "a@x.com", time.Now())
	require.NoError(t, err)

	claims, err := s.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "01JACCOUNT", claims.Subject)
	require.Equal(t, "a@x.com", claims.Email)
	require.Equal(t, "jotmail-test", claims.Issuer)
	require.NotEmpty(t, claims.ID)
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	t.Parallel()

	s := newTestSigner(t, time.Hour)

	token, err := s.Issue("01JACCOUNT", "a@x.com", time.Now())
	require.NoError(t, err)

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = s.Verify(tampered)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	s := newTestSigner(t, time.Hour)
	other, err := jwtx.NewHS256([]byte("ffffffffffffffffffffffffffffffff"), "jotmail-test", time.Hour)
	require.NoError(t, err)

	token, err := s.Issue("01JACCOUNT", "a@x.com", time.Now())
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestVerifyRejectsExpired(t *testing.T) {
	t.Parallel()

	s := newTestSigner(t, time.Hour)

	// Issued two hours in the past with a one hour TTL; outside leeway.
	token, err := s.Issue("01JACCOUNT", "a@x.com", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = s.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	s := newTestSigner(t, time.Hour)

	_, err := s.Verify("not-a-jwt")
	require.ErrorIs(t, err, jwtx.ErrMalformed)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	s := newTestSigner(t, time.Hour)
	other, err := jwtx.NewHS256(testSecret, "someone-else", time.Hour)
	require.NoError(t, err)

	token, err := other.Issue("01JACCOUNT", "a@x.com", time.Now())
	require.NoError(t, err)

	_, err = s.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}
