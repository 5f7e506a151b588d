package domain

import "time"

// Account is an identity keyed by email. The OTP* fields hold the pending
// challenge: both are set together when a code is issued and cleared
// together when one is accepted. A challenge with only one field present
// is never meaningful.
type Account struct {
	ID          string
	Email       string // lowercased, unique
	Name        string
	DateOfBirth *time.Time // optional

	// Pending challenge. OTPHash is the Argon2id hash of the current
	// code; OTPExpiresAt is its absolute expiry. Issuing a new code
	// overwrites both, so at most one challenge is outstanding.
	OTPHash      *string
	OTPExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasChallenge reports whether a pending challenge is present. It says
// nothing about expiry; that is enforced at validation time.
func (a Account) HasChallenge() bool {
	return a.OTPHash != nil && a.OTPExpiresAt != nil
}
