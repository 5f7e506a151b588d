package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// OTPDigits is the fixed width of generated one-time codes. Six digits
// with no leading zero keeps the code unambiguous when read from an email.
const OTPDigits = 6

const (
	otpMin   = 100000 // smallest 6-digit value
	otpRange = 900000 // [100000, 999999] inclusive
)

// GenerateOTP returns a uniformly random 6-digit numeric code drawn from
// crypto/rand. The code is returned as a string and must be compared as
// one; parsing it back to an integer invites locale and leading-zero bugs.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpRange))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+otpMin), nil
}
