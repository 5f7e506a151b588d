package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. A 6-digit code has under 20 bits of entropy, so a
// memory-hard hash is what stands between a leaked database and offline
// recovery of every pending code.
const (
	memory      = 19 * 1024 // KiB
	iterations  = 2
	parallelism = 1
	keyLength   = 32
	saltLength  = 16
)

// ErrHashMismatch is returned by VerifyOTPHash when the code does not
// match the stored hash.
var ErrHashMismatch = errors.New("cryptox: hash mismatch")

// HashOTP generates a PHC-format Argon2id hash string including salt and
// parameters, suitable for storing a pending one-time code at rest.
func HashOTP(code string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(code), salt, iterations, memory, parallelism, keyLength)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf(
		"$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory, iterations, parallelism, b64Salt, b64Hash,
	), nil
}

// VerifyOTPHash compares a submitted code against a PHC-style Argon2id
// hash in constant time. Returns ErrHashMismatch when they differ.
func VerifyOTPHash(code, encodedHash string) error {
	// Parse PHC format: $argon2id$v=19$m=X,t=Y,p=Z$salt$hash
	parts := make([]string, 0, 6)
	start := 0
	for i := range len(encodedHash) {
		if encodedHash[i] == '$' {
			parts = append(parts, encodedHash[start:i])
			start = i + 1
		}
	}
	parts = append(parts, encodedHash[start:])

	if len(parts) != 6 {
		return errors.New("invalid hash format: expected 6 parts")
	}
	if parts[1] != "argon2id" {
		return errors.New("invalid hash format: not argon2id")
	}
	if parts[2] != "v=19" {
		return errors.New("invalid hash format: wrong version")
	}

	var mem, iters uint32
	var par uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return fmt.Errorf("invalid hash format: failed to parse parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("invalid hash format: failed to decode salt: %w", err)
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return fmt.Errorf("invalid hash format: failed to decode hash: %w", err)
	}

	computed := argon2.IDKey(
		[]byte(code),
		salt,
		iters,
		mem,
		par,
		uint32(len(expected)), // #nosec G115 - hash lengths are small
	)

	if subtle.ConstantTimeCompare(computed, expected) == 1 {
		return nil
	}
	return ErrHashMismatch
}
