// Package password hashes and verifies credentials. Stored hashes are
// self-describing: the algorithm is dispatched on the hash prefix, which lets
// bcrypt (all new credentials) and legacy argon2id records coexist so that
// migration never forces a password reset.
package password

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// Hash produces a bcrypt hash for a new credential.
func Hash(plaintext string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// Verify reports whether plaintext matches the stored tagged hash. A
// malformed or unrecognised stored hash verifies false; it never escapes as
// an error, so callers can treat every mismatch as invalid credentials.
func Verify(stored, plaintext string) bool {
	switch {
	case strings.HasPrefix(stored, "$2"):
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plaintext)) == nil
	case strings.HasPrefix(stored, "$argon2id$"):
		return verifyArgon2id(stored, plaintext)
	default:
		return false
	}
}

// verifyArgon2id checks plaintext against a legacy argon2id record of the
// form $argon2id$v=19$m=...,t=...,p=...$<salt>$<key> (salt and key in
// unpadded standard base64).
func verifyArgon2id(stored, plaintext string) bool {
	parts := strings.Split(stored, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory, iterations uint32
	var parallelism uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		return false
	}
	if memory == 0 || iterations == 0 || parallelism == 0 {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false
	}

	got := argon2.IDKey([]byte(plaintext), salt, iterations, memory, parallelism, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}
