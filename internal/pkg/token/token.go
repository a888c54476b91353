// Package token generates opaque, unguessable identifiers for sessions.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const idBytes = 32

// New returns a 256-bit random id in unpadded url-safe base64, suitable for
// use as a bearer token inside a cookie.
func New() (string, error) {
	b := make([]byte, idBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
