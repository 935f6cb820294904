package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// MinSecretLength is the shortest HS256 secret accepted (256 bits).
const MinSecretLength = 32

// ErrWeakSecret is returned when the signing secret is missing or too short.
var ErrWeakSecret = errors.New("JWT secret must be at least 32 bytes")

// LoadSigningSecret decodes the configured secret. A "base64:" prefix marks an encoded
// value; anything else is used as raw bytes.
func LoadSigningSecret(secret string) ([]byte, error) {
	var key []byte
	if rest, ok := strings.CutPrefix(secret, "base64:"); ok {
		b, err := base64.StdEncoding.DecodeString(rest)
		if err != nil {
			return nil, fmt.Errorf("decode JWT secret: %w", err)
		}
		key = b
	} else {
		key = []byte(secret)
	}
	if len(key) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	return key, nil
}
