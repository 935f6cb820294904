package security

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danispp/Task-Management/internal/application/ports"
)

const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

// ErrUnknownHashFormat is returned by Verify for digests no configured algorithm produced.
var ErrUnknownHashFormat = errors.New("unrecognized password hash format")

// Hasher hashes new passwords with one algorithm and verifies digests of either,
// picking by the digest prefix.
type Hasher struct {
	primary string
	bcrypt  *BcryptHasher
	argon2  *Argon2Hasher
}

// NewHasher returns a Hasher whose Hash uses algorithm.
func NewHasher(algorithm string, bcryptCost int, argon2Params Argon2Params) (*Hasher, error) {
	switch algorithm {
	case "", AlgorithmBcrypt:
		algorithm = AlgorithmBcrypt
	case AlgorithmArgon2id:
	default:
		return nil, fmt.Errorf("unknown password hash algorithm %q", algorithm)
	}
	return &Hasher{
		primary: algorithm,
		bcrypt:  NewBcryptHasher(bcryptCost),
		argon2:  NewArgon2Hasher(argon2Params),
	}, nil
}

func (h *Hasher) Hash(password string) (string, error) {
	if h.primary == AlgorithmArgon2id {
		return h.argon2.Hash(password)
	}
	return h.bcrypt.Hash(password)
}

func (h *Hasher) Verify(password, hash string) (bool, error) {
	switch {
	case strings.HasPrefix(hash, argon2Prefix):
		return h.argon2.Verify(password, hash)
	case strings.HasPrefix(hash, "$2a$"), strings.HasPrefix(hash, "$2b$"), strings.HasPrefix(hash, "$2y$"):
		return h.bcrypt.Verify(password, hash)
	default:
		return false, ErrUnknownHashFormat
	}
}

var (
	_ ports.PasswordHasher = (*Hasher)(nil)
	_ ports.PasswordHasher = (*BcryptHasher)(nil)
	_ ports.PasswordHasher = (*Argon2Hasher)(nil)
)
