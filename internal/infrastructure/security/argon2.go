package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const argon2Prefix = "$argon2id$"

// Argon2Params tunes Argon2id. Zero fields fall back to the defaults below.
type Argon2Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

var defaultArgon2 = Argon2Params{
	Memory:      64 * 1024,
	Iterations:  3,
	Parallelism: 2,
	SaltLength:  16,
	KeyLength:   32,
}

func (p Argon2Params) withDefaults() Argon2Params {
	if p.Memory == 0 {
		p.Memory = defaultArgon2.Memory
	}
	if p.Iterations == 0 {
		p.Iterations = defaultArgon2.Iterations
	}
	if p.Parallelism == 0 {
		p.Parallelism = defaultArgon2.Parallelism
	}
	if p.SaltLength == 0 {
		p.SaltLength = defaultArgon2.SaltLength
	}
	if p.KeyLength == 0 {
		p.KeyLength = defaultArgon2.KeyLength
	}
	return p
}

// argon2Digest is a stored Argon2id hash in PHC form:
// $argon2id$v=19$m=<KiB>,t=<iterations>,p=<lanes>$<salt>$<key>, both base64 without padding.
type argon2Digest struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	salt        []byte
	key         []byte
}

func (d argon2Digest) String() string {
	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s", argon2Prefix, argon2.Version,
		d.memory, d.iterations, d.parallelism,
		base64.RawStdEncoding.EncodeToString(d.salt),
		base64.RawStdEncoding.EncodeToString(d.key))
}

// derive runs Argon2id for password with d's cost parameters and salt.
func (d argon2Digest) derive(password string, keyLen uint32) []byte {
	return argon2.IDKey([]byte(password), d.salt, d.iterations, d.memory, d.parallelism, keyLen)
}

func parseArgon2Digest(s string) (argon2Digest, error) {
	var d argon2Digest
	fields := strings.Split(strings.TrimPrefix(s, argon2Prefix), "$")
	if !strings.HasPrefix(s, argon2Prefix) || len(fields) != 4 {
		return d, errors.New("argon2: malformed digest")
	}
	var version int
	if _, err := fmt.Sscanf(fields[0], "v=%d", &version); err != nil {
		return d, fmt.Errorf("argon2: version: %w", err)
	}
	if version != argon2.Version {
		return d, fmt.Errorf("argon2: unsupported version %d", version)
	}
	if _, err := fmt.Sscanf(fields[1], "m=%d,t=%d,p=%d", &d.memory, &d.iterations, &d.parallelism); err != nil {
		return d, fmt.Errorf("argon2: parameters: %w", err)
	}
	if d.memory == 0 || d.iterations == 0 || d.parallelism == 0 {
		return d, errors.New("argon2: zero cost parameter")
	}
	var err error
	if d.salt, err = base64.RawStdEncoding.DecodeString(fields[2]); err != nil {
		return d, fmt.Errorf("argon2: salt: %w", err)
	}
	if d.key, err = base64.RawStdEncoding.DecodeString(fields[3]); err != nil {
		return d, fmt.Errorf("argon2: key: %w", err)
	}
	if len(d.key) == 0 {
		return d, errors.New("argon2: empty key")
	}
	return d, nil
}

// Argon2Hasher implements ports.PasswordHasher with Argon2id.
type Argon2Hasher struct {
	params Argon2Params
}

func NewArgon2Hasher(params Argon2Params) *Argon2Hasher {
	return &Argon2Hasher{params: params.withDefaults()}
}

func (h *Argon2Hasher) Hash(password string) (string, error) {
	d := argon2Digest{
		memory:      h.params.Memory,
		iterations:  h.params.Iterations,
		parallelism: h.params.Parallelism,
		salt:        make([]byte, h.params.SaltLength),
	}
	if _, err := rand.Read(d.salt); err != nil {
		return "", fmt.Errorf("argon2: salt: %w", err)
	}
	d.key = d.derive(password, h.params.KeyLength)
	return d.String(), nil
}

// Verify uses the cost parameters recorded in the digest, not the hasher's own, so
// digests survive a change of ARGON2_* settings.
func (h *Argon2Hasher) Verify(password, encoded string) (bool, error) {
	d, err := parseArgon2Digest(encoded)
	if err != nil {
		return false, err
	}
	derived := d.derive(password, uint32(len(d.key)))
	return subtle.ConstantTimeCompare(d.key, derived) == 1, nil
}
