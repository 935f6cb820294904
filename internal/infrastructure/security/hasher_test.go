package security

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// small parameters keep the suite fast
var testArgon2 = Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestHashVerifyRoundTrip(t *testing.T) {
	hashers := map[string]interface {
		Hash(string) (string, error)
		Verify(string, string) (bool, error)
	}{
		"bcrypt": NewBcryptHasher(bcrypt.MinCost),
		"argon2": NewArgon2Hasher(testArgon2),
	}
	passwords := []string{"secret1", "correct horse battery staple", "pässwörd", "x", strings.Repeat("p", 72)}

	for name, h := range hashers {
		t.Run(name, func(t *testing.T) {
			for _, pw := range passwords {
				digest, err := h.Hash(pw)
				if err != nil {
					t.Fatalf("Hash(%q): %v", pw, err)
				}
				if digest == pw {
					t.Fatal("digest must not equal plaintext")
				}
				ok, err := h.Verify(pw, digest)
				if err != nil || !ok {
					t.Errorf("Verify(%q) = %v, %v; want true, nil", pw, ok, err)
				}
				ok, err = h.Verify(pw+"!", digest)
				if err != nil || ok {
					t.Errorf("Verify(wrong) = %v, %v; want false, nil", ok, err)
				}
			}
		})
	}
}

func TestBcryptRejectsPasswordsPastLimit(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	pw := strings.Repeat("p", bcryptMaxPassword)
	digest, err := h.Hash(pw)
	if err != nil {
		t.Fatal(err)
	}
	for _, attempt := range []string{pw + "extra", pw + "p"} {
		if ok, err := h.Verify(attempt, digest); ok || err != nil {
			t.Errorf("Verify(%d bytes) = %v, %v; want false, nil", len(attempt), ok, err)
		}
	}
}

func TestHashIsSalted(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	a, _ := h.Hash("secret1")
	b, _ := h.Hash("secret1")
	if a == b {
		t.Error("two hashes of the same password should differ")
	}
	ah := NewArgon2Hasher(testArgon2)
	c, _ := ah.Hash("secret1")
	d, _ := ah.Hash("secret1")
	if c == d {
		t.Error("two argon2 hashes of the same password should differ")
	}
}

func TestVerifyMalformedDigest(t *testing.T) {
	tests := []struct {
		name   string
		hasher interface {
			Verify(string, string) (bool, error)
		}
		digest string
	}{
		{name: "bcrypt too short", hasher: NewBcryptHasher(bcrypt.MinCost), digest: "$2a$04$abc"},
		{name: "argon2 wrong field count", hasher: NewArgon2Hasher(testArgon2), digest: "$argon2id$v=19$m=1024"},
		{name: "argon2 bad base64", hasher: NewArgon2Hasher(testArgon2), digest: "$argon2id$v=19$m=1024,t=1,p=1$***$***"},
		{name: "argon2 zero memory", hasher: NewArgon2Hasher(testArgon2), digest: "$argon2id$v=19$m=0,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5"},
		{name: "argon2 wrong version", hasher: NewArgon2Hasher(testArgon2), digest: "$argon2id$v=16$m=1024,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := tt.hasher.Verify("secret1", tt.digest)
			if ok {
				t.Error("malformed digest must not verify")
			}
			if err == nil {
				t.Error("malformed digest should be an error, not a mismatch")
			}
		})
	}
}

func TestHasherDispatch(t *testing.T) {
	h, err := NewHasher(AlgorithmArgon2id, bcrypt.MinCost, testArgon2)
	if err != nil {
		t.Fatal(err)
	}
	argonDigest, _ := h.Hash("secret1")
	bcryptDigest, _ := NewBcryptHasher(bcrypt.MinCost).Hash("secret1")

	for _, digest := range []string{argonDigest, bcryptDigest} {
		ok, err := h.Verify("secret1", digest)
		if err != nil || !ok {
			t.Errorf("Verify(%q) = %v, %v", digest[:10], ok, err)
		}
	}

	if _, err := h.Verify("secret1", "plaintext"); !errors.Is(err, ErrUnknownHashFormat) {
		t.Errorf("Verify(unknown) err = %v, want ErrUnknownHashFormat", err)
	}
	if _, err := NewHasher("md5", 0, testArgon2); err == nil {
		t.Error("NewHasher should reject unknown algorithms")
	}
}

func TestArgon2VerifyUsesDigestParameters(t *testing.T) {
	digest, err := NewArgon2Hasher(testArgon2).Hash("secret1")
	if err != nil {
		t.Fatal(err)
	}
	other := NewArgon2Hasher(Argon2Params{Memory: 2048, Iterations: 2, Parallelism: 1})
	ok, err := other.Verify("secret1", digest)
	if err != nil || !ok {
		t.Fatalf("Verify = %v, %v; want true, nil", ok, err)
	}
}
