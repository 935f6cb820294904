package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/danispp/Task-Management/internal/domain"
	domerrors "github.com/danispp/Task-Management/internal/domain/errors"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestIssuer(t *testing.T, clock *fakeClock) *TokenIssuer {
	t.Helper()
	iss, err := NewTokenIssuer(testSecret, "taskman", "taskman-client", time.Hour, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	return iss
}

func testUser() *domain.User {
	return &domain.User{
		ID:       domain.NewUserID(uuid.New()),
		Email:    "alice@example.com",
		FullName: "Alice",
	}
}

func TestIssueAndValidate(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	iss := newTestIssuer(t, clock)
	user := testUser()

	token, exp, err := iss.Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if want := clock.t.Add(time.Hour); !exp.Equal(want) {
		t.Errorf("expiresAt = %v, want %v", exp, want)
	}

	id, err := iss.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if id.UserID != user.ID {
		t.Errorf("UserID = %s, want %s", id.UserID, user.ID)
	}
	if id.Email != user.Email || id.Name != user.FullName {
		t.Errorf("identity = %+v", id)
	}
	if _, err := uuid.Parse(id.TokenID); err != nil {
		t.Errorf("jti %q is not a uuid", id.TokenID)
	}
}

func TestIssueUniqueTokenID(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	iss := newTestIssuer(t, clock)
	user := testUser()

	a, _, _ := iss.Issue(user)
	b, _, _ := iss.Issue(user)
	if a == b {
		t.Fatal("tokens with identical claims and time must still differ")
	}
}

func TestValidateExpiryBoundary(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	iss := newTestIssuer(t, clock)
	token, exp, err := iss.Issue(testUser())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		at    time.Time
		valid bool
	}{
		{name: "just issued", at: clock.t, valid: true},
		{name: "one second before expiry", at: exp.Add(-time.Second), valid: true},
		{name: "at expiry", at: exp, valid: false},
		{name: "after expiry", at: exp.Add(time.Minute), valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock.t = tt.at
			_, err := iss.Validate(token)
			if tt.valid && err != nil {
				t.Errorf("Validate at %v: %v", tt.at, err)
			}
			if !tt.valid && !errors.Is(err, domerrors.ErrInvalidToken) {
				t.Errorf("Validate at %v err = %v, want ErrInvalidToken", tt.at, err)
			}
		})
	}
}

func TestValidateRejects(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	iss := newTestIssuer(t, clock)
	user := testUser()
	good, _, _ := iss.Issue(user)

	otherSecret, err := NewTokenIssuer([]byte("ffffffffffffffffffffffffffffffff"), "taskman", "taskman-client", time.Hour, WithClock(clock.Now))
	if err != nil {
		t.Fatal(err)
	}
	foreign, _, _ := otherSecret.Issue(user)

	otherAudience, _ := NewTokenIssuer(testSecret, "taskman", "someone-else", time.Hour, WithClock(clock.Now))
	wrongAud, _, _ := otherAudience.Issue(user)

	otherIssuer, _ := NewTokenIssuer(testSecret, "impostor", "taskman-client", time.Hour, WithClock(clock.Now))
	wrongIss, _, _ := otherIssuer.Issue(user)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Issuer:    "taskman",
		Audience:  jwt.ClaimStrings{"taskman-client"},
		Subject:   user.ID.String(),
		ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:   "taskman",
		Audience: jwt.ClaimStrings{"taskman-client"},
		Subject:  user.ID.String(),
	})
	noExpToken, _ := noExp.SignedString(testSecret)

	badSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "taskman",
		Audience:  jwt.ClaimStrings{"taskman-client"},
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
	})
	badSubjectToken, _ := badSubject.SignedString(testSecret)

	parts := strings.Split(good, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	tests := map[string]string{
		"empty":            "",
		"garbage":          "not.a.token",
		"different secret": foreign,
		"wrong audience":   wrongAud,
		"wrong issuer":     wrongIss,
		"alg none":         unsigned,
		"missing exp":      noExpToken,
		"non-uuid subject": badSubjectToken,
		"tampered payload": tampered,
	}
	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := iss.Validate(tok); !errors.Is(err, domerrors.ErrInvalidToken) {
				t.Errorf("Validate err = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestNewTokenIssuerRejectsWeakConfig(t *testing.T) {
	if _, err := NewTokenIssuer([]byte("short"), "i", "a", time.Hour); !errors.Is(err, ErrWeakSecret) {
		t.Errorf("short secret err = %v", err)
	}
	if _, err := NewTokenIssuer(testSecret, "i", "a", 0); err == nil {
		t.Error("zero expiry should be rejected")
	}
}

func TestLoadSigningSecret(t *testing.T) {
	if _, err := LoadSigningSecret(""); !errors.Is(err, ErrWeakSecret) {
		t.Errorf("empty secret err = %v", err)
	}
	raw, err := LoadSigningSecret(string(testSecret))
	if err != nil || string(raw) != string(testSecret) {
		t.Errorf("raw secret = %q, %v", raw, err)
	}
	// 32 zero bytes
	b, err := LoadSigningSecret("base64:AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=")
	if err != nil || len(b) != 32 {
		t.Errorf("base64 secret = %d bytes, %v", len(b), err)
	}
	if _, err := LoadSigningSecret("base64:!!!"); err == nil {
		t.Error("invalid base64 should fail")
	}
}
