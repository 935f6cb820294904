package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/danispp/Task-Management/internal/application/ports"
	"github.com/danispp/Task-Management/internal/domain"
	domerrors "github.com/danispp/Task-Management/internal/domain/errors"
)

// TokenIssuer implements ports.TokenIssuer with HS256.
type TokenIssuer struct {
	secret   []byte
	issuer   string
	audience string
	expiry   time.Duration
	now      func() time.Time
	parser   *jwt.Parser
}

type accessClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Option configures a TokenIssuer.
type Option func(*TokenIssuer)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(t *TokenIssuer) { t.now = now }
}

// NewTokenIssuer returns an issuer signing with secret. The secret is copied; it never changes afterwards.
func NewTokenIssuer(secret []byte, issuer, audience string, expiry time.Duration, opts ...Option) (*TokenIssuer, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	if expiry <= 0 {
		return nil, errors.New("token expiry must be positive")
	}
	t := &TokenIssuer{
		secret:   append([]byte(nil), secret...),
		issuer:   issuer,
		audience: audience,
		expiry:   expiry,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return t.now() }),
	)
	return t, nil
}

// Issue mints a token for user. Every token gets a fresh jti.
func (t *TokenIssuer) Issue(user *domain.User) (string, time.Time, error) {
	now := t.now()
	expiresAt := now.Add(t.expiry)
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{t.audience},
			Subject:   user.ID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: user.Email,
		Name:  user.FullName,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims.ExpiresAt.Time, nil
}

// Validate checks signature, algorithm, issuer, audience and expiry. Every failure is
// reported as errors.ErrInvalidToken wrapping the cause.
func (t *TokenIssuer) Validate(tokenString string) (*ports.Identity, error) {
	claims := &accessClaims{}
	token, err := t.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domerrors.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, domerrors.ErrInvalidToken
	}
	userID, err := domain.ParseUserID(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", domerrors.ErrInvalidToken)
	}
	return &ports.Identity{
		UserID:  userID,
		Email:   claims.Email,
		Name:    claims.Name,
		TokenID: claims.ID,
	}, nil
}

var _ ports.TokenIssuer = (*TokenIssuer)(nil)
