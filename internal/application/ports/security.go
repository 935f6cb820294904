package ports

import (
	"time"

	"github.com/danispp/Task-Management/internal/domain"
)

// PasswordHasher hashes and verifies passwords. Verify reports a mismatch as (false, nil);
// an error means the stored digest itself is unusable.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}

// Identity is what a verified token says about its bearer.
type Identity struct {
	UserID  domain.UserID
	Email   string
	Name    string
	TokenID string
}

// TokenIssuer signs and validates access tokens.
type TokenIssuer interface {
	Issue(user *domain.User) (token string, expiresAt time.Time, err error)
	Validate(tokenString string) (*Identity, error)
}
