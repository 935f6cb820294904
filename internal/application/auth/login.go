package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/danispp/Task-Management/internal/application/ports"
	domerrors "github.com/danispp/Task-Management/internal/domain/errors"
)

type LoginInput struct {
	Email    string
	Password string
}

type Login struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
	// decoy is verified against when the email is unknown so both failures cost one hash.
	decoy string
}

func NewLogin(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer) *Login {
	decoy, _ := hasher.Hash("taskman-decoy-password")
	return &Login{users: users, hasher: hasher, issuer: issuer, decoy: decoy}
}

// Execute returns errors.ErrInvalidCredentials for an unknown email and for a wrong
// password alike.
func (uc *Login) Execute(ctx context.Context, input LoginInput) (*AuthResult, error) {
	if input.Password == "" {
		return nil, domerrors.ErrInvalidCredentials
	}
	user, err := uc.users.GetByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		_, _ = uc.hasher.Verify(input.Password, uc.decoy)
		return nil, domerrors.ErrInvalidCredentials
	}
	ok, err := uc.hasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("stored hash for user %s: %w", user.ID, err)
	}
	if !ok {
		return nil, domerrors.ErrInvalidCredentials
	}
	token, exp, err := uc.issuer.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: exp}, nil
}
