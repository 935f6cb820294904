package auth

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danispp/Task-Management/internal/application/ports"
	"github.com/danispp/Task-Management/internal/domain"
	domerrors "github.com/danispp/Task-Management/internal/domain/errors"
)

// MaxPasswordBytes matches the bcrypt input limit so every accepted password can
// be hashed by either algorithm.
const MaxPasswordBytes = 72

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type RegisterUserInput struct {
	Email    string
	Password string
	FullName string
}

// AuthResult is returned by both registration and login.
type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

type RegisterUser struct {
	tx       ports.Transactor
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	issuer   ports.TokenIssuer
	enqueuer ports.TaskEnqueuer
}

func NewRegisterUser(tx ports.Transactor, users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, enqueuer ports.TaskEnqueuer) *RegisterUser {
	return &RegisterUser{tx: tx, users: users, hasher: hasher, issuer: issuer, enqueuer: enqueuer}
}

func (uc *RegisterUser) Execute(ctx context.Context, input RegisterUserInput) (*AuthResult, error) {
	email := strings.TrimSpace(input.Email)
	name := strings.TrimSpace(input.FullName)
	fields := map[string]string{}
	if !emailRegex.MatchString(email) {
		fields["email"] = "must be a valid email address"
	}
	switch {
	case input.Password == "":
		fields["password"] = "is required"
	case len(input.Password) > MaxPasswordBytes:
		fields["password"] = fmt.Sprintf("must be at most %d bytes", MaxPasswordBytes)
	}
	if name == "" {
		fields["fullName"] = "is required"
	}
	if len(fields) > 0 {
		return nil, &domerrors.ValidationError{Fields: fields}
	}

	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		Email:        email,
		PasswordHash: hash,
		FullName:     name,
		CreatedAt:    time.Now().UTC(),
	}
	err = uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := uc.users.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domerrors.ErrUserExists
		}
		return uc.users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	token, exp, err := uc.issuer.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	// enqueuer logs its own failures; a missing welcome mail must not fail registration
	_ = uc.enqueuer.EnqueueWelcomeEmail(ctx, user.Email, user.FullName)
	return &AuthResult{User: user, Token: token, ExpiresAt: exp}, nil
}
