package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/danispp/Task-Management/internal/application/auth"
	"github.com/danispp/Task-Management/internal/application/ports"
	domerrors "github.com/danispp/Task-Management/internal/domain/errors"
)

type AuthHandler struct {
	register *auth.RegisterUser
	login    *auth.Login
	audit    auditor
	validate *validator.Validate
	log      zerolog.Logger
}

func NewAuthHandler(register *auth.RegisterUser, login *auth.Login, enqueuer ports.TaskEnqueuer, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		register: register,
		login:    login,
		audit:    auditor{log: log, enqueuer: enqueuer},
		validate: newValidator(),
		log:      log,
	}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName" validate:"required,max=100"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	if err := decodeBody(r, &body); err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	verr := validateStruct(h.validate, &body)
	if len(body.Password) > MaxPasswordBytes {
		verr = mergeFields(verr, "password", "must be at most 72 bytes")
	}
	if verr != nil {
		writeValidationErr(w, verr)
		return
	}
	result, err := h.register.Execute(r.Context(), auth.RegisterUserInput{
		Email:    body.Email,
		Password: body.Password,
		FullName: body.FullName,
	})
	if err != nil {
		h.audit.record(r, EventRegister, "", err)
		writeDomainErr(w, h.log, err)
		return
	}
	h.audit.record(r, EventRegister, result.User.ID.String(), nil)
	w.Header().Set("Location", "/api/users/me")
	writeJSON(w, http.StatusCreated, toAuthResponse(result))
}

// Login answers every credential failure with the same 401 body so callers cannot tell
// an unknown email from a wrong password.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := decodeBody(r, &body); err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	result, err := h.login.Execute(r.Context(), auth.LoginInput{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		h.audit.record(r, EventLogin, "", err)
		if errors.Is(err, domerrors.ErrInvalidCredentials) {
			writeErr(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, "invalid email or password")
			return
		}
		writeDomainErr(w, h.log, err)
		return
	}
	h.audit.record(r, EventLogin, result.User.ID.String(), nil)
	writeJSON(w, http.StatusOK, toAuthResponse(result))
}

func toAuthResponse(result *auth.AuthResult) AuthResponse {
	return AuthResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      toUserResponse(result.User),
	}
}
