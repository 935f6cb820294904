package handlers

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/rs/zerolog"

	domerrors "github.com/danispp/Task-Management/internal/domain/errors"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

// writeErr sends JSON { "error": message, "code": errCode }. If errCode is empty, a default is used from code.
func writeErr(w http.ResponseWriter, code int, errCode string, message string) {
	if errCode == "" {
		errCode = defaultErrCode(code)
	}
	writeJSON(w, code, errorResponse{Error: message, Code: errCode})
}

func writeValidationErr(w http.ResponseWriter, verr *domerrors.ValidationError) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error:  verr.Error(),
		Code:   ErrCodeValidation,
		Fields: verr.Fields,
	})
}

// writeDomainErr maps use case errors to a status and code. Anything unrecognized is
// logged and answered with a generic 500 so internals never leak.
func writeDomainErr(w http.ResponseWriter, log zerolog.Logger, err error) {
	var verr *domerrors.ValidationError
	switch {
	case errors.As(err, &verr):
		writeValidationErr(w, verr)
	case errors.Is(err, domerrors.ErrAssigneeNotFound):
		writeValidationErr(w, domerrors.NewValidationError("assignedToUserId", err.Error()))
	case errors.Is(err, domerrors.ErrUserExists):
		writeErr(w, http.StatusConflict, ErrCodeEmailTaken, err.Error())
	case errors.Is(err, domerrors.ErrInvalidCredentials):
		writeErr(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, err.Error())
	case errors.Is(err, domerrors.ErrInvalidToken):
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
	case errors.Is(err, domerrors.ErrUserNotFound),
		errors.Is(err, domerrors.ErrProjectNotFound),
		errors.Is(err, domerrors.ErrTaskNotFound):
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
	}
}

// NotFound answers requests no route matched, in the same envelope as every other error.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeErr(w, http.StatusNotFound, "", "no route for "+r.URL.Path)
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeErr(w, http.StatusMethodNotAllowed, "", r.Method+" not allowed on "+r.URL.Path)
}

// RequireJSON rejects request bodies that are not application/json with a 415.
// Bodiless requests pass through.
func RequireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}
		mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mt != "application/json" {
			writeErr(w, http.StatusUnsupportedMediaType, "", "Content-Type must be application/json")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func defaultErrCode(httpCode int) string {
	switch httpCode {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusMethodNotAllowed:
		return ErrCodeMethodNotAllowed
	case http.StatusUnsupportedMediaType:
		return ErrCodeUnsupportedMedia
	default:
		return ErrCodeInternal
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
