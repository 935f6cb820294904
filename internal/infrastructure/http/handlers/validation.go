package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	domerrors "github.com/danispp/Task-Management/internal/domain/errors"
)

// Validation limits.
const (
	MaxEmailLength    = 254
	MinPasswordLength = 6
	MaxPasswordBytes  = 72 // bcrypt ignores anything past 72 bytes
	MaxFullNameLength = 100
	maxBodyBytes      = 1 << 20
)

// newValidator returns a validator that reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeBody reads one JSON document into dst. Every failure comes back as a *ValidationError.
func decodeBody(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		var syntaxErr *json.SyntaxError
		switch {
		case errors.Is(err, io.EOF):
			return domerrors.NewValidationError("body", "is required")
		case errors.As(err, &typeErr) && typeErr.Field != "":
			return domerrors.NewValidationError(typeErr.Field, fmt.Sprintf("must be a %s", typeErr.Type))
		case errors.As(err, &syntaxErr):
			return domerrors.NewValidationError("body", "malformed JSON")
		default:
			return domerrors.NewValidationError("body", err.Error())
		}
	}
	return nil
}

// validateStruct runs struct tags and converts failures to a field map.
func validateStruct(v *validator.Validate, s interface{}) *domerrors.ValidationError {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domerrors.NewValidationError("body", err.Error())
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return &domerrors.ValidationError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}

// mergeFields adds extra field errors to verr, allocating it when nil.
func mergeFields(verr *domerrors.ValidationError, field, msg string) *domerrors.ValidationError {
	if verr == nil {
		verr = &domerrors.ValidationError{Fields: map[string]string{}}
	}
	if _, exists := verr.Fields[field]; !exists {
		verr.Fields[field] = msg
	}
	return verr
}

// parseDueDate accepts RFC 3339 or a bare date (midnight UTC). Empty means no due date.
func parseDueDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	v := strings.TrimSpace(*s)
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return nil, errors.New("must be an RFC 3339 timestamp or YYYY-MM-DD")
	}
	return &t, nil
}
