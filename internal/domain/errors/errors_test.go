package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	for _, err := range []error{
		ErrUserExists,
		ErrInvalidCredentials,
		ErrInvalidToken,
		ErrUserNotFound,
		ErrProjectNotFound,
		ErrTaskNotFound,
		ErrAssigneeNotFound,
	} {
		if err == nil || err.Error() == "" {
			t.Errorf("sentinel %v should carry a message", err)
		}
	}
	wrapped := fmt.Errorf("get project: %w", ErrProjectNotFound)
	if !errors.Is(wrapped, ErrProjectNotFound) {
		t.Error("wrapped sentinel should match with errors.Is")
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"title": "is required", "dueDate": "invalid"}}
	want := "validation failed: dueDate: invalid; title: is required"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	var ve *ValidationError
	if !errors.As(fmt.Errorf("create task: %w", NewValidationError("name", "is required")), &ve) {
		t.Fatal("errors.As should find *ValidationError")
	}
	if ve.Fields["name"] != "is required" {
		t.Errorf("Fields = %v", ve.Fields)
	}
}
