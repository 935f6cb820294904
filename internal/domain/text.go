package domain

import "strings"

// TrimOptional trims an optional free-text field. Blank input collapses to nil.
func TrimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
