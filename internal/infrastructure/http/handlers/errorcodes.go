package handlers

// API error codes returned in JSON { "error": "...", "code": "..." } for stable client handling.
const (
	ErrCodeInvalidCredentials = "invalid_credentials"
	ErrCodeUnauthorized       = "unauthorized"
	ErrCodeInvalidRequest     = "invalid_request"
	ErrCodeValidation         = "validation_failed"
	ErrCodeNotFound           = "not_found"
	ErrCodeConflict           = "conflict"
	ErrCodeEmailTaken         = "email_taken"
	ErrCodeMethodNotAllowed   = "method_not_allowed"
	ErrCodeUnsupportedMedia   = "unsupported_media_type"
	ErrCodeInternal           = "internal_error"
)
