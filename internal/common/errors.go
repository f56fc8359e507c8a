// Package common defines shared constants and sentinel errors used across
// the Reminisce server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Auth and scoping errors.
	ErrorUnauthenticated = errors.New("unauthenticated")
	ErrorForbidden       = errors.New("forbidden")
	ErrSessionExpired    = errors.New("session expired")

	// Validation errors.
	ErrorValidation       = errors.New("validation error")
	ErrCaretakerRequired  = errors.New("caretaker username required")
	ErrCaretakerNotFound  = errors.New("caretaker not found")
	ErrCaretakerWrongRole = errors.New("account is not a caretaker")

	// External-service errors. Vision/LLM failures are absorbed inside the
	// enrichment facade and never reach callers; speech synthesis surfaces.
	ErrSpeechUnavailable = errors.New("speech synthesis unavailable")
)
