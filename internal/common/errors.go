// Package common defines shared constants and sentinel errors used across
// the analyzer and vault layers of PassGuard. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Input validation errors.
	ErrorEmptyPassword = errors.New("password required")
	ErrorInvalidInput  = errors.New("invalid input")

	// Vault/session errors. ErrorSecretUnavailable means the caller must
	// re-authenticate; ErrorSessionExpired means the session master secret
	// is gone and needs a refresh.
	ErrorSecretUnavailable = errors.New("needs re-authentication")
	ErrorSessionExpired    = errors.New("needs refresh")
	ErrorDecryptionFailed  = errors.New("decryption failed")

	// Auth errors (invalid, malformed or expired token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
