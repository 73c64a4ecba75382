package token

import "errors"

// Validation failures form a closed set. The HTTP edge collapses all of them
// to a generic unauthenticated response so callers cannot probe which check
// failed.
var (
	ErrMalformed        = errors.New("token malformed")
	ErrSignatureInvalid = errors.New("token signature invalid")
	ErrIssuerMismatch   = errors.New("token issuer mismatch")
	ErrAudienceMismatch = errors.New("token audience mismatch")
	ErrExpired          = errors.New("token expired")
	ErrNotYetValid      = errors.New("token used before issued")
)
