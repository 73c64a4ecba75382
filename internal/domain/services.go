package domain

import (
	"context"
	"time"
)

type AccountService interface {
	Register(ctx context.Context, input RegisterInput) error
	// Login verifies the password and returns a serialized bearer token
	// carrying the user's stored claims.
	Login(ctx context.Context, input LoginInput) (string, error)
}

// PasswordHasher hides the hashing algorithm from the account service.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// PasswordPolicy reports the problems with a candidate password, one
// description per violated rule. An empty slice means the password is
// acceptable.
type PasswordPolicy interface {
	Validate(password string) []string
}

// TokenIssuer signs an ordered claim set into a bearer token.
type TokenIssuer interface {
	Issue(claims []Claim, now time.Time) (string, error)
}
