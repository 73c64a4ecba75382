package domain

import (
	"time"

	"github.com/google/uuid"
)

// ClaimType is the closed set of claim kinds a token may carry.
type ClaimType string

const (
	ClaimEmail       ClaimType = "email"
	ClaimRole        ClaimType = "role"
	ClaimDateOfBirth ClaimType = "dateofbirth"
)

// Claim is a typed fact about a principal. Claims are immutable once
// embedded in a token.
type Claim struct {
	Type  ClaimType
	Value string
}

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	DateOfBirth  time.Time
	CreatedAt    time.Time
}

// Claims materializes the canonical ordered claim set for a user. The role
// is the one declared at registration; order is preserved into the token
// payload but carries no semantic weight.
func (u User) Claims(role string) []Claim {
	return []Claim{
		{Type: ClaimEmail, Value: u.Email},
		{Type: ClaimRole, Value: role},
		{Type: ClaimDateOfBirth, Value: u.DateOfBirth.Format(time.DateOnly)},
	}
}

// Roles returns the values of every role claim in the set.
func Roles(claims []Claim) []string {
	var roles []string
	for _, c := range claims {
		if c.Type == ClaimRole {
			roles = append(roles, c.Value)
		}
	}
	return roles
}

// FindClaim returns the first claim of the given type.
func FindClaim(claims []Claim, t ClaimType) (Claim, bool) {
	for _, c := range claims {
		if c.Type == t {
			return c, true
		}
	}
	return Claim{}, false
}
