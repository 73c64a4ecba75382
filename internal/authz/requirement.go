package authz

import (
	"time"

	"github.com/policyauth/policy-auth-api/internal/domain"
)

// Requirement is a single authorization predicate over a validated claim
// set. Implementations must be pure functions of (claims, now); the fixed
// set below keeps evaluation exhaustive and lock-free.
type Requirement interface {
	Kind() string
	Satisfied(claims []domain.Claim, now time.Time) bool
}

// Authenticated is satisfied whenever a validated claim set is present.
type Authenticated struct{}

func (Authenticated) Kind() string { return "authenticated" }

func (Authenticated) Satisfied(claims []domain.Claim, _ time.Time) bool {
	return claims != nil
}

// RoleMembership is satisfied when at least one role claim carries a value
// from the allowed set.
type RoleMembership struct {
	allowed map[string]struct{}
}

func NewRoleMembership(roles ...string) RoleMembership {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return RoleMembership{allowed: allowed}
}

func (RoleMembership) Kind() string { return "role_membership" }

func (r RoleMembership) Satisfied(claims []domain.Claim, _ time.Time) bool {
	for _, role := range domain.Roles(claims) {
		if _, ok := r.allowed[role]; ok {
			return true
		}
	}
	return false
}

// MinimumAge is satisfied when the date-of-birth claim exists, parses, and
// the principal has reached the threshold age. The threshold day itself
// counts: the check passes on the birthday.
type MinimumAge struct {
	Years int
}

func (MinimumAge) Kind() string { return "minimum_age" }

func (m MinimumAge) Satisfied(claims []domain.Claim, now time.Time) bool {
	claim, ok := domain.FindClaim(claims, domain.ClaimDateOfBirth)
	if !ok {
		return false
	}
	dob, err := time.Parse(time.DateOnly, claim.Value)
	if err != nil {
		return false
	}
	return !now.Before(dob.AddDate(m.Years, 0, 0))
}
