package authz

import (
	"fmt"
	"time"

	"github.com/policyauth/policy-auth-api/internal/domain"
)

// Built-in policy names.
const (
	PolicyAdminManagerUser = "AdminManagerUserPolicy"
	PolicyAdminManager     = "AdminManagerPolicy"
	PolicyAdminUser        = "AdminUserPolicy"
)

// DeniedError names the first requirement of a policy that was not
// satisfied, in policy order.
type DeniedError struct {
	Policy      string
	Requirement string
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("policy %q denied: requirement %q not satisfied", e.Policy, e.Requirement)
}

// Registry maps a policy name to its ordered requirement list. It is built
// once at startup and read-only afterwards, so concurrent evaluation is safe
// without locks.
type Registry struct {
	policies map[string][]Requirement
}

// NewRegistry returns a registry preloaded with the built-in policies.
func NewRegistry() *Registry {
	r := &Registry{policies: make(map[string][]Requirement)}
	r.Register(PolicyAdminManagerUser,
		Authenticated{},
		NewRoleMembership("admin", "manager", "user"),
	)
	r.Register(PolicyAdminManager,
		Authenticated{},
		NewRoleMembership("admin", "manager"),
	)
	r.Register(PolicyAdminUser,
		Authenticated{},
		NewRoleMembership("admin", "user"),
		MinimumAge{Years: 18},
	)
	return r
}

// Register adds a policy. Only call during startup, before the registry is
// shared.
func (r *Registry) Register(name string, requirements ...Requirement) {
	r.policies[name] = requirements
}

// Evaluate ANDs the policy's requirements over (claims, now) and returns nil
// or a DeniedError for the first failure.
func (r *Registry) Evaluate(policy string, claims []domain.Claim, now time.Time) error {
	requirements, ok := r.policies[policy]
	if !ok {
		return fmt.Errorf("unknown policy %q", policy)
	}

	for _, req := range requirements {
		if !req.Satisfied(claims, now) {
			return &DeniedError{Policy: policy, Requirement: req.Kind()}
		}
	}
	return nil
}
