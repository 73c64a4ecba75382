package authz

import (
	"errors"
	"fmt"
	"time"

	"github.com/policyauth/policy-auth-api/internal/domain"
)

// ErrUnauthenticated covers both a missing token and every token validation
// failure. The concrete failure stays wrapped for logging but callers get a
// single signal.
var ErrUnauthenticated = errors.New("unauthenticated")

// TokenAuthenticator validates a serialized token and recovers its claims.
type TokenAuthenticator interface {
	Authenticate(tokenString string, now time.Time) ([]domain.Claim, error)
}

// Gate is the authorization entry point: token in, Allow (claims) or Deny
// (error) out. Authentication and policy failures are terminal; nothing is
// retried.
type Gate struct {
	auth     TokenAuthenticator
	registry *Registry
	now      func() time.Time
}

// NewGate builds a gate over the given authenticator and registry. A nil
// clock means time.Now.
func NewGate(auth TokenAuthenticator, registry *Registry, now func() time.Time) *Gate {
	if now == nil {
		now = time.Now
	}
	return &Gate{
		auth:     auth,
		registry: registry,
		now:      now,
	}
}

// Authorize validates rawToken and evaluates the named policy against its
// claims. An empty rawToken or any validation failure yields
// ErrUnauthenticated; an unsatisfied requirement yields a *DeniedError.
func (g *Gate) Authorize(rawToken, policy string) ([]domain.Claim, error) {
	if rawToken == "" {
		return nil, ErrUnauthenticated
	}

	now := g.now()
	claims, err := g.auth.Authenticate(rawToken, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	if err := g.registry.Evaluate(policy, claims, now); err != nil {
		return nil, err
	}
	return claims, nil
}
