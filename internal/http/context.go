package http

import (
	"context"

	"github.com/policyauth/policy-auth-api/internal/domain"
)

type claimsContextKey struct{}

func withClaims(ctx context.Context, claims []domain.Claim) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// ClaimsFromContext returns the claim set the gate attached for an
// authorized request.
func ClaimsFromContext(ctx context.Context) ([]domain.Claim, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).([]domain.Claim)
	return claims, ok
}
