package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/policyauth/policy-auth-api/internal/authz"
)

// requirePolicy gates a handler behind the named policy. A missing or
// invalid token yields 401 without disclosing which check failed; a valid
// token that does not satisfy the policy yields 403.
func (a *API) requirePolicy(policy string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims, err := a.Gate.Authorize(bearerToken(r), policy)
		if err != nil {
			var denied *authz.DeniedError
			if errors.As(err, &denied) {
				a.Logger.DebugContext(ctx, "policy denied", "policy", denied.Policy, "requirement", denied.Requirement)
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			a.Logger.DebugContext(ctx, "unauthenticated request", "policy", policy, "err", err.Error())
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(withClaims(ctx, claims)))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
