package http

import (
	"net/http/httptest"
	"testing"

	"github.com/policyauth/policy-auth-api/internal/domain"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "no header", header: "", want: ""},
		{name: "bearer token", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "wrong scheme", header: "Basic dXNlcjpwdw==", want: ""},
		{name: "missing space", header: "Bearerabc", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/home", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if got := bearerToken(req); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestClaimsFromContextRoundTrip(t *testing.T) {
	claims := []domain.Claim{{Type: domain.ClaimRole, Value: "admin"}}
	ctx := withClaims(t.Context(), claims)

	got, ok := ClaimsFromContext(ctx)
	if !ok {
		t.Fatal("expected claims in context")
	}
	if len(got) != 1 || got[0].Value != "admin" {
		t.Fatalf("unexpected claims: %v", got)
	}

	if _, ok := ClaimsFromContext(t.Context()); ok {
		t.Fatal("expected no claims in a fresh context")
	}
}
