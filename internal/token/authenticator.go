package token

import (
	"errors"
	"slices"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"github.com/policyauth/policy-auth-api/internal/domain"
)

// Authenticator validates serialized tokens and recovers the embedded claim
// set. It is purely functional: no state is touched after construction, so
// concurrent use needs no locking.
type Authenticator struct {
	issuer   string
	audience string
	jwks     keyfunc.Keyfunc
}

func NewAuthenticator(cfg Config) *Authenticator {
	return &Authenticator{
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		jwks:     NewStaticKeyfunc(cfg.Key),
	}
}

// Authenticate checks signature, issuer, audience and lifetime in that
// order and returns the claim set unchanged. Lifetime checks use the caller's
// clock with zero leeway: the token is invalid from the expiry instant on.
func (a *Authenticator) Authenticate(tokenString string, now time.Time) ([]domain.Claim, error) {
	payload := &payloadClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, payload, a.jwks.Keyfunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, ErrMalformed
		}
		return nil, ErrSignatureInvalid
	}
	if !parsed.Valid {
		return nil, ErrSignatureInvalid
	}

	if payload.Issuer != a.issuer {
		return nil, ErrIssuerMismatch
	}
	if !slices.Contains(payload.Audience, a.audience) {
		return nil, ErrAudienceMismatch
	}

	if payload.ExpiresAt == nil {
		return nil, ErrMalformed
	}
	if !now.Before(payload.ExpiresAt.Time) {
		return nil, ErrExpired
	}
	if payload.IssuedAt != nil && now.Before(payload.IssuedAt.Time) {
		return nil, ErrNotYetValid
	}

	return fromWire(payload.Claims), nil
}
