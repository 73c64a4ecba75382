package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/policyauth/policy-auth-api/internal/domain"
)

// DefaultTTL is how long an issued token stays valid.
const DefaultTTL = 24 * time.Hour

type Config struct {
	Key      []byte
	Issuer   string
	Audience string
	TTL      time.Duration
}

// payloadClaims is the wire shape of the token payload: the registered
// iss/aud/iat/exp fields plus the ordered claim array.
type payloadClaims struct {
	jwt.RegisteredClaims
	Claims []wireClaim `json:"claims"`
}

type wireClaim struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Issuer signs claim sets into compact HMAC-SHA-256 JWTs.
type Issuer struct {
	cfg Config
}

func NewIssuer(cfg Config) *Issuer {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	return &Issuer{cfg: cfg}
}

func (i *Issuer) Issue(claims []domain.Claim, now time.Time) (string, error) {
	payload := payloadClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.cfg.Issuer,
			Audience:  jwt.ClaimStrings{i.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.cfg.TTL)),
		},
		Claims: toWire(claims),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	return t.SignedString(i.cfg.Key)
}

func toWire(claims []domain.Claim) []wireClaim {
	out := make([]wireClaim, 0, len(claims))
	for _, c := range claims {
		out = append(out, wireClaim{Type: string(c.Type), Value: c.Value})
	}
	return out
}

func fromWire(claims []wireClaim) []domain.Claim {
	out := make([]domain.Claim, 0, len(claims))
	for _, c := range claims {
		out = append(out, domain.Claim{Type: domain.ClaimType(c.Type), Value: c.Value})
	}
	return out
}
