package domain

import (
	"context"

	"github.com/google/uuid"
)

// CredentialStore is the system of record for user identities, password
// hashes and the claims attached at registration.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (User, error)
	// Create persists the user together with its claims. The write is
	// atomic: either the user and every claim exist afterwards, or nothing
	// does.
	Create(ctx context.Context, user User, claims []Claim) (User, error)
	ClaimsByUserID(ctx context.Context, id uuid.UUID) ([]Claim, error)
}
