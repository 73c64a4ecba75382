package db

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/policyauth/policy-auth-api/internal/domain"
)

// MemoryStore keeps users and claims in process memory. It exists for tests
// and local runs without a database.
type MemoryStore struct {
	mu      sync.RWMutex
	byEmail map[string]domain.User
	claims  map[uuid.UUID][]domain.Claim
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byEmail: make(map[string]domain.User),
		claims:  make(map[uuid.UUID][]domain.Claim),
	}
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return user, nil
}

func (s *MemoryStore) Create(_ context.Context, user domain.User, claims []domain.Claim) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalizeEmail(user.Email)
	if _, exists := s.byEmail[key]; exists {
		return domain.User{}, domain.ErrConflict
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	s.byEmail[key] = user
	s.claims[user.ID] = append([]domain.Claim(nil), claims...)
	return user, nil
}

func (s *MemoryStore) ClaimsByUserID(_ context.Context, id uuid.UUID) ([]domain.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	claims, ok := s.claims[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]domain.Claim(nil), claims...), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
