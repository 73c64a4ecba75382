package domain

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultAllowedRoles are the roles registration accepts when no explicit
// whitelist is configured. The declared role is attached to the account as a
// claim verbatim, so the whitelist is the only check between a registrant and
// an admin role.
var DefaultAllowedRoles = []string{"admin", "manager", "user"}

type accountService struct {
	store        CredentialStore
	hasher       PasswordHasher
	policy       PasswordPolicy
	issuer       TokenIssuer
	allowedRoles []string
	now          func() time.Time
}

// NewAccountService wires the registration and login flows. A nil clock
// means time.Now; an empty role whitelist falls back to DefaultAllowedRoles.
func NewAccountService(store CredentialStore, hasher PasswordHasher, policy PasswordPolicy, issuer TokenIssuer, allowedRoles []string, now func() time.Time) AccountService {
	if len(allowedRoles) == 0 {
		allowedRoles = DefaultAllowedRoles
	}
	if now == nil {
		now = time.Now
	}
	return &accountService{
		store:        store,
		hasher:       hasher,
		policy:       policy,
		issuer:       issuer,
		allowedRoles: allowedRoles,
		now:          now,
	}
}

func (s *accountService) Register(ctx context.Context, input RegisterInput) error {
	dob, verr := s.validate(input)
	if verr != nil {
		return verr
	}

	_, err := s.store.FindByEmail(ctx, input.Email)
	if err == nil {
		return fmt.Errorf("%w: user already exists", ErrConflict)
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: hash,
		DateOfBirth:  dob,
	}

	_, err = s.store.Create(ctx, user, user.Claims(input.Role))
	return err
}

func (s *accountService) Login(ctx context.Context, input LoginInput) (string, error) {
	user, err := s.store.FindByEmail(ctx, input.Email)
	if err != nil {
		return "", err
	}

	ok, err := s.hasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	claims, err := s.store.ClaimsByUserID(ctx, user.ID)
	if err != nil {
		return "", err
	}

	return s.issuer.Issue(claims, s.now())
}

func (s *accountService) validate(input RegisterInput) (time.Time, error) {
	var problems []string

	if input.Email == "" {
		problems = append(problems, "Email is required.")
	} else if !strings.Contains(input.Email, "@") {
		problems = append(problems, "Email is not a valid email address.")
	}

	if input.Role == "" {
		problems = append(problems, "Role is required.")
	} else if !slices.Contains(s.allowedRoles, input.Role) {
		problems = append(problems, fmt.Sprintf("Role %q is not permitted for registration.", input.Role))
	}

	var dob time.Time
	if input.DateOfBirth == "" {
		problems = append(problems, "DateOfBirth is required.")
	} else {
		parsed, err := time.Parse(time.DateOnly, input.DateOfBirth)
		if err != nil {
			problems = append(problems, "DateOfBirth must use the yyyy-MM-dd format.")
		} else {
			dob = parsed
		}
	}

	if input.Password == "" {
		problems = append(problems, "Password is required.")
	} else if s.policy != nil {
		problems = append(problems, s.policy.Validate(input.Password)...)
	}

	if len(problems) > 0 {
		return time.Time{}, &ValidationError{Descriptions: problems}
	}
	return dob, nil
}
