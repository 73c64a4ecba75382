package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/policyauth/policy-auth-api/internal/domain"
)

// UserStore is the Postgres-backed credential store.
type UserStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, date_of_birth, created_at
		 FROM users WHERE lower(email) = lower($1)`, email)

	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.DateOfBirth, &user.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}

	return user, nil
}

// Create inserts the user and its claims in one transaction; a failed claim
// insert rolls the user back.
func (s *UserStore) Create(ctx context.Context, user domain.User, claims []domain.Claim) (domain.User, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx,
		`INSERT INTO users (id, email, password_hash, date_of_birth)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, email, password_hash, date_of_birth, created_at`,
		user.ID, user.Email, user.PasswordHash, user.DateOfBirth)

	var created domain.User
	err = row.Scan(&created.ID, &created.Email, &created.PasswordHash, &created.DateOfBirth, &created.CreatedAt)
	if err != nil {
		if isUniqueEmailViolation(err) {
			return domain.User{}, domain.ErrConflict
		}
		return domain.User{}, err
	}

	for _, c := range claims {
		_, err = tx.Exec(ctx,
			`INSERT INTO user_claims (user_id, claim_type, claim_value) VALUES ($1, $2, $3)`,
			created.ID, string(c.Type), c.Value)
		if err != nil {
			return domain.User{}, fmt.Errorf("insert claim %s: %w", c.Type, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.User{}, fmt.Errorf("commit tx: %w", err)
	}

	return created, nil
}

func (s *UserStore) ClaimsByUserID(ctx context.Context, id uuid.UUID) ([]domain.Claim, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT claim_type, claim_value FROM user_claims WHERE user_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []domain.Claim
	for rows.Next() {
		var claimType, claimValue string
		if err := rows.Scan(&claimType, &claimValue); err != nil {
			return nil, err
		}
		claims = append(claims, domain.Claim{Type: domain.ClaimType(claimType), Value: claimValue})
	}

	return claims, rows.Err()
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func isUniqueEmailViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.ConstraintName == "unique_email"
}
