// Package postgres implements waitlist persistence against PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/tipofmy/portal/internal/waitlist"
)

// uniqueViolation is the Postgres error code raised when an insert hits
// the (email, category) unique constraint.
const uniqueViolation = "23505"

// SignupRepo implements waitlist.Store against PostgreSQL.
type SignupRepo struct{ db *sql.DB }

// NewSignupRepo creates a Postgres-backed signup repository.
func NewSignupRepo(db *sql.DB) *SignupRepo { return &SignupRepo{db: db} }

// Insert stores one signup row. A repeat (email, category) pair returns
// waitlist.ErrDuplicateSignup; the uniqueness check is delegated
// entirely to the database constraint, so concurrent submissions race
// safely.
func (r *SignupRepo) Insert(ctx context.Context, s *waitlist.Signup) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO waitlist_signups (id, email, category, query, source, utm_source, utm_medium, utm_campaign, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, s.ID, s.Email, string(s.Category), s.Query, s.Source, s.UTMSource, s.UTMMedium, s.UTMCampaign, s.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return waitlist.ErrDuplicateSignup
		}
		return fmt.Errorf("insert waitlist signup: %w", err)
	}
	return nil
}

// CountByCategory returns the number of signups per category, for the
// health endpoint and operator tooling.
func (r *SignupRepo) CountByCategory(ctx context.Context) (map[waitlist.Category]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, COUNT(*) FROM waitlist_signups GROUP BY category`,
	)
	if err != nil {
		return nil, fmt.Errorf("count signups: %w", err)
	}
	defer rows.Close()

	counts := make(map[waitlist.Category]int)
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("scan signup count: %w", err)
		}
		counts[waitlist.Category(category)] = n
	}
	return counts, rows.Err()
}
