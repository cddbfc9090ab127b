// Package waitlist implements the signup intake flow: validation,
// normalization, persistence and the operator notification side channel.
package waitlist

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Category is a not-yet-live search vertical a visitor can join the
// waitlist for. Movies is live and has its own redirect flow, so it is
// never a valid waitlist category.
type Category string

const (
	CategoryBooks Category = "books"
	CategoryGames Category = "games"
	CategoryMusic Category = "music"
)

// Categories lists the accepted waitlist categories.
func Categories() []Category {
	return []Category{CategoryBooks, CategoryGames, CategoryMusic}
}

var (
	// ErrInvalidEmail is returned when the submitted email is empty, too
	// long, or not shaped like local@domain.tld.
	ErrInvalidEmail = errors.New("invalid email")

	// ErrInvalidCategory is returned when the category is not books,
	// games, or music.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrDuplicateSignup is returned by stores when a row for the same
	// (email, category) already exists. Callers treat it as success.
	ErrDuplicateSignup = errors.New("duplicate signup")
)

// Signup is a persisted waitlist record. Rows are created on first valid
// submission for an (email, category) pair and never updated or deleted.
type Signup struct {
	ID          uuid.UUID
	Email       string
	Category    Category
	Query       *string
	Source      string
	UTMSource   *string
	UTMMedium   *string
	UTMCampaign *string
	CreatedAt   time.Time
}

// UTM carries passthrough attribution fields from the intake request.
type UTM struct {
	Source   string
	Medium   string
	Campaign string
}

// SubmitRequest is one intake submission before validation.
type SubmitRequest struct {
	Email    string
	Category string
	Query    *string
	UTM      *UTM
}

// SubmitResult reports what happened to a valid submission. Persistence
// and notification outcomes are deliberately separate: a signup that was
// stored but whose operator email failed is still a stored signup.
type SubmitResult struct {
	Deduped   bool
	Notified  bool
	NotifyErr error
}
