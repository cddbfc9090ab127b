package waitlist

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// MaxEmailLength is the RFC 3696 ceiling for an address.
	MaxEmailLength = 320

	// MaxQueryLength is the storage cap for the optional free-text query.
	MaxQueryLength = 500
)

// emailShape is a deliberately loose local@domain.tld check: no
// whitespace or extra @ in either part, and at least one dot in the
// domain. Real validation happens when the operator replies.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail trims and lowercases an address for storage and
// comparison. The (email, category) uniqueness constraint works on the
// normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks a normalized address. Returns ErrInvalidEmail
// when it is empty, longer than MaxEmailLength, or fails the shape check.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: empty", ErrInvalidEmail)
	}
	if len(email) > MaxEmailLength {
		return fmt.Errorf("%w: %d chars exceeds max %d", ErrInvalidEmail, len(email), MaxEmailLength)
	}
	if !emailShape.MatchString(email) {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return nil
}

// ParseCategory validates the category field against the accepted
// waitlist verticals. "movies" is rejected here: the live tab redirects
// and never reaches the intake handler.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryBooks, CategoryGames, CategoryMusic:
		return Category(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// NormalizeQuery trims the optional free-text query and truncates it to
// MaxQueryLength. Returns nil when the query is absent or empty after
// trimming, so absent and blank submissions store the same way.
func NormalizeQuery(query *string) *string {
	if query == nil {
		return nil
	}
	q := strings.TrimSpace(*query)
	if q == "" {
		return nil
	}
	// Truncate on runes, not bytes, so a multibyte character at the
	// boundary is dropped whole.
	if runes := []rune(q); len(runes) > MaxQueryLength {
		q = string(runes[:MaxQueryLength])
	}
	return &q
}
