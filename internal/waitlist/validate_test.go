package waitlist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"simple", "a@b.com", false},
		{"subdomain", "user@mail.example.co.uk", false},
		{"plus tag", "user+tag@example.com", false},
		{"empty", "", true},
		{"no at", "bad-email", true},
		{"no domain dot", "user@localhost", true},
		{"two ats", "a@b@c.com", true},
		{"space in local", "a b@c.com", true},
		{"space in domain", "a@b c.com", true},
		{"missing local", "@example.com", true},
		{"missing tld", "user@example.", true},
		{"at max length", strings.Repeat("a", 308) + "@example.com", false},
		{"over max length", strings.Repeat("a", 309) + "@example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidEmail)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", NormalizeEmail("  USER@Example.COM  "))
	assert.Equal(t, "a@b.com", NormalizeEmail("a@b.com"))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	for _, bad := range []string{"movies", "cooking", "", "BOOKS"} {
		_, err := ParseCategory(bad)
		assert.ErrorIs(t, err, ErrInvalidCategory, "category %q", bad)
	}
}

func TestNormalizeQuery(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		assert.Nil(t, NormalizeQuery(nil))
	})

	t.Run("blank becomes absent", func(t *testing.T) {
		q := "   "
		assert.Nil(t, NormalizeQuery(&q))
	})

	t.Run("trimmed", func(t *testing.T) {
		q := "  a wizard boy at a school  "
		got := NormalizeQuery(&q)
		require.NotNil(t, got)
		assert.Equal(t, "a wizard boy at a school", *got)
	})

	t.Run("truncated to 500 chars", func(t *testing.T) {
		q := strings.Repeat("x", 650)
		got := NormalizeQuery(&q)
		require.NotNil(t, got)
		assert.Len(t, *got, 500)
	})

	t.Run("truncation respects runes", func(t *testing.T) {
		q := strings.Repeat("é", 501)
		got := NormalizeQuery(&q)
		require.NotNil(t, got)
		assert.Equal(t, 500, len([]rune(*got)))
	})
}
