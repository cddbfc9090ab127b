package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMovieQuery(t *testing.T) {
	assert.Equal(t, "the one with the boat", NormalizeMovieQuery("  the one  with \t the boat "))
	assert.Equal(t, "", NormalizeMovieQuery("   \n\t  "))
}

func TestValidMovieQuery(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"hi", false},
		{"a b", false},
		{"abcdef", false}, // long enough, one word
		{"a b c", false},  // three words, too short
		{"find that movie now", true},
		{"man relives same day", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidMovieQuery(tt.query), "query %q", tt.query)
	}
}

func TestMovieRedirectURL(t *testing.T) {
	got, err := MovieRedirectURL("https://findbyvibe.com", "man relives same day")
	require.NoError(t, err)

	assert.Contains(t, got, "https://findbyvibe.com/find-movie-by-plot?")
	assert.Contains(t, got, "q=man+relives+same+day")
	assert.Contains(t, got, "utm_source=tipofmy")
	assert.Contains(t, got, "utm_medium=referral")
	assert.Contains(t, got, "utm_campaign=portal")
}

func TestPageRenders(t *testing.T) {
	page, err := NewPage("https://findbyvibe.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	page.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "TipOfMy")
	for _, id := range []string{"movies", "books", "games", "music"} {
		assert.Contains(t, body, `data-tab="`+id+`"`, "tab %s", id)
	}
	assert.Contains(t, body, `data-redirect-base="https://findbyvibe.com/find-movie-by-plot"`)
	assert.Contains(t, body, "/static/app.js")
}

func TestStaticHandlerServesAssets(t *testing.T) {
	h := StaticHandler()

	for _, path := range []string{"/static/app.js", "/static/style.css"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "asset %s", path)
		assert.NotEmpty(t, rec.Body.String())
	}
}
