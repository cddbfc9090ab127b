// Package web serves the TipOfMy landing page and owns the movie-query
// guard rules the page's script enforces before redirecting to the
// external search service.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/tipofmy/portal/internal/pkg/logger"
)

//go:embed templates/index.html.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	// MinMovieQueryChars is the minimum normalized query length for the
	// movie redirect.
	MinMovieQueryChars = 6

	// MinMovieQueryWords is the minimum word count for the movie redirect.
	MinMovieQueryWords = 3

	redirectPath = "/find-movie-by-plot"
)

// NormalizeMovieQuery trims the query and collapses internal runs of
// whitespace to single spaces.
func NormalizeMovieQuery(q string) string {
	return strings.Join(strings.Fields(q), " ")
}

// ValidMovieQuery reports whether a normalized query is specific enough
// to redirect: at least MinMovieQueryChars characters and
// MinMovieQueryWords space-separated words.
func ValidMovieQuery(normalized string) bool {
	if len([]rune(normalized)) < MinMovieQueryChars {
		return false
	}
	return len(strings.Fields(normalized)) >= MinMovieQueryWords
}

// MovieRedirectURL builds the external search URL for a normalized
// query, carrying the portal's fixed attribution parameters.
func MovieRedirectURL(base, normalized string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse redirect base: %w", err)
	}
	u.Path = redirectPath
	params := url.Values{}
	params.Set("q", normalized)
	params.Set("utm_source", "tipofmy")
	params.Set("utm_medium", "referral")
	params.Set("utm_campaign", "portal")
	u.RawQuery = params.Encode()
	return u.String(), nil
}

type tab struct {
	ID    string
	Label string
	Badge string
}

type waitlistCopy struct {
	Witty       string
	Placeholder string
}

type pageData struct {
	Tabs         []tab
	Copy         map[string]waitlistCopy
	RedirectBase string
	MinChars     int
	MinWords     int
}

// Page renders the landing page.
type Page struct {
	tmpl *template.Template
	data pageData
}

// NewPage parses the embedded template. redirectBase is the external
// search service origin, e.g. "https://findbyvibe.com".
func NewPage(redirectBase string) (*Page, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse landing template: %w", err)
	}

	return &Page{
		tmpl: tmpl,
		data: pageData{
			Tabs: []tab{
				{ID: "movies", Label: "Movies", Badge: "Live"},
				{ID: "books", Label: "Books", Badge: "Soon"},
				{ID: "games", Label: "Games", Badge: "Soon"},
				{ID: "music", Label: "Music", Badge: "Soon"},
			},
			Copy: map[string]waitlistCopy{
				"books": {
					Witty:       "Our AI is currently speed-reading the entire library of humanity.",
					Placeholder: "Describe the book's plot...",
				},
				"games": {
					Witty:       "Our AI is pressing every button in existence (for science).",
					Placeholder: "Describe the gameplay or story...",
				},
				"music": {
					Witty:       "Our AI is humming every melody it can remember.",
					Placeholder: "Describe the melody or lyrics...",
				},
			},
			RedirectBase: strings.TrimSuffix(redirectBase, "/") + redirectPath,
			MinChars:     MinMovieQueryChars,
			MinWords:     MinMovieQueryWords,
		},
	}, nil
}

// ServeHTTP renders the landing page.
func (p *Page) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := p.tmpl.Execute(w, p.data); err != nil {
		logger.Error("render landing page", "err", err.Error())
	}
}

// StaticHandler serves the embedded page assets under /static/.
func StaticHandler() http.Handler {
	return http.FileServer(http.FS(staticFS))
}
