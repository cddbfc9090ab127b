// Package notify delivers the operator notification for new waitlist
// signups. The channel is a side effect of intake: its failure is
// reported to the caller but never unwinds a stored signup.
package notify

import (
	"fmt"

	"github.com/osteele/liquid"

	"github.com/tipofmy/portal/internal/waitlist"
)

const notificationHTML = `<h1>New Signup for {{ category | capitalize }}</h1>
<p><strong>Email:</strong> {{ email }}</p>
<p><strong>Category:</strong> {{ category }}</p>
<p><strong>User Description:</strong> {{ query }}</p>
<hr />
<p>This message was sent from the TipOfMy portal.</p>`

const notificationText = `New signup for {{ category }}
Email: {{ email }}
Description: {{ query }}`

// renderer turns a signup into the operator email. Templates are parsed
// once at construction.
type renderer struct {
	html *liquid.Template
	text *liquid.Template
}

func newRenderer() (*renderer, error) {
	engine := liquid.NewEngine()

	html, err := engine.ParseString(notificationHTML)
	if err != nil {
		return nil, fmt.Errorf("parse html template: %w", err)
	}
	text, err := engine.ParseString(notificationText)
	if err != nil {
		return nil, fmt.Errorf("parse text template: %w", err)
	}
	return &renderer{html: html, text: text}, nil
}

// Subject returns the notification subject for a signup.
func (r *renderer) Subject(s *waitlist.Signup) string {
	return fmt.Sprintf("New Waitlist Signup: %s", s.Category)
}

// Render produces the HTML and plain-text bodies for a signup.
func (r *renderer) Render(s *waitlist.Signup) (html, text string, err error) {
	query := "None"
	if s.Query != nil {
		query = *s.Query
	}
	bindings := map[string]interface{}{
		"email":    s.Email,
		"category": string(s.Category),
		"query":    query,
	}

	html, err = r.html.RenderString(bindings)
	if err != nil {
		return "", "", fmt.Errorf("render html body: %w", err)
	}
	text, err = r.text.RenderString(bindings)
	if err != nil {
		return "", "", fmt.Errorf("render text body: %w", err)
	}
	return html, text, nil
}
