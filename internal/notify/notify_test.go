package notify

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tipofmy/portal/internal/pkg/logger"
	"github.com/tipofmy/portal/internal/waitlist"
)

func testSignup(query string) *waitlist.Signup {
	s := &waitlist.Signup{
		Email:    "a@b.com",
		Category: waitlist.CategoryBooks,
		Source:   "tipofmy",
	}
	if query != "" {
		s.Query = &query
	}
	return s
}

func TestRendererSubject(t *testing.T) {
	r, err := newRenderer()
	require.NoError(t, err)

	assert.Equal(t, "New Waitlist Signup: books", r.Subject(testSignup("")))
}

func TestRendererRender(t *testing.T) {
	r, err := newRenderer()
	require.NoError(t, err)

	html, text, err := r.Render(testSignup("a wizard boy at a school"))
	require.NoError(t, err)

	assert.Contains(t, html, "New Signup for Books")
	assert.Contains(t, html, "a@b.com")
	assert.Contains(t, html, "a wizard boy at a school")
	assert.Contains(t, text, "New signup for books")
	assert.Contains(t, text, "a@b.com")
}

func TestRendererRenderWithoutQuery(t *testing.T) {
	r, err := newRenderer()
	require.NoError(t, err)

	html, _, err := r.Render(testSignup(""))
	require.NoError(t, err)
	assert.Contains(t, html, "None")
}

func TestSimulatedNotifier(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })

	n, err := NewSimulatedNotifier("ops@tipofmy.com", 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "simulated", n.Mode())

	err = n.Notify(context.Background(), testSignup("space pirates"))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "simulated operator email")
	// The logger masks addresses, including the operator's.
	assert.Contains(t, out, "op***@tipofmy.com")
	assert.Contains(t, out, "New Waitlist Signup: books")
}

func TestSimulatedNotifierHonorsCancellation(t *testing.T) {
	n, err := NewSimulatedNotifier("ops@tipofmy.com", 5*time.Second)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = n.Notify(ctx, testSignup(""))
	assert.ErrorIs(t, err, context.Canceled)
}
