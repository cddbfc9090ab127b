package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tipofmy/portal/internal/waitlist"
)

func jsonBody(s string) io.Reader { return bytes.NewBufferString(s) }

// panickyService trips the boundary recoverer.
type panickyService struct{}

func (panickyService) Submit(ctx context.Context, req waitlist.SubmitRequest) (*waitlist.SubmitResult, error) {
	panic("boom")
}

func TestCORSPreflight(t *testing.T) {
	handler := newTestRouter(&fakeStore{}, &fakeNotifier{})

	req := httptest.NewRequest(http.MethodOptions, "/api/waitlist", nil)
	req.Header.Set("Origin", "https://tipofmy.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "content-type, apikey")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
	assert.Empty(t, rec.Body.String())
}

func TestCORSHeadersOnPost(t *testing.T) {
	handler := newTestRouter(&fakeStore{}, &fakeNotifier{})

	req := httptest.NewRequest(http.MethodPost, "/api/waitlist",
		jsonBody(`{"email":"a@b.com","category":"books"}`))
	req.Header.Set("Origin", "https://elsewhere.example")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimitExceeded(t *testing.T) {
	limited := RateLimit(1, 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	var last int
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/waitlist", nil)
		req.RemoteAddr = "203.0.113.9:4567"
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		last = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)

	// A different client is unaffected.
	req := httptest.NewRequest(http.MethodPost, "/api/waitlist", nil)
	req.RemoteAddr = "198.51.100.7:4567"
	rec := httptest.NewRecorder()
	limited.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	handler := newTestRouter(&fakeStore{}, &fakeNotifier{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "degraded", status.Status, "no database configured in tests")
	assert.Equal(t, "not_configured", status.Checks["database"].Status)
	assert.Equal(t, "fake", status.Checks["notifier"].Message)

	req = httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPanicRecoveredAsServerError(t *testing.T) {
	r := SetupRoutes(NewWaitlistHandler(panickyService{}), NewHealthChecker(nil, "fake"), nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/waitlist",
		jsonBody(`{"email":"a@b.com","category":"books"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "server_error", decodeBody(t, rec)["error"])
}
