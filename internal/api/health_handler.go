package api

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"
)

// HealthStatus represents the overall health of the service.
type HealthStatus struct {
	Status string                    `json:"status"` // "healthy", "degraded"
	Uptime string                    `json:"uptime"`
	Checks map[string]ComponentCheck `json:"checks"`
}

// ComponentCheck represents the health of a single component.
type ComponentCheck struct {
	Status  string `json:"status"` // "up", "down", "not_configured"
	Latency string `json:"latency,omitempty"`
	Message string `json:"message,omitempty"`
}

// HealthChecker reports on the service's two dependencies: the signup
// database and the notification channel.
type HealthChecker struct {
	db           *sql.DB
	notifierMode string
	startTime    time.Time
}

// NewHealthChecker creates a HealthChecker. db may be nil in tests.
func NewHealthChecker(db *sql.DB, notifierMode string) *HealthChecker {
	return &HealthChecker{db: db, notifierMode: notifierMode, startTime: time.Now()}
}

// HandleHealth returns the health of all components. Always 200; the
// status field conveys health.
//
//	GET /health
func (hc *HealthChecker) HandleHealth(w http.ResponseWriter, r *http.Request) {
	checks := map[string]ComponentCheck{
		"notifier": {Status: "up", Message: hc.notifierMode},
	}

	overall := "healthy"
	if hc.db == nil {
		checks["database"] = ComponentCheck{Status: "not_configured"}
		overall = "degraded"
	} else {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		start := time.Now()
		if err := hc.db.PingContext(ctx); err != nil {
			checks["database"] = ComponentCheck{Status: "down", Message: "ping failed"}
			overall = "degraded"
		} else {
			checks["database"] = ComponentCheck{Status: "up", Latency: time.Since(start).Round(time.Millisecond).String()}
		}
	}

	respondJSON(w, http.StatusOK, HealthStatus{
		Status: overall,
		Uptime: formatUptime(time.Since(hc.startTime)),
		Checks: checks,
	})
}

// HandleLiveness always returns 200 while the process runs.
//
//	GET /health/live
func (hc *HealthChecker) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

func formatUptime(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%dh%dm%ds", h, m, s)
}
