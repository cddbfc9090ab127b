package notify

import (
	"context"
	"time"

	"github.com/tipofmy/portal/internal/pkg/logger"
	"github.com/tipofmy/portal/internal/waitlist"
)

// SimulatedNotifier logs the would-be operator email instead of sending
// it, after an artificial delay so the UI's busy state is exercised in
// local development. Selected explicitly via notify.mode=simulated.
type SimulatedNotifier struct {
	operator string
	delay    time.Duration
	renderer *renderer
}

// NewSimulatedNotifier creates a logging notifier.
func NewSimulatedNotifier(operator string, delay time.Duration) (*SimulatedNotifier, error) {
	r, err := newRenderer()
	if err != nil {
		return nil, err
	}
	return &SimulatedNotifier{operator: operator, delay: delay, renderer: r}, nil
}

// Mode identifies this notifier in logs and health output.
func (n *SimulatedNotifier) Mode() string { return "simulated" }

// Notify logs the rendered notification. Honors context cancellation
// during the artificial delay.
func (n *SimulatedNotifier) Notify(ctx context.Context, signup *waitlist.Signup) error {
	_, text, err := n.renderer.Render(signup)
	if err != nil {
		return err
	}

	if n.delay > 0 {
		timer := time.NewTimer(n.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	logger.Info("simulated operator email",
		"to", n.operator,
		"subject", n.renderer.Subject(signup),
		"body", text)
	return nil
}
