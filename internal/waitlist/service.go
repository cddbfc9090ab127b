package waitlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tipofmy/portal/internal/pkg/logger"
)

// Store persists signup records. Insert returns ErrDuplicateSignup when
// a row for the same (email, category) already exists.
type Store interface {
	Insert(ctx context.Context, signup *Signup) error
}

// Notifier delivers the operator notification for a newly stored signup.
type Notifier interface {
	Notify(ctx context.Context, signup *Signup) error
	Mode() string
}

// Service validates, persists and announces waitlist signups. It holds
// no mutable state; every submission is handled independently.
type Service struct {
	store    Store
	notifier Notifier
	source   string
	now      func() time.Time
}

// NewService creates the intake service. source tags every stored row
// with the intake channel it came through.
func NewService(store Store, notifier Notifier, source string) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		source:   source,
		now:      time.Now,
	}
}

// Submit runs one intake submission end to end: validate, normalize,
// insert, notify. Validation failures return ErrInvalidEmail or
// ErrInvalidCategory before any I/O. A duplicate insert is reported as
// success with Deduped set and skips the notification. The notification
// outcome is carried in the result and never fails the submission.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	email := NormalizeEmail(req.Email)
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}

	category, err := ParseCategory(req.Category)
	if err != nil {
		return nil, err
	}

	signup := &Signup{
		ID:        uuid.New(),
		Email:     email,
		Category:  category,
		Query:     NormalizeQuery(req.Query),
		Source:    s.source,
		CreatedAt: s.now().UTC(),
	}
	if req.UTM != nil {
		signup.UTMSource = optional(req.UTM.Source)
		signup.UTMMedium = optional(req.UTM.Medium)
		signup.UTMCampaign = optional(req.UTM.Campaign)
	}

	if err := s.store.Insert(ctx, signup); err != nil {
		if errors.Is(err, ErrDuplicateSignup) {
			logger.Debug("signup deduped", "email", email, "category", string(category))
			return &SubmitResult{Deduped: true}, nil
		}
		return nil, fmt.Errorf("insert signup: %w", err)
	}

	result := &SubmitResult{}
	if err := s.notifier.Notify(ctx, signup); err != nil {
		// Stored but not announced. The record stands; the caller learns
		// about the failed notification through the result.
		logger.Error("operator notification failed",
			"email", email, "category", string(category), "mode", s.notifier.Mode(), "err", err.Error())
		result.NotifyErr = err
	} else {
		result.Notified = true
	}

	logger.Info("signup stored",
		"email", email, "category", string(category), "deduped", false, "notified", result.Notified)
	return result, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
