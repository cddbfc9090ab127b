package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tipofmy/portal/internal/waitlist"
)

// SignupService is the intake surface the handler needs.
type SignupService interface {
	Submit(ctx context.Context, req waitlist.SubmitRequest) (*waitlist.SubmitResult, error)
}

// WaitlistHandler serves POST /api/waitlist.
type WaitlistHandler struct {
	svc SignupService
}

// NewWaitlistHandler creates the intake handler.
func NewWaitlistHandler(svc SignupService) *WaitlistHandler {
	return &WaitlistHandler{svc: svc}
}

type waitlistRequest struct {
	Email    string          `json:"email"`
	Category string          `json:"category"`
	Query    json.RawMessage `json:"query"`
	UTM      *utmPayload     `json:"utm"`
}

type utmPayload struct {
	Source   string `json:"source"`
	Medium   string `json:"medium"`
	Campaign string `json:"campaign"`
}

// waitlistResponse keeps the persistence outcome (ok, deduped) separate
// from the notification outcome (notified, notify_error): a stored
// signup whose operator email failed is still a 200.
type waitlistResponse struct {
	OK          bool   `json:"ok"`
	Deduped     bool   `json:"deduped,omitempty"`
	Notified    bool   `json:"notified"`
	NotifyError string `json:"notify_error,omitempty"`
}

// HandleSubmit validates and persists one waitlist signup.
//
//	POST /api/waitlist
func (h *WaitlistHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req waitlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Malformed bodies are caught at the boundary and reported
		// generically, matching the catch-all contract.
		respondSafeError(w, http.StatusInternalServerError, err, "server_error")
		return
	}

	submitReq := waitlist.SubmitRequest{
		Email:    req.Email,
		Category: req.Category,
		Query:    queryString(req.Query),
	}
	if req.UTM != nil {
		submitReq.UTM = &waitlist.UTM{
			Source:   req.UTM.Source,
			Medium:   req.UTM.Medium,
			Campaign: req.UTM.Campaign,
		}
	}

	result, err := h.svc.Submit(r.Context(), submitReq)
	switch {
	case errors.Is(err, waitlist.ErrInvalidEmail):
		respondError(w, http.StatusBadRequest, "invalid_email")
		return
	case errors.Is(err, waitlist.ErrInvalidCategory):
		respondError(w, http.StatusBadRequest, "invalid_category")
		return
	case err != nil:
		respondSafeError(w, http.StatusInternalServerError, err, "db_error")
		return
	}

	resp := waitlistResponse{OK: true, Deduped: result.Deduped, Notified: result.Notified}
	if result.NotifyErr != nil {
		resp.NotifyError = "notification_failed"
	}
	respondJSON(w, http.StatusOK, resp)
}

// queryString extracts the optional query field. Non-string values
// (numbers, objects) are treated as absent rather than rejected.
func queryString(raw json.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}
