// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spr311/pinboard/internal/domain/model"
)

// ViewDependencies defines the interface for view ingestion dependencies.
type ViewDependencies interface {
	SeenAndRecord(ctx context.Context, id string) bool
	Unrecord(ctx context.Context, id string)
	EnqueueView(ctx context.Context, e model.ViewEvent) bool
}

// ViewsHandler handles view ingestion requests.
type ViewsHandler struct {
	deps ViewDependencies
}

// NewViewsHandler creates a new views handler.
func NewViewsHandler(deps ViewDependencies) *ViewsHandler {
	return &ViewsHandler{deps: deps}
}

// HandlePostView handles POST /views requests.
func (h *ViewsHandler) HandlePostView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req viewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}

	event := model.ViewEvent{
		EventID:  dedupeKey(req),
		UserID:   req.UserID,
		PinID:    req.PinID,
		ViewedAt: viewedAt(req),
	}

	// Idempotency check - mark as seen first
	if h.deps.SeenAndRecord(r.Context(), event.EventID) {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
		return
	}

	// Try to enqueue for async recording
	if ok := h.deps.EnqueueView(r.Context(), event); !ok {
		// Rollback the "seen" status since enqueue failed
		h.deps.Unrecord(r.Context(), event.EventID)
		writeError(w, http.StatusTooManyRequests, "backpressure", ErrBackpressure)
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", Duplicate: false})
}

// dedupeKey prefers the client event id; without one, the user/pin pair is
// the natural idempotency key since the store upserts views anyway.
func dedupeKey(req viewRequest) string {
	if id := strings.TrimSpace(req.EventID); id != "" {
		return id
	}
	return fmt.Sprintf("%d:%d", req.UserID, req.PinID)
}

func viewedAt(req viewRequest) time.Time {
	if ts := strings.TrimSpace(req.TS); ts != "" {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			return t
		}
	}
	return time.Now().UTC()
}
