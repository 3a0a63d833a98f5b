// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/spr311/pinboard/internal/domain/types"
)

// RecommendationDependencies defines the interface for recommendation reads.
type RecommendationDependencies interface {
	Recommend(ctx context.Context, userID int64, count int) ([]types.RecommendedPin, error)
}

// RecommendationsHandler handles recommendation requests.
type RecommendationsHandler struct {
	deps         RecommendationDependencies
	defaultCount int
	maxCount     int
}

// NewRecommendationsHandler creates a new recommendations handler.
func NewRecommendationsHandler(deps RecommendationDependencies, defaultCount, maxCount int) *RecommendationsHandler {
	return &RecommendationsHandler{
		deps:         deps,
		defaultCount: defaultCount,
		maxCount:     maxCount,
	}
}

// HandleGetRecommendations handles GET /recommendations?user_id=N&count=M requests.
func (h *RecommendationsHandler) HandleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil || userID < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	count := h.defaultCount
	if countStr := r.URL.Query().Get("count"); countStr != "" {
		count, err = strconv.Atoi(countStr)
		if err != nil || count < 0 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		if count > h.maxCount {
			count = h.maxCount
		}
	}
	pins, err := h.deps.Recommend(r.Context(), userID, count)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if pins == nil {
		pins = []types.RecommendedPin{}
	}
	writeJSON(w, http.StatusOK, pins)
}
