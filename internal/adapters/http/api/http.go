// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/spr311/pinboard/internal/domain/model"
	"github.com/spr311/pinboard/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// SeenAndRecord atomically checks and records a view event id.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord removes a view event id, allowing a retry after backpressure.
	Unrecord(ctx context.Context, id string)

	// EnqueueView pushes a view for async recording. Returns false on
	// backpressure.
	EnqueueView(ctx context.Context, e model.ViewEvent) bool

	// Recommend returns up to count ranked pins for the user.
	Recommend(ctx context.Context, userID int64, count int) ([]types.RecommendedPin, error)

	// NotificationsFeed returns one page of the user's feed with the
	// recommendation enrichment attached.
	NotificationsFeed(ctx context.Context, userID int64, page, pageSize int) (types.NotificationFeed, error)

	// UnreadCount returns the user's unread notification count.
	UnreadCount(ctx context.Context, userID int64) (int, error)

	// MarkRead marks one notification as read.
	MarkRead(ctx context.Context, id, userID int64) error

	// MarkAllRead marks all of the user's notifications as read.
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler          *HealthHandler
	statsHandler           *StatsHandler
	viewsHandler           *ViewsHandler
	recommendationsHandler *RecommendationsHandler
	notificationsHandler   *NotificationsHandler
}

// ServerConfig carries the request defaults and limits handlers enforce.
type ServerConfig struct {
	DefaultRecommendCount int
	MaxRecommendCount     int
	DefaultPageSize       int
	MaxPageSize           int
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, cfg ServerConfig) *Server {
	if cfg.MaxRecommendCount <= 0 {
		cfg.MaxRecommendCount = 50
	}
	if cfg.DefaultRecommendCount <= 0 {
		cfg.DefaultRecommendCount = 5
	}
	if cfg.DefaultRecommendCount > cfg.MaxRecommendCount {
		cfg.DefaultRecommendCount = cfg.MaxRecommendCount
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 20
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 100
	}
	return &Server{
		healthHandler:          NewHealthHandler(),
		statsHandler:           NewStatsHandler(statsProvider),
		viewsHandler:           NewViewsHandler(deps),
		recommendationsHandler: NewRecommendationsHandler(deps, cfg.DefaultRecommendCount, cfg.MaxRecommendCount),
		notificationsHandler:   NewNotificationsHandler(deps, cfg.DefaultPageSize, cfg.MaxPageSize),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/views", RequestID(MetricsMiddleware(s.viewsHandler.HandlePostView, "views")))
	mux.HandleFunc("/recommendations", RequestID(MetricsMiddleware(s.recommendationsHandler.HandleGetRecommendations, "recommendations")))
	mux.HandleFunc("/notifications", RequestID(MetricsMiddleware(s.notificationsHandler.HandleNotifications, "notifications")))
	mux.HandleFunc("/notifications/", RequestID(MetricsMiddleware(s.notificationsHandler.HandleNotificationAction, "notifications_action")))
}

// viewRequest mirrors the JSON schema for POST /views.
type viewRequest struct {
	EventID string `json:"event_id"`
	UserID  int64  `json:"user_id"`
	PinID   int64  `json:"pin_id"`
	TS      string `json:"ts"`
}

func (v viewRequest) validate() error {
	switch {
	case v.UserID <= 0:
		return errors.New("missing or invalid user_id")
	case v.PinID <= 0:
		return errors.New("missing or invalid pin_id")
	}
	if strings.TrimSpace(v.TS) != "" {
		if _, err := time.Parse(time.RFC3339, v.TS); err != nil {
			return errors.New("invalid ts; must be RFC3339")
		}
	}
	return nil
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
