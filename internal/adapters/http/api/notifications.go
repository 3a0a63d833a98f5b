// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/spr311/pinboard/internal/adapters/repository"
	"github.com/spr311/pinboard/internal/domain/types"
)

// NotificationDependencies defines the interface for notification feed
// operations.
type NotificationDependencies interface {
	NotificationsFeed(ctx context.Context, userID int64, page, pageSize int) (types.NotificationFeed, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
}

// NotificationsHandler handles notification feed requests.
type NotificationsHandler struct {
	deps            NotificationDependencies
	defaultPageSize int
	maxPageSize     int
}

// NewNotificationsHandler creates a new notifications handler.
func NewNotificationsHandler(deps NotificationDependencies, defaultPageSize, maxPageSize int) *NotificationsHandler {
	return &NotificationsHandler{
		deps:            deps,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// HandleNotifications handles GET /notifications?user_id=N&page=P&page_size=S.
func (h *NotificationsHandler) HandleNotifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	userID, ok := queryUserID(w, r)
	if !ok {
		return
	}

	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 1 {
			page = n
		}
	}
	pageSize := h.defaultPageSize
	if v := r.URL.Query().Get("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			pageSize = n
		}
	}
	if pageSize > h.maxPageSize {
		pageSize = h.maxPageSize
	}

	feed, err := h.deps.NotificationsFeed(r.Context(), userID, page, pageSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	if feed.Notifications == nil {
		feed.Notifications = []types.NotificationView{}
	}
	writeJSON(w, http.StatusOK, feed)
}

// HandleNotificationAction handles the sub-routes under /notifications/:
//
//	GET /notifications/unread-count?user_id=N
//	PUT /notifications/read-all?user_id=N
//	PUT /notifications/{id}/read?user_id=N
func (h *NotificationsHandler) HandleNotificationAction(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/notifications/")
	switch {
	case path == "unread-count":
		h.handleUnreadCount(w, r)
	case path == "read-all":
		h.handleReadAll(w, r)
	case strings.HasSuffix(path, "/read"):
		h.handleMarkRead(w, r, strings.TrimSuffix(path, "/read"))
	default:
		http.NotFound(w, r)
	}
}

func (h *NotificationsHandler) handleUnreadCount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	userID, ok := queryUserID(w, r)
	if !ok {
		return
	}
	count, err := h.deps.UnreadCount(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"unread_count": count})
}

func (h *NotificationsHandler) handleReadAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.NotFound(w, r)
		return
	}
	userID, ok := queryUserID(w, r)
	if !ok {
		return
	}
	updated, err := h.deps.MarkAllRead(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"updated": updated})
}

func (h *NotificationsHandler) handleMarkRead(w http.ResponseWriter, r *http.Request, idPart string) {
	if r.Method != http.MethodPut {
		http.NotFound(w, r)
		return
	}
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	userID, ok := queryUserID(w, r)
	if !ok {
		return
	}
	if err := h.deps.MarkRead(r.Context(), id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

// queryUserID extracts and validates the user_id query parameter, writing a
// 400 on failure.
func queryUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil || userID < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return 0, false
	}
	return userID, true
}
