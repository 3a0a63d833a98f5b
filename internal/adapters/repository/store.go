// Package repository defines the content store interface and its SQLite
// implementation.
package repository

import (
	"context"

	"github.com/spr311/pinboard/internal/domain/model"
)

// NotificationPage is one page of a user's notification feed.
type NotificationPage struct {
	Notifications []model.Notification
	TotalCount    int
	Page          int
	PageSize      int
}

// Store provides read/write access to pins, views, users, and notifications.
type Store interface {
	// ViewedPinIDs returns the ids of pins the user has viewed.
	ViewedPinIDs(ctx context.Context, userID int64) ([]int64, error)

	// PinsByID fetches pins by id, owner attribution included. Unknown ids
	// are skipped.
	PinsByID(ctx context.Context, ids []int64) ([]model.Pin, error)

	// Candidates returns recommendable pins: public, not hidden, not
	// reported, not owned by ownerExclude, and not among exclude. Results
	// keep a stable order across identical calls.
	Candidates(ctx context.Context, ownerExclude int64, exclude []int64) ([]model.Pin, error)

	// RecordView persists a view. Re-recording the same user/pin pair
	// refreshes the timestamp instead of duplicating the row.
	RecordView(ctx context.Context, view model.ViewEvent) error

	// ListNotifications returns a page of the user's feed, newest first.
	ListNotifications(ctx context.Context, userID int64, page, pageSize int) (NotificationPage, error)

	// UnreadCount returns the number of unread notifications for the user.
	UnreadCount(ctx context.Context, userID int64) (int, error)

	// MarkRead marks one of the user's notifications as read.
	// Returns ErrNotFound if the notification does not exist for that user.
	MarkRead(ctx context.Context, id, userID int64) error

	// MarkAllRead marks all of the user's notifications as read and returns
	// how many changed.
	MarkAllRead(ctx context.Context, userID int64) (int64, error)

	// CreateNotification stores a feed entry and assigns its id.
	CreateNotification(ctx context.Context, n *model.Notification) error

	// CreateUser stores a user and assigns its id.
	CreateUser(ctx context.Context, u *model.User) error

	// CreatePin stores a pin and assigns its id.
	CreatePin(ctx context.Context, p *model.Pin) error

	// Counts returns the number of users and pins tracked, for stats.
	Counts(ctx context.Context) (users, pins int, err error)

	Close() error
}
