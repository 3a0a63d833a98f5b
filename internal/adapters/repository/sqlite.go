package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/spr311/pinboard/internal/domain/model"
	"github.com/spr311/pinboard/pkg/metrics"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db          *sqlx.DB
	busyTimeout time.Duration
}

// New opens a SQLite database at path and creates missing tables.
func New(path string, opts ...StoreOption) (*SQLiteStore, error) {
	s := &SQLiteStore{
		busyTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d", path, s.busyTimeout.Milliseconds())
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	s.db = db
	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// timed returns a deferred latency observer for one query.
func timed() func() {
	start := time.Now()
	return func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}
}

func (s *SQLiteStore) ViewedPinIDs(ctx context.Context, userID int64) ([]int64, error) {
	defer timed()()

	var ids []int64
	err := s.db.SelectContext(ctx, &ids,
		"SELECT pin_id FROM views WHERE user_id = ? ORDER BY pin_id", userID)
	if err != nil {
		metrics.RecordStoreError()
		return nil, fmt.Errorf("viewed pin ids for user %d: %w", userID, err)
	}
	return ids, nil
}

const pinColumns = `p.id, p.title, p.description, p.image_url, p.image_width, p.image_height,
	p.link, p.owner_id, u.username AS owner_username, p.visibility, p.is_hidden, p.is_reported, p.created_at`

func (s *SQLiteStore) PinsByID(ctx context.Context, ids []int64) ([]model.Pin, error) {
	defer timed()()

	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(
		"SELECT "+pinColumns+" FROM pins p JOIN users u ON u.id = p.owner_id WHERE p.id IN (?) ORDER BY p.id",
		ids)
	if err != nil {
		metrics.RecordStoreError()
		return nil, fmt.Errorf("build pins query: %w", err)
	}

	var pins []model.Pin
	if err := s.db.SelectContext(ctx, &pins, s.db.Rebind(query), args...); err != nil {
		metrics.RecordStoreError()
		return nil, fmt.Errorf("pins by id: %w", err)
	}
	return pins, nil
}

func (s *SQLiteStore) Candidates(ctx context.Context, ownerExclude int64, exclude []int64) ([]model.Pin, error) {
	defer timed()()

	query := "SELECT " + pinColumns + ` FROM pins p JOIN users u ON u.id = p.owner_id
		WHERE p.visibility = ? AND p.is_hidden = 0 AND p.is_reported = 0 AND p.owner_id != ?`
	args := []any{model.VisibilityPublic, ownerExclude}

	if len(exclude) > 0 {
		query += " AND p.id NOT IN (?)"
		var err error
		query, args, err = sqlx.In(query+" ORDER BY p.id", args[0], args[1], exclude)
		if err != nil {
			metrics.RecordStoreError()
			return nil, fmt.Errorf("build candidates query: %w", err)
		}
		query = s.db.Rebind(query)
	} else {
		query += " ORDER BY p.id"
	}

	var pins []model.Pin
	if err := s.db.SelectContext(ctx, &pins, query, args...); err != nil {
		metrics.RecordStoreError()
		return nil, fmt.Errorf("candidates for user %d: %w", ownerExclude, err)
	}
	return pins, nil
}

func (s *SQLiteStore) RecordView(ctx context.Context, view model.ViewEvent) error {
	defer timed()()

	viewedAt := view.ViewedAt
	if viewedAt.IsZero() {
		viewedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO views (user_id, pin_id, viewed_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id, pin_id) DO UPDATE SET viewed_at = excluded.viewed_at
	`, view.UserID, view.PinID, viewedAt)
	if err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("record view user %d pin %d: %w", view.UserID, view.PinID, err)
	}
	return nil
}

func (s *SQLiteStore) ListNotifications(ctx context.Context, userID int64, page, pageSize int) (NotificationPage, error) {
	defer timed()()

	if page < 1 || pageSize < 1 {
		return NotificationPage{}, fmt.Errorf("page %d size %d: %w", page, pageSize, ErrInvalidPage)
	}

	var total int
	if err := s.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM notifications WHERE user_id = ?", userID); err != nil {
		metrics.RecordStoreError()
		return NotificationPage{}, fmt.Errorf("count notifications for user %d: %w", userID, err)
	}

	var notifications []model.Notification
	err := s.db.SelectContext(ctx, &notifications, `
		SELECT id, user_id, type, payload, is_read, created_at FROM notifications
		WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?
	`, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		metrics.RecordStoreError()
		return NotificationPage{}, fmt.Errorf("list notifications for user %d: %w", userID, err)
	}

	return NotificationPage{
		Notifications: notifications,
		TotalCount:    total,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

func (s *SQLiteStore) UnreadCount(ctx context.Context, userID int64) (int, error) {
	defer timed()()

	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = 0", userID)
	if err != nil {
		metrics.RecordStoreError()
		return 0, fmt.Errorf("unread count for user %d: %w", userID, err)
	}
	return count, nil
}

func (s *SQLiteStore) MarkRead(ctx context.Context, id, userID int64) error {
	defer timed()()

	res, err := s.db.ExecContext(ctx,
		"UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("mark notification %d read: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("mark notification %d read: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("notification %d for user %d: %w", id, userID, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	defer timed()()

	res, err := s.db.ExecContext(ctx,
		"UPDATE notifications SET is_read = 1 WHERE user_id = ? AND is_read = 0", userID)
	if err != nil {
		metrics.RecordStoreError()
		return 0, fmt.Errorf("mark all read for user %d: %w", userID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		metrics.RecordStoreError()
		return 0, fmt.Errorf("mark all read for user %d: %w", userID, err)
	}
	return affected, nil
}

func (s *SQLiteStore) CreateNotification(ctx context.Context, n *model.Notification) error {
	defer timed()()

	createdAt := n.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	payload := n.Payload
	if payload == "" {
		payload = "{}"
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (user_id, type, payload, is_read, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, n.UserID, n.Type, payload, n.IsRead, createdAt)
	if err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("create notification: %w", err)
	}
	n.ID, _ = res.LastInsertId()
	n.CreatedAt = createdAt
	n.Payload = payload
	return nil
}

func (s *SQLiteStore) CreateUser(ctx context.Context, u *model.User) error {
	defer timed()()

	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, email, bio, avatar_url, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, u.Username, u.Email, u.Bio, u.AvatarURL, createdAt)
	if err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("create user %s: %w", u.Username, err)
	}
	u.ID, _ = res.LastInsertId()
	u.CreatedAt = createdAt
	return nil
}

func (s *SQLiteStore) CreatePin(ctx context.Context, p *model.Pin) error {
	defer timed()()

	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	visibility := p.Visibility
	if visibility == "" {
		visibility = model.VisibilityPublic
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO pins (title, description, image_url, image_width, image_height,
			link, owner_id, visibility, is_hidden, is_reported, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.Title, p.Description, p.ImageURL, p.ImageWidth, p.ImageHeight,
		p.Link, p.OwnerID, visibility, p.Hidden, p.Reported, createdAt)
	if err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("create pin %q: %w", p.Title, err)
	}
	p.ID, _ = res.LastInsertId()
	p.CreatedAt = createdAt
	p.Visibility = visibility
	return nil
}

func (s *SQLiteStore) Counts(ctx context.Context) (int, int, error) {
	defer timed()()

	var users, pins int
	if err := s.db.GetContext(ctx, &users, "SELECT COUNT(*) FROM users"); err != nil {
		metrics.RecordStoreError()
		return 0, 0, fmt.Errorf("count users: %w", err)
	}
	if err := s.db.GetContext(ctx, &pins, "SELECT COUNT(*) FROM pins"); err != nil {
		metrics.RecordStoreError()
		return 0, 0, fmt.Errorf("count pins: %w", err)
	}
	return users, pins, nil
}
