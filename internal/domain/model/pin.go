// Package model contains domain models passed between layers.
package model

import "time"

// Visibility values for pins. Only public pins are recommendable.
const (
	VisibilityPublic  = "Public"
	VisibilityPrivate = "Private"
)

// Notification types emitted by the board. Payload carries the pin/user refs.
const (
	NotificationNewPin   = "NewPin"
	NotificationLike     = "Like"
	NotificationComment  = "Comment"
	NotificationFollow   = "Follow"
	NotificationPinSaved = "PinSaved"
)

// Pin is a single user-submitted image post.
type Pin struct {
	ID            int64     `db:"id" json:"id"`
	Title         string    `db:"title" json:"title"`
	Description   *string   `db:"description" json:"description,omitempty"`
	ImageURL      string    `db:"image_url" json:"image_url"`
	ImageWidth    int       `db:"image_width" json:"image_width"`
	ImageHeight   int       `db:"image_height" json:"image_height"`
	Link          *string   `db:"link" json:"link,omitempty"`
	OwnerID       int64     `db:"owner_id" json:"owner_id"`
	OwnerUsername string    `db:"owner_username" json:"owner_username,omitempty"`
	Visibility    string    `db:"visibility" json:"visibility"`
	Hidden        bool      `db:"is_hidden" json:"-"`
	Reported      bool      `db:"is_reported" json:"-"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// SearchText concatenates the text fields used for keyword matching.
// A missing description contributes an empty string, so matching logic
// never branches on its presence.
func (p Pin) SearchText() string {
	desc := ""
	if p.Description != nil {
		desc = *p.Description
	}
	return p.Title + " " + desc
}

// ViewEvent records that a user viewed a pin. EventID is the idempotency key.
type ViewEvent struct {
	EventID  string    // unique id for idempotency
	UserID   int64     // viewer
	PinID    int64     // viewed pin
	ViewedAt time.Time // client-reported or ingestion time
}

// Notification is a stored feed entry for a user.
type Notification struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Type      string    `db:"type"`
	Payload   string    `db:"payload"` // JSON blob with pin/user refs
	IsRead    bool      `db:"is_read"`
	CreatedAt time.Time `db:"created_at"`
}

// User is the subset of account data the board needs for attribution.
type User struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"`
	Email     string    `db:"email"`
	Bio       *string   `db:"bio"`
	AvatarURL string    `db:"avatar_url"`
	CreatedAt time.Time `db:"created_at"`
}
