// Package types contains read shapes shared between the service and the
// HTTP API.
package types

import "time"

// RecommendedPin is a scored pin as returned to clients.
type RecommendedPin struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description,omitempty"`
	ImageURL      string    `json:"image_url"`
	ImageWidth    int       `json:"image_width"`
	ImageHeight   int       `json:"image_height"`
	Link          *string   `json:"link,omitempty"`
	OwnerID       int64     `json:"owner_id"`
	OwnerUsername string    `json:"owner_username"`
	CreatedAt     time.Time `json:"created_at"`
	Score         int       `json:"score"`
}

// NotificationView is a rendered notification feed entry.
type NotificationView struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	PinID     *int64    `json:"pin_id,omitempty"`
	UserID    *int64    `json:"user_id,omitempty"`
	Username  string    `json:"username,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationFeed is the assembled notifications response: one page of
// entries plus the recommendation enrichment.
type NotificationFeed struct {
	Notifications   []NotificationView `json:"notifications"`
	RecommendedPins []RecommendedPin   `json:"recommended_pins"`
	TotalCount      int                `json:"total_count"`
	Page            int                `json:"page"`
	PageSize        int                `json:"page_size"`
	TotalPages      int                `json:"total_pages"`
}
