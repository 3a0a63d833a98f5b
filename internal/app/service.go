// Package app provides the core business service that implements the
// dependencies required by the HTTP API.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/spr311/pinboard/internal/adapters/mq/queue"
	"github.com/spr311/pinboard/internal/adapters/mq/worker"
	"github.com/spr311/pinboard/internal/adapters/repository"
	"github.com/spr311/pinboard/internal/domain/dedupe"
	"github.com/spr311/pinboard/internal/domain/model"
	"github.com/spr311/pinboard/internal/domain/recommend"
	"github.com/spr311/pinboard/internal/domain/types"
	"github.com/spr311/pinboard/pkg/logger"
	"github.com/spr311/pinboard/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultWorkerCount      = 4
	defaultQueueSize        = 100000
	defaultDedupeSize       = 50000
	defaultRecommendCount   = 5
	defaultTopCategoryCount = 3
	defaultDBPath           = "./pinboard.db"
	fallbackUsername        = "Користувач"
)

// Service wires the content store, view ingestion pipeline, and recommender,
// and implements the HTTP API dependencies.
type Service struct {
	mu sync.RWMutex

	// Core components
	store       repository.Store
	deduper     dedupe.Deduper
	viewQueue   queue.Queue
	recommender *recommend.Recommender
	workerPool  *worker.Pool

	// Configuration
	dbPath           string
	workerCount      int
	queueSize        int
	dedupeSize       int
	recommendCount   int
	topCategoryCount int

	// State
	started  bool
	ownStore bool // whether Stop should close the store

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDBPath sets the SQLite database path.
func WithDBPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dbPath = path
		}
	}
}

// WithStore injects a pre-built content store. The service will not close
// an injected store on Stop.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithWorkerCount sets the number of view recorder workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize bounds the view ingestion queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the view deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithRecommendCount sets how many pins enrich the notifications feed.
func WithRecommendCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.recommendCount = count
		}
	}
}

// WithTopCategoryCount sets how many profile categories participate in
// candidate scoring.
func WithTopCategoryCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.topCategoryCount = count
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dbPath:           defaultDBPath,
		workerCount:      defaultWorkerCount,
		queueSize:        defaultQueueSize,
		dedupeSize:       defaultDedupeSize,
		recommendCount:   defaultRecommendCount,
		topCategoryCount: defaultTopCategoryCount,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("app")
	}

	if s.store == nil {
		store, err := repository.New(s.dbPath)
		if err != nil {
			return fmt.Errorf("open content store: %w", err)
		}
		s.store = store
		s.ownStore = true
		s.logger.Info(ctx, "opened content store", logger.String("path", s.dbPath))
	}

	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.viewQueue = queue.NewInMemoryQueue(
		queue.WithCapacity(s.queueSize),
	)
	s.recommender = recommend.NewRecommender(s.store,
		recommend.WithScorer(recommend.NewScorer(
			recommend.WithTopCategoryCount(s.topCategoryCount),
		)),
		recommend.WithLogger(s.logger.Named("recommend")),
	)

	s.workerPool = worker.NewPool(s.workerCount, s.viewQueue, s.store)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "pinboard service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping pinboard service...")

	if s.viewQueue != nil {
		_ = s.viewQueue.Close()
	}
	if s.workerPool != nil {
		s.workerPool.Stop()
	}
	if s.ownStore && s.store != nil {
		_ = s.store.Close()
	}

	s.started = false
	s.logger.Info(ctx, "pinboard service stopped")
}

// SeenAndRecord atomically checks if a view event id was seen and records it
// if not. Returns true if the event was already seen.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordViewDuplicate()
	}
	return seen
}

// Unrecord removes a view event ID from the seen list, allowing a retry.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}

// EnqueueView submits a view event for asynchronous recording.
// Returns false on backpressure.
func (s *Service) EnqueueView(ctx context.Context, e model.ViewEvent) bool {
	ok := s.viewQueue.Enqueue(ctx, e)
	if !ok {
		s.logger.Warn(ctx, "view queue rejected event",
			logger.String("eventID", e.EventID),
			logger.Int64("userID", e.UserID),
			logger.Int64("pinID", e.PinID),
		)
	}
	return ok
}

// Recommend returns up to count pins ranked by relevance for the user.
func (s *Service) Recommend(ctx context.Context, userID int64, count int) ([]types.RecommendedPin, error) {
	ranked, err := s.recommender.Recommend(ctx, userID, count)
	if err != nil {
		return nil, err
	}
	return toRecommendedPins(ranked), nil
}

// NotificationsFeed assembles one page of the user's notifications plus the
// recommendation enrichment. A recommender failure never fails the feed.
func (s *Service) NotificationsFeed(ctx context.Context, userID int64, page, pageSize int) (types.NotificationFeed, error) {
	pageData, err := s.store.ListNotifications(ctx, userID, page, pageSize)
	if err != nil {
		return types.NotificationFeed{}, fmt.Errorf("list notifications: %w", err)
	}

	views := make([]types.NotificationView, 0, len(pageData.Notifications))
	for _, n := range pageData.Notifications {
		views = append(views, renderNotification(n))
	}
	metrics.RecordNotificationsServed(len(views))

	recommended, err := s.Recommend(ctx, userID, s.recommendCount)
	if err != nil {
		// Validation failures only; data failures already degrade to empty.
		s.logger.Warn(ctx, "skipping feed enrichment", logger.Error(err))
		recommended = nil
	}

	totalPages := 0
	if pageData.TotalCount > 0 {
		totalPages = (pageData.TotalCount + pageSize - 1) / pageSize
	}

	return types.NotificationFeed{
		Notifications:   views,
		RecommendedPins: recommended,
		TotalCount:      pageData.TotalCount,
		Page:            pageData.Page,
		PageSize:        pageData.PageSize,
		TotalPages:      totalPages,
	}, nil
}

// UnreadCount returns the user's unread notification count.
func (s *Service) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.store.UnreadCount(ctx, userID)
}

// MarkRead marks one notification as read.
func (s *Service) MarkRead(ctx context.Context, id, userID int64) error {
	return s.store.MarkRead(ctx, id, userID)
}

// MarkAllRead marks all of the user's notifications as read.
func (s *Service) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	return s.store.MarkAllRead(ctx, userID)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		ctx := context.Background()
		stats["queueLength"] = s.viewQueue.Len(ctx)
		stats["dedupeEntries"] = s.deduper.Size()
		if users, pins, err := s.store.Counts(ctx); err == nil {
			stats["totalUsers"] = users
			stats["totalPins"] = pins
		}
	}
	return stats
}

// notificationPayload mirrors the JSON blob stored with a notification.
type notificationPayload struct {
	PinID     *int64 `json:"pinId"`
	UserID    *int64 `json:"userId"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
}

// renderNotification decodes the payload refs and attaches the human
// message. Malformed payloads are tolerated: the entry still renders with
// the generic message.
func renderNotification(n model.Notification) types.NotificationView {
	view := types.NotificationView{
		ID:        n.ID,
		Type:      n.Type,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}

	var payload notificationPayload
	if n.Payload != "" {
		if err := json.Unmarshal([]byte(n.Payload), &payload); err == nil {
			view.PinID = payload.PinID
			view.UserID = payload.UserID
			view.Username = payload.Username
			view.AvatarURL = payload.AvatarURL
		}
	}

	view.Message = notificationMessage(n.Type, view.Username)
	return view
}

// notificationMessage renders the feed text for a notification type.
func notificationMessage(notificationType, username string) string {
	name := username
	if name == "" {
		name = fallbackUsername
	}
	switch notificationType {
	case model.NotificationNewPin:
		return name + " створив новий пін"
	case model.NotificationLike:
		return name + " вподобав ваш пін"
	case model.NotificationComment:
		return name + " прокоментував ваш пін"
	case model.NotificationFollow:
		return name + " підписався на вас"
	case model.NotificationPinSaved:
		return name + " зберіг ваш пін"
	default:
		return "Нове сповіщення"
	}
}

// toRecommendedPins converts scored pins to the API read shape.
func toRecommendedPins(ranked []recommend.ScoredPin) []types.RecommendedPin {
	if len(ranked) == 0 {
		return nil
	}
	out := make([]types.RecommendedPin, len(ranked))
	for i, sp := range ranked {
		out[i] = types.RecommendedPin{
			ID:            sp.Pin.ID,
			Title:         sp.Pin.Title,
			Description:   sp.Pin.Description,
			ImageURL:      sp.Pin.ImageURL,
			ImageWidth:    sp.Pin.ImageWidth,
			ImageHeight:   sp.Pin.ImageHeight,
			Link:          sp.Pin.Link,
			OwnerID:       sp.Pin.OwnerID,
			OwnerUsername: sp.Pin.OwnerUsername,
			CreatedAt:     sp.Pin.CreatedAt,
			Score:         sp.Score,
		}
	}
	return out
}
