package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/spr311/pinboard/internal/domain/model"
	"github.com/spr311/pinboard/internal/domain/profile"
	"github.com/spr311/pinboard/pkg/logger"
	"github.com/spr311/pinboard/pkg/metrics"
)

// Store is the content access the recommender needs. The repository adapter
// satisfies this; tests substitute fakes.
type Store interface {
	// ViewedPinIDs returns the ids of pins the user has previously viewed.
	ViewedPinIDs(ctx context.Context, userID int64) ([]int64, error)

	// PinsByID fetches pins by id. Missing ids are silently skipped.
	PinsByID(ctx context.Context, ids []int64) ([]model.Pin, error)

	// Candidates returns recommendable pins: public, not hidden, not
	// reported, not owned by ownerExclude, and not among exclude.
	Candidates(ctx context.Context, ownerExclude int64, exclude []int64) ([]model.Pin, error)
}

// Option applies a configuration option to the Recommender.
type Option func(*Recommender)

// WithScorer replaces the default scorer.
func WithScorer(s *Scorer) Option {
	return func(r *Recommender) {
		if s != nil {
			r.scorer = s
		}
	}
}

// WithLogger sets a custom logger for the recommender.
func WithLogger(l logger.Logger) Option {
	return func(r *Recommender) {
		if l != nil {
			r.logger = l
		}
	}
}

// Recommender assembles ranked recommendations for a user. Store failures
// degrade to an empty result: recommendations enrich the notifications feed
// and must never break it.
type Recommender struct {
	store  Store
	scorer *Scorer
	logger logger.Logger
}

// NewRecommender creates a recommender backed by store.
func NewRecommender(store Store, opts ...Option) *Recommender {
	r := &Recommender{
		store:  store,
		scorer: NewScorer(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logger.Get().Named("recommend")
	}
	return r
}

// Recommend returns up to count pins ranked by relevance to the user's view
// history. Validation failures (non-positive user id, negative count) return
// an error; upstream data failures are logged and produce an empty result.
func (r *Recommender) Recommend(ctx context.Context, userID int64, count int) ([]ScoredPin, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("recommend for user %d: %w", userID, ErrInvalidUser)
	}
	if count < 0 {
		return nil, fmt.Errorf("recommend count %d: %w", count, ErrInvalidCount)
	}
	if count == 0 {
		return nil, nil
	}

	metrics.RecordRecommendationRequest()
	start := time.Now()
	defer func() {
		metrics.RecordRecommendationLatency(float64(time.Since(start).Milliseconds()))
	}()

	viewedIDs, err := r.store.ViewedPinIDs(ctx, userID)
	if err != nil {
		return r.degrade(ctx, userID, "load viewed pin ids", err), nil
	}
	if len(viewedIDs) == 0 {
		metrics.RecordRecommendationEmpty()
		return nil, nil
	}

	viewed, err := r.store.PinsByID(ctx, viewedIDs)
	if err != nil {
		return r.degrade(ctx, userID, "load viewed pins", err), nil
	}

	buildStart := time.Now()
	prof := profile.Build(viewed)
	metrics.RecordProfileBuildLatency(float64(time.Since(buildStart).Milliseconds()))
	if len(prof) == 0 {
		metrics.RecordRecommendationEmpty()
		return nil, nil
	}

	candidates, err := r.store.Candidates(ctx, userID, viewedIDs)
	if err != nil {
		return r.degrade(ctx, userID, "load candidates", err), nil
	}
	metrics.UpdateCandidatePoolSize(len(candidates))

	ranked := r.scorer.Rank(candidates, prof, count)
	if len(ranked) == 0 {
		metrics.RecordRecommendationEmpty()
	}
	return ranked, nil
}

// degrade logs a store failure and converts it to an empty result.
func (r *Recommender) degrade(ctx context.Context, userID int64, op string, err error) []ScoredPin {
	metrics.RecordRecommendationError()
	r.logger.Warn(ctx, "recommendation degraded to empty",
		logger.String("op", op),
		logger.Int64("userID", userID),
		logger.Error(err),
	)
	return nil
}
