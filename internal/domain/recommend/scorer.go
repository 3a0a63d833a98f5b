// Package recommend scores and ranks candidate pins against a user's
// interest profile.
package recommend

import (
	"sort"

	"github.com/spr311/pinboard/internal/domain/lexicon"
	"github.com/spr311/pinboard/internal/domain/model"
	"github.com/spr311/pinboard/internal/domain/profile"
)

// Default scoring configuration constants.
const (
	defaultTopCategoryCount = 3
)

// ScoredPin pairs a candidate with its computed relevance score.
type ScoredPin struct {
	Pin   model.Pin
	Score int
}

// ScorerOption applies a configuration option to the Scorer.
type ScorerOption func(*Scorer)

// WithTopCategoryCount sets how many profile categories participate in
// scoring.
func WithTopCategoryCount(n int) ScorerOption {
	return func(s *Scorer) {
		if n > 0 {
			s.topCategories = n
		}
	}
}

// Scorer computes relevance scores. It holds no mutable state and is safe
// for concurrent use.
type Scorer struct {
	topCategories int
}

// NewScorer creates a scorer with configuration options.
func NewScorer(opts ...ScorerOption) *Scorer {
	s := &Scorer{
		topCategories: defaultTopCategoryCount,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rank scores every candidate against the profile's strongest categories,
// drops non-positive scores, and returns the top entries by score descending.
// Equal scores keep the candidate pool's original relative order. An empty
// profile or a zero count yields an empty result.
func (s *Scorer) Rank(candidates []model.Pin, p profile.Profile, count int) []ScoredPin {
	if count <= 0 || len(p) == 0 || len(candidates) == 0 {
		return nil
	}

	top := p.Top(s.topCategories)

	scored := make([]ScoredPin, 0, len(candidates))
	for _, pin := range candidates {
		if score := s.score(pin, p, top); score > 0 {
			scored = append(scored, ScoredPin{Pin: pin, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if count < len(scored) {
		scored = scored[:count]
	}
	return scored
}

// score sums affinity × keyword matches over the selected categories.
func (s *Scorer) score(pin model.Pin, p profile.Profile, top []string) int {
	text := lexicon.Normalize(pin.SearchText())
	score := 0
	for _, category := range top {
		if n := lexicon.MatchCount(text, category); n > 0 {
			score += p[category] * n
		}
	}
	return score
}
