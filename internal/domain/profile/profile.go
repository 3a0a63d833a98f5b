// Package profile builds per-request interest profiles from view history.
//
// A profile is a mapping from category name to an integer affinity score.
// It is computed fresh for every recommendation request and never persisted;
// the output is a pure function of the viewed pins' text and the lexicon.
package profile

import (
	"sort"

	"github.com/spr311/pinboard/internal/domain/lexicon"
	"github.com/spr311/pinboard/internal/domain/model"
)

// Profile maps category name to affinity score. Categories with no matches
// are absent, never stored as zero.
type Profile map[string]int

// Build derives a profile from the pins a user has viewed. For each pin the
// title and description are folded to lowercase and every category's stems
// are counted against the combined text; a stem counts at most once per pin.
func Build(viewed []model.Pin) Profile {
	p := make(Profile)
	for _, pin := range viewed {
		text := lexicon.Normalize(pin.SearchText())
		for _, category := range lexicon.Categories() {
			if n := lexicon.MatchCount(text, category); n > 0 {
				p[category] += n
			}
		}
	}
	return p
}

// Top returns the n highest-affinity categories, scores descending. Equal
// scores fall back to lexicon declaration order so repeated calls over the
// same profile always agree.
func (p Profile) Top(n int) []string {
	if n <= 0 || len(p) == 0 {
		return nil
	}
	categories := make([]string, 0, len(p))
	for c := range p {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		if p[categories[i]] != p[categories[j]] {
			return p[categories[i]] > p[categories[j]]
		}
		return lexicon.Order(categories[i]) < lexicon.Order(categories[j])
	})
	if n < len(categories) {
		categories = categories[:n]
	}
	return categories
}
