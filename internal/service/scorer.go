package service

import (
	"math/rand"
	"sort"

	"concierge/internal/model"
	"concierge/internal/utils"
)

// Match reason constants
const (
	ReasonTypeMatch      = "Type match"
	ReasonBedroomsMatch  = "Bedrooms match"
	ReasonPriceMatch     = "Price within budget"
	ReasonLocationMatch  = "Location match"
	ReasonAmenityMatch   = "Has wanted amenity"
	ReasonCloseAlternate = "Close alternative"
	ReasonGeneralMatch   = "General match"
)

// Scorer assigns display match scores to listings that already passed
// filtering. The score is presentational: base plus bonuses for wanted
// amenities and staying under budget, with a small random variation,
// capped at 99 so nothing claims a perfect match.
type Scorer struct {
	base         int
	amenityBonus int
	priceBonus   int
	jitterMax    int
	rng          *rand.Rand
}

// NewScorer creates a scorer. rng is injectable so tests can pass a
// seeded source; nil disables the jitter entirely.
func NewScorer(base, amenityBonus, priceBonus, jitterMax int, rng *rand.Rand) *Scorer {
	return &Scorer{
		base:         base,
		amenityBonus: amenityBonus,
		priceBonus:   priceBonus,
		jitterMax:    jitterMax,
		rng:          rng,
	}
}

// DefaultScorer uses the same weights the site has always shown.
func DefaultScorer(rng *rand.Rand) *Scorer {
	return &Scorer{base: 50, amenityBonus: 15, priceBonus: 10, jitterMax: 15, rng: rng}
}

// Score computes the match score and its human-readable reasons for a
// single listing against the given filters.
func (s *Scorer) Score(l model.Listing, filters model.SearchFilters) (int, []string) {
	score := s.base
	reasons := []string{}

	if filters.Type != nil && l.Type == *filters.Type {
		reasons = append(reasons, ReasonTypeMatch)
	}
	if filters.Bedrooms != nil && l.Bedrooms >= *filters.Bedrooms {
		reasons = append(reasons, ReasonBedroomsMatch)
	}

	for _, tag := range filters.Features {
		if utils.ListingHasFeature(tag, l.Features) {
			score += s.amenityBonus
			if len(reasons) == 0 || reasons[len(reasons)-1] != ReasonAmenityMatch {
				reasons = append(reasons, ReasonAmenityMatch)
			}
		}
	}

	if filters.PriceMax != nil && l.Price <= *filters.PriceMax {
		score += s.priceBonus
		reasons = append(reasons, ReasonPriceMatch)
	}

	if filters.Location != nil && listingInLocation(l, *filters.Location) {
		reasons = append(reasons, ReasonLocationMatch)
	}

	if s.rng != nil && s.jitterMax > 0 {
		score += s.rng.Intn(s.jitterMax)
	}
	if score > 99 {
		score = 99
	}

	if len(reasons) == 0 {
		reasons = append(reasons, ReasonGeneralMatch)
	}
	return score, reasons
}

// Rank scores every listing and returns results sorted by score
// descending.
func (s *Scorer) Rank(listings []model.Listing, filters model.SearchFilters) []model.ListingResult {
	results := make([]model.ListingResult, 0, len(listings))
	for _, l := range listings {
		score, reasons := s.Score(l, filters)
		results = append(results, model.ListingResult{
			Listing:        l,
			MatchScore:     score,
			MatchedReasons: reasons,
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})
	return results
}

// listingInLocation compares accent-insensitively against the listing's
// neighborhood, city and region.
func listingInLocation(l model.Listing, location string) bool {
	return utils.ContainsFold(l.Neighborhood, location) ||
		utils.ContainsFold(l.City, location) ||
		utils.ContainsFold(l.Region, location)
}
