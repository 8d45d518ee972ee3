package service

import (
	"sort"
	"time"

	"concierge/internal/catalog"
	"concierge/internal/model"
	"concierge/internal/utils"
)

// Relevance weights for the fallback phase. A listing is admitted when
// it earns at least fallbackShare of the points attainable given which
// filters are actually set.
const (
	relevanceType     = 30
	relevanceBedrooms = 25
	relevancePrice    = 25
	relevanceLocation = 20

	fallbackShare = 0.4
)

// SearchService matches listings against structured filters. It always
// returns something to show: exact matches when they exist, near
// matches when they don't, and the best available listings as a last
// resort.
type SearchService struct {
	catalog    *catalog.Catalog
	scorer     *Scorer
	maxResults int
}

func NewSearchService(cat *catalog.Catalog, scorer *Scorer, maxResults int) *SearchService {
	if maxResults <= 0 {
		maxResults = 6
	}
	return &SearchService{catalog: cat, scorer: scorer, maxResults: maxResults}
}

// Search runs the three matching phases and returns ranked results.
// The boolean reports whether the fallback phases were used.
func (s *SearchService) Search(filters model.SearchFilters, opts model.SearchOptions) ([]model.ListingResult, bool) {
	all := s.catalog.All()

	exact := make([]model.Listing, 0, len(all))
	for _, l := range all {
		if matchesExact(l, filters) {
			exact = append(exact, l)
		}
	}
	if len(exact) > 0 {
		return s.page(s.scorer.Rank(exact, filters), opts), false
	}

	if near := s.nearMatches(all, filters); len(near) > 0 {
		return s.page(near, opts), true
	}

	return s.page(s.bestAvailable(all, filters), opts), true
}

// Respond wraps Search in the HTTP response shape with timing.
func (s *SearchService) Respond(req model.SearchRequest) model.SearchResponse {
	start := time.Now()
	results, fallback := s.Search(req.Filters, req.Options)
	return model.SearchResponse{
		Results:  results,
		Total:    len(results),
		Fallback: fallback,
		Took:     time.Since(start).String(),
	}
}

func matchesExact(l model.Listing, f model.SearchFilters) bool {
	if f.Type != nil && l.Type != *f.Type {
		return false
	}
	if f.Bedrooms != nil && l.Bedrooms < *f.Bedrooms {
		return false
	}
	if f.PriceMin != nil && l.Price < *f.PriceMin {
		return false
	}
	if f.PriceMax != nil && l.Price > *f.PriceMax {
		return false
	}
	if f.Location != nil && !listingInLocation(l, *f.Location) {
		return false
	}
	for _, tag := range f.Features {
		if !utils.ListingHasFeature(tag, l.Features) {
			return false
		}
	}
	return true
}

// nearMatches scores every listing on how many filter axes it comes
// close to and keeps those above the admission share.
func (s *SearchService) nearMatches(all []model.Listing, f model.SearchFilters) []model.ListingResult {
	attainable := 0
	if f.Type != nil {
		attainable += relevanceType
	}
	if f.Bedrooms != nil {
		attainable += relevanceBedrooms
	}
	if f.PriceMin != nil || f.PriceMax != nil {
		attainable += relevancePrice
	}
	if f.Location != nil {
		attainable += relevanceLocation
	}
	if attainable == 0 {
		return nil
	}
	threshold := int(fallbackShare * float64(attainable))

	type scored struct {
		listing   model.Listing
		relevance int
	}
	admitted := make([]scored, 0, len(all))
	for _, l := range all {
		r := relevanceOf(l, f)
		if r >= threshold {
			admitted = append(admitted, scored{l, r})
		}
	}
	sort.SliceStable(admitted, func(i, j int) bool {
		return admitted[i].relevance > admitted[j].relevance
	})
	if len(admitted) > s.maxResults {
		admitted = admitted[:s.maxResults]
	}

	results := make([]model.ListingResult, 0, len(admitted))
	for _, a := range admitted {
		score, reasons := s.scorer.Score(a.listing, f)
		results = append(results, model.ListingResult{
			Listing:        a.listing,
			MatchScore:     score,
			MatchedReasons: append(reasons, ReasonCloseAlternate),
		})
	}
	return results
}

func relevanceOf(l model.Listing, f model.SearchFilters) int {
	r := 0
	if f.Type != nil && l.Type == *f.Type {
		r += relevanceType
	}
	if f.Bedrooms != nil {
		switch {
		case l.Bedrooms >= *f.Bedrooms:
			r += relevanceBedrooms
		case l.Bedrooms == *f.Bedrooms-1:
			r += relevanceBedrooms / 2
		}
	}
	if f.PriceMin != nil || f.PriceMax != nil {
		switch {
		case priceInRange(l.Price, f):
			r += relevancePrice
		case f.PriceMax != nil && float64(l.Price) <= float64(*f.PriceMax)*1.15:
			// Slightly over budget still counts for something.
			r += relevancePrice / 2
		}
	}
	if f.Location != nil && listingInLocation(l, *f.Location) {
		r += relevanceLocation
	}
	return r
}

func priceInRange(price int, f model.SearchFilters) bool {
	if f.PriceMin != nil && price < *f.PriceMin {
		return false
	}
	if f.PriceMax != nil && price > *f.PriceMax {
		return false
	}
	return true
}

// bestAvailable is the last resort: the most feature-rich, most
// affordable listings, regardless of the filters.
func (s *SearchService) bestAvailable(all []model.Listing, f model.SearchFilters) []model.ListingResult {
	sorted := make([]model.Listing, len(all))
	copy(sorted, all)
	sort.SliceStable(sorted, func(i, j int) bool {
		if len(sorted[i].Features) != len(sorted[j].Features) {
			return len(sorted[i].Features) > len(sorted[j].Features)
		}
		return sorted[i].Price < sorted[j].Price
	})
	if len(sorted) > s.maxResults {
		sorted = sorted[:s.maxResults]
	}

	results := make([]model.ListingResult, 0, len(sorted))
	for _, l := range sorted {
		score, _ := s.scorer.Score(l, f)
		results = append(results, model.ListingResult{
			Listing:        l,
			MatchScore:     score,
			MatchedReasons: []string{ReasonCloseAlternate},
		})
	}
	return results
}

func (s *SearchService) page(results []model.ListingResult, opts model.SearchOptions) []model.ListingResult {
	if opts.Offset > 0 {
		if opts.Offset >= len(results) {
			// Paging past the end still returns the final page rather
			// than nothing.
			if len(results) > 0 {
				return results[len(results)-1:]
			}
			return results
		}
		results = results[opts.Offset:]
	}
	if opts.TopK > 0 && len(results) > opts.TopK {
		results = results[:opts.TopK]
	}
	return results
}
