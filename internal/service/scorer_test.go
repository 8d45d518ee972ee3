package service

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"concierge/internal/model"
)

func testListing() model.Listing {
	return model.Listing{
		ID:       1,
		Title:    "Apartamento 2 Quartos Menino Deus",
		Type:     model.PropertyApartment,
		Price:    420000,
		Bedrooms: 2,
		City:     "Porto Alegre",
		Region:   "Zona Sul",
		Features: []string{"garagem", "elevador", "sacada"},
	}
}

func TestScore_Deterministic(t *testing.T) {
	s := DefaultScorer(nil) // nil rng disables jitter
	max := 500000

	score, reasons := s.Score(testListing(), model.SearchFilters{PriceMax: &max})
	assert.Equal(t, 60, score, "base 50 plus price bonus 10")
	assert.Contains(t, reasons, ReasonPriceMatch)

	score, reasons = s.Score(testListing(), model.SearchFilters{})
	assert.Equal(t, 50, score)
	assert.Equal(t, []string{ReasonGeneralMatch}, reasons)
}

func TestScore_AmenityBonus(t *testing.T) {
	s := DefaultScorer(nil)

	score, reasons := s.Score(testListing(), model.SearchFilters{
		Features: []string{"garagem", "sacada", "piscina"},
	})
	assert.Equal(t, 80, score, "two of three wanted amenities at 15 each")
	assert.Contains(t, reasons, ReasonAmenityMatch)
}

func TestScore_CappedAt99(t *testing.T) {
	s := DefaultScorer(nil)
	l := testListing()
	l.Features = []string{"garagem", "piscina", "academia", "sauna", "elevador"}
	max := 500000

	score, _ := s.Score(l, model.SearchFilters{
		PriceMax: &max,
		Features: []string{"garagem", "piscina", "academia", "sauna", "elevador"},
	})
	assert.Equal(t, 99, score)
}

func TestScore_JitterStaysBounded(t *testing.T) {
	s := DefaultScorer(rand.New(rand.NewSource(42)))

	for i := 0; i < 100; i++ {
		score, _ := s.Score(testListing(), model.SearchFilters{})
		assert.GreaterOrEqual(t, score, 50)
		assert.LessOrEqual(t, score, 99)
	}
}

func TestRank_SortsByScoreDescending(t *testing.T) {
	s := DefaultScorer(nil)
	cheap := testListing()
	expensive := testListing()
	expensive.ID = 2
	expensive.Price = 900000
	max := 500000

	results := s.Rank([]model.Listing{expensive, cheap}, model.SearchFilters{PriceMax: &max})
	assert.Len(t, results, 2)
	assert.Equal(t, int64(1), results[0].ID, "listing under budget ranks first")
	assert.GreaterOrEqual(t, results[0].MatchScore, results[1].MatchScore)
}
