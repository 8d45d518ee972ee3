package model

// PropertyType is the canonical listing/preference type. Values match the
// catalog data, which is in Portuguese.
type PropertyType string

const (
	PropertyApartment PropertyType = "apartamento"
	PropertyHouse     PropertyType = "casa"
	PropertyStudio    PropertyType = "studio"
	PropertyPenthouse PropertyType = "cobertura"
)

// Listing represents one property in the catalog. Listings are read-only:
// the catalog provider owns them and the core never mutates one.
type Listing struct {
	ID           int64        `json:"id"`
	Title        string       `json:"title"`
	Type         PropertyType `json:"type"`
	Price        int          `json:"price"`
	Bedrooms     int          `json:"bedrooms"`
	Bathrooms    int          `json:"bathrooms"`
	Parking      int          `json:"parking"`
	AreaSqm      int          `json:"area_sqm"`
	Neighborhood string       `json:"neighborhood"`
	City         string       `json:"city"`
	Region       string       `json:"region"`
	Features     []string     `json:"features"`
	Image        string       `json:"image,omitempty"`
	Description  string       `json:"description,omitempty"`
}

// ListingResult is a listing plus the presentational metadata computed for
// one search: the 0-99 match score used for sort order and UI badges, and
// human-readable reasons why the listing matched.
type ListingResult struct {
	Listing
	MatchScore     int      `json:"match_score"`
	MatchedReasons []string `json:"matched_reasons"`
}
