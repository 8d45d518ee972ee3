// Package catalog serves the listing inventory. Listings ship embedded
// in the binary so the service works with no database attached.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"concierge/internal/model"
)

//go:embed listings.json
var listingsJSON []byte

// Catalog is an immutable, in-memory listing inventory.
type Catalog struct {
	listings []model.Listing
	byID     map[int64]model.Listing
}

// Load parses the embedded inventory. It fails only if the embedded
// data is malformed, which is a build problem, not a runtime one.
func Load() (*Catalog, error) {
	var listings []model.Listing
	if err := json.Unmarshal(listingsJSON, &listings); err != nil {
		return nil, fmt.Errorf("parse embedded listings: %w", err)
	}
	byID := make(map[int64]model.Listing, len(listings))
	for _, l := range listings {
		byID[l.ID] = l
	}
	return &Catalog{listings: listings, byID: byID}, nil
}

// All returns every listing. Callers must not mutate the slice.
func (c *Catalog) All() []model.Listing {
	return c.listings
}

// ByID looks a listing up by its identifier.
func (c *Catalog) ByID(id int64) (model.Listing, bool) {
	l, ok := c.byID[id]
	return l, ok
}

// Len reports the inventory size.
func (c *Catalog) Len() int {
	return len(c.listings)
}
