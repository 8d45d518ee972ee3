package model

// SearchFilters is the structured query derived from a lead profile or
// posted directly by a client. Nil fields are unconstrained.
type SearchFilters struct {
	Type     *PropertyType `json:"type,omitempty"`
	Bedrooms *int          `json:"bedrooms,omitempty"`
	PriceMin *int          `json:"priceMin,omitempty"`
	PriceMax *int          `json:"priceMax,omitempty"`
	Location *string       `json:"location,omitempty"`
	Features []string      `json:"features,omitempty"`
}

// IsZero reports whether no constraint is set at all.
func (f SearchFilters) IsZero() bool {
	return f.Type == nil && f.Bedrooms == nil && f.PriceMin == nil &&
		f.PriceMax == nil && f.Location == nil && len(f.Features) == 0
}

// SearchOptions controls result paging.
type SearchOptions struct {
	TopK   int `json:"topK,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// SearchRequest is the body of POST /api/v1/search.
type SearchRequest struct {
	Filters SearchFilters `json:"filters"`
	Options SearchOptions `json:"options"`
}

// SearchResponse wraps ranked results with timing info.
type SearchResponse struct {
	Results  []ListingResult `json:"results"`
	Total    int             `json:"total"`
	Fallback bool            `json:"fallback,omitempty"`
	Took     string          `json:"took"`
}

// StartSessionResponse is returned when a chat session is created.
type StartSessionResponse struct {
	SessionID string   `json:"sessionId"`
	Messages  []string `json:"messages"`
}

// MessageRequest is one incoming chat message. Field is set when the
// client answers a structured question (menu button) instead of typing
// free text.
type MessageRequest struct {
	Text  string  `json:"text"`
	Field FieldID `json:"field,omitempty"`
}

// MessageResponse is the assistant's reply to one message.
type MessageResponse struct {
	SessionID    string          `json:"sessionId"`
	Messages     []string        `json:"messages"`
	Question     *Question       `json:"question,omitempty"`
	Completed    bool            `json:"completed"`
	QualityScore int             `json:"qualityScore"`
	Filters      *SearchFilters  `json:"filters,omitempty"`
	Results      []ListingResult `json:"results,omitempty"`
}

// SessionSnapshot is the full session state for GET requests.
type SessionSnapshot struct {
	SessionID string      `json:"sessionId"`
	Profile   LeadProfile `json:"profile"`
	Turns     []Turn      `json:"turns"`
	Completed bool        `json:"completed"`
}

// FeedbackRequest records a user interaction with a shown listing.
type FeedbackRequest struct {
	SessionID string `json:"sessionId"`
	ListingID int64  `json:"listingId"`
	Action    string `json:"action"`
}
