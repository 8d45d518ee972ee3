package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"concierge/internal/catalog"
	"concierge/internal/model"
	"concierge/internal/service"
)

// SearchHandler handles search-related HTTP requests
type SearchHandler struct {
	searchService *service.SearchService
	catalog       *catalog.Catalog
	defaultLimit  int
	maxLimit      int
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService *service.SearchService, cat *catalog.Catalog, defaultLimit, maxLimit int) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		catalog:       cat,
		defaultLimit:  defaultLimit,
		maxLimit:      maxLimit,
	}
}

// Search handles POST /api/v1/search
func (h *SearchHandler) Search(c *gin.Context) {
	var req model.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	// Validate and cap limits
	if req.Options.TopK <= 0 {
		req.Options.TopK = h.defaultLimit
	}
	if req.Options.TopK > h.maxLimit {
		req.Options.TopK = h.maxLimit
	}
	if req.Options.Offset < 0 {
		req.Options.Offset = 0
	}

	c.JSON(http.StatusOK, h.searchService.Respond(req))
}

// GetListing handles GET /api/v1/listings/:id
func (h *SearchHandler) GetListing(c *gin.Context) {
	listingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing ID"})
		return
	}

	listing, ok := h.catalog.ByID(listingID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	c.JSON(http.StatusOK, listing)
}
