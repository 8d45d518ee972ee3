package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"concierge/internal/catalog"
	"concierge/internal/model"
)

// FeedbackStore records listing interactions for later analysis.
type FeedbackStore interface {
	LogFeedback(ctx context.Context, sessionID string, listingID int64, action string) error
}

// FeedbackHandler handles feedback-related HTTP requests
type FeedbackHandler struct {
	catalog *catalog.Catalog
	store   FeedbackStore
}

// NewFeedbackHandler creates a new feedback handler. The store may be
// nil when the server runs without persistence.
func NewFeedbackHandler(cat *catalog.Catalog, store FeedbackStore) *FeedbackHandler {
	return &FeedbackHandler{catalog: cat, store: store}
}

// Submit handles POST /api/v1/feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req model.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	validActions := map[string]bool{
		"click":        true,
		"contact":      true,
		"view_details": true,
	}
	if !validActions[req.Action] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action. Must be one of: click, contact, view_details"})
		return
	}

	if _, ok := h.catalog.ByID(req.ListingID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}

	if h.store != nil {
		if err := h.store.LogFeedback(c.Request.Context(), req.SessionID, req.ListingID, req.Action); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log feedback: " + err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Feedback logged successfully"})
}
