package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"concierge/internal/model"
	"concierge/internal/service"
)

// ChatHandler handles conversation-related HTTP requests
type ChatHandler struct {
	conversations *service.ConversationService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(conversations *service.ConversationService) *ChatHandler {
	return &ChatHandler{conversations: conversations}
}

// StartSession handles POST /api/v1/chat/sessions
func (h *ChatHandler) StartSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.conversations.StartSession())
}

// Message handles POST /api/v1/chat/sessions/:id/messages
func (h *ChatHandler) Message(c *gin.Context) {
	sessionID := c.Param("id")

	var req model.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message text is required"})
		return
	}

	resp, err := h.conversations.ProcessMessage(sessionID, req)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetSession handles GET /api/v1/chat/sessions/:id
func (h *ChatHandler) GetSession(c *gin.Context) {
	snapshot, err := h.conversations.Snapshot(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}
