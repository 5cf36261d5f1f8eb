package handlers

import (
	"errors"
	"net/http"

	"concierge/models"
	"concierge/services/concierge"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler serves the conversational endpoints.
type ChatHandler struct {
	Svc    concierge.Service
	Logger *zap.Logger
}

// NewChatHandler returns a ChatHandler backed by the given service.
func NewChatHandler(svc concierge.Service, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{Svc: svc, Logger: logger}
}

// Chat handles POST /chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message and sessionId are required"})
		return
	}

	reply, err := h.Svc.HandleMessage(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		h.Logger.Error("chat turn failed", zap.String("sessionId", req.SessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong with the AI chat."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// History handles GET /api/history/:sessionId. A session that does not exist
// yet yields an empty history.
func (h *ChatHandler) History(c *gin.Context) {
	sessionID := c.Param("sessionId")

	history, err := h.Svc.History(c.Request.Context(), sessionID)
	if err != nil {
		h.Logger.Error("failed to fetch chat history", zap.String("sessionId", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch chat history"})
		return
	}

	c.JSON(http.StatusOK, history)
}

// GuestContext handles GET /api/context/:sessionId.
func (h *ChatHandler) GuestContext(c *gin.Context) {
	sessionID := c.Param("sessionId")

	guestCtx, err := h.Svc.GuestContext(c.Request.Context(), sessionID)
	if err != nil {
		h.Logger.Error("failed to fetch guest context", zap.String("sessionId", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch user context"})
		return
	}

	c.JSON(http.StatusOK, guestCtx)
}

// SearchFAQs handles GET /api/faqs/search?query=.
func (h *ChatHandler) SearchFAQs(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Query parameter is required."})
		return
	}

	faq, err := h.Svc.SearchFAQ(c.Request.Context(), query)
	if errors.Is(err, concierge.ErrNoFAQMatch) {
		c.JSON(http.StatusNotFound, gin.H{"message": "No relevant FAQ found."})
		return
	}
	if err != nil {
		h.Logger.Error("FAQ search failed", zap.String("query", query), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to search FAQs"})
		return
	}

	c.JSON(http.StatusOK, faq)
}

// ProactivePing handles POST /api/proactive-ping.
func (h *ChatHandler) ProactivePing(c *gin.Context) {
	var req struct {
		SessionID  string `json:"sessionId" binding:"required"`
		PromptType string `json:"promptType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "sessionId and promptType are required"})
		return
	}

	turn, err := h.Svc.ProactivePing(c.Request.Context(), req.SessionID, req.PromptType)
	if errors.Is(err, concierge.ErrNoReminderContext) {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "No relevant data found to send a '" + req.PromptType + "' reminder for this guest.",
		})
		return
	}
	if err != nil {
		h.Logger.Error("proactive ping failed", zap.String("sessionId", req.SessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send proactive ping"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Proactive message sent successfully!", "data": turn})
}
