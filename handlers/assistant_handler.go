package handlers

import (
	"errors"
	"net/http"

	"verdic-backend/llm"
	"verdic-backend/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AssistantHandler handles the stateless chat assistant endpoint
type AssistantHandler struct {
	assistantService *service.AssistantService
	logger           *zap.Logger
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(assistantService *service.AssistantService, logger *zap.Logger) *AssistantHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssistantHandler{assistantService: assistantService, logger: logger}
}

// ChatRequest represents the request body for POST /api/assistant/chat
type ChatRequest struct {
	Messages []llm.Message `json:"messages"`
}

// Chat handles POST /api/assistant/chat
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := h.assistantService.Chat(c.Request.Context(), service.ChatRequest{
		Messages: req.Messages,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyConversation),
			errors.Is(err, service.ErrConversationTooLong),
			errors.Is(err, service.ErrInvalidMessageRole),
			errors.Is(err, service.ErrMessageTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, llm.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limits exceeded, please try again later."})
		case errors.Is(err, llm.ErrQuotaExhausted):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "Payment required, please add funds to your AI workspace."})
		default:
			h.logger.Error("assistant chat failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred processing your request"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": result.Reply})
}
