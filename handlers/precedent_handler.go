package handlers

import (
	"errors"
	"net/http"

	"verdic-backend/llm"
	"verdic-backend/middleware"
	"verdic-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PrecedentHandler handles the case similarity endpoint
type PrecedentHandler struct {
	precedentService *service.PrecedentService
	logger           *zap.Logger
}

// NewPrecedentHandler creates a new precedent handler
func NewPrecedentHandler(precedentService *service.PrecedentService, logger *zap.Logger) *PrecedentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PrecedentHandler{precedentService: precedentService, logger: logger}
}

// FindSimilarCasesRequest represents the request body for POST /case-precedents
type FindSimilarCasesRequest struct {
	CaseAbstract string  `json:"caseAbstract"`
	CaseID       *string `json:"caseId"`
}

// FindSimilarCases handles POST /case-precedents
func (h *PrecedentHandler) FindSimilarCases(c *gin.Context) {
	var req FindSimilarCasesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	serviceReq := service.FindSimilarCasesRequest{
		CallerID:     middleware.CallerID(c),
		Role:         middleware.CallerRole(c),
		CaseAbstract: req.CaseAbstract,
	}

	if req.CaseID != nil && *req.CaseID != "" {
		excludeID, err := uuid.Parse(*req.CaseID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid caseId format"})
			return
		}
		serviceReq.ExcludeCaseID = &excludeID
	}

	result, err := h.precedentService.FindSimilarCases(c.Request.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAbstractRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Case abstract is required"})
		case errors.Is(err, service.ErrAbstractTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Case abstract must be a string under 10000 characters"})
		case errors.Is(err, llm.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limits exceeded, please try again later."})
		case errors.Is(err, llm.ErrQuotaExhausted):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "Payment required, please add funds to your AI workspace."})
		default:
			h.logger.Error("case precedent lookup failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze case similarity"})
		}
		return
	}

	resp := gin.H{"similar_cases": result.SimilarCases}
	if result.Note != "" {
		resp["insights"] = result.Note
	}
	c.JSON(http.StatusOK, resp)
}
