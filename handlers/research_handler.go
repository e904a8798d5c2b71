package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"verdic-backend/models"
	"verdic-backend/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// precedentSearcher is the slice of the precedent repository the research
// surface needs
type precedentSearcher interface {
	Search(ctx context.Context, term string, limit int) ([]*models.Precedent, error)
}

// ResearchHandler handles the legal research endpoint and precedent search
type ResearchHandler struct {
	researchService *service.ResearchService
	precedents      precedentSearcher
	logger          *zap.Logger
}

// NewResearchHandler creates a new research handler
func NewResearchHandler(researchService *service.ResearchService, precedents precedentSearcher, logger *zap.Logger) *ResearchHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResearchHandler{
		researchService: researchService,
		precedents:      precedents,
		logger:          logger,
	}
}

// ResearchRequest represents the request body for POST /legal-research.
// Precedents is kept raw so a non-array value can be rejected with a clear
// message before any upstream call.
type ResearchRequest struct {
	Query      string          `json:"query"`
	Precedents json.RawMessage `json:"precedents"`
}

// Research handles POST /legal-research
func (h *ResearchHandler) Research(c *gin.Context) {
	var req ResearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required and must be a string"})
		return
	}

	var precedents []service.PrecedentRef
	if len(req.Precedents) > 0 && string(req.Precedents) != "null" {
		if err := json.Unmarshal(req.Precedents, &precedents); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Precedents must be an array"})
			return
		}
	}

	result, err := h.researchService.Research(c.Request.Context(), service.ResearchRequest{
		Query:      req.Query,
		Precedents: precedents,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQueryRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required and must be a string"})
		case errors.Is(err, service.ErrQueryTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Query must be under 5000 characters"})
		default:
			h.logger.Error("legal research failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred processing your request"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"insights": result.Insights})
}

// SearchPrecedents handles GET /api/precedents?q=&limit=
func (h *ResearchHandler) SearchPrecedents(c *gin.Context) {
	query := c.Query("q")
	if len(query) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_QUERY",
				"message": "Search must be at least 2 characters",
			},
		})
		return
	}
	if len(query) > 200 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_QUERY",
				"message": "Search must be less than 200 characters",
			},
		})
		return
	}

	limit := 10
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 50 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_LIMIT",
					"message": "Limit must be between 1 and 50",
				},
			})
			return
		}
		limit = n
	}

	precedents, err := h.precedents.Search(c.Request.Context(), query, limit)
	if err != nil {
		h.logger.Error("precedent search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SEARCH_FAILED",
				"message": "Failed to search precedents",
			},
		})
		return
	}

	if precedents == nil {
		precedents = []*models.Precedent{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    precedents,
	})
}
