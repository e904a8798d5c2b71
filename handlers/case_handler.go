package handlers

import (
	"errors"
	"net/http"
	"time"

	"verdic-backend/middleware"
	"verdic-backend/models"
	"verdic-backend/repository"
	"verdic-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CaseHandler handles HTTP requests for case management
type CaseHandler struct {
	caseService *service.CaseService
	logger      *zap.Logger
}

// NewCaseHandler creates a new case handler
func NewCaseHandler(caseService *service.CaseService, logger *zap.Logger) *CaseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CaseHandler{caseService: caseService, logger: logger}
}

func errorEnvelope(code, message string) gin.H {
	return gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	}
}

func (h *CaseHandler) writeCaseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCaseNotFound):
		c.JSON(http.StatusNotFound, errorEnvelope("NOT_FOUND", "Case not found"))
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorEnvelope("FORBIDDEN", "You don't have permission to perform this action"))
	case errors.Is(err, service.ErrMissingCaseFields),
		errors.Is(err, service.ErrInvalidCaseType),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidPriority):
		c.JSON(http.StatusBadRequest, errorEnvelope("INVALID_REQUEST", err.Error()))
	default:
		h.logger.Error("case operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorEnvelope("INTERNAL", "Something went wrong"))
	}
}

// CreateCaseRequest represents the request body for creating a case
type CreateCaseRequest struct {
	CaseNumber     string     `json:"case_number" binding:"required"`
	Title          string     `json:"title" binding:"required"`
	Description    *string    `json:"description"`
	CaseType       string     `json:"case_type" binding:"required"`
	Priority       string     `json:"priority"`
	PetitionerName string     `json:"petitioner_name" binding:"required"`
	RespondentName string     `json:"respondent_name" binding:"required"`
	CourtName      *string    `json:"court_name"`
	FilingDate     *time.Time `json:"filing_date"`
}

// CreateCase handles POST /api/cases
func (h *CaseHandler) CreateCase(c *gin.Context) {
	var req CreateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope("INVALID_REQUEST", err.Error()))
		return
	}

	result, err := h.caseService.CreateCase(c.Request.Context(), service.CreateCaseRequest{
		CallerID:       middleware.CallerID(c),
		Role:           middleware.CallerRole(c),
		CaseNumber:     req.CaseNumber,
		Title:          req.Title,
		Description:    req.Description,
		CaseType:       models.CaseType(req.CaseType),
		Priority:       models.CasePriority(req.Priority),
		PetitionerName: req.PetitionerName,
		RespondentName: req.RespondentName,
		CourtName:      req.CourtName,
		FilingDate:     req.FilingDate,
	})
	if err != nil {
		h.writeCaseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    result,
	})
}

// ListCases handles GET /api/cases
func (h *CaseHandler) ListCases(c *gin.Context) {
	cases, err := h.caseService.ListCases(c.Request.Context(), middleware.CallerID(c), middleware.CallerRole(c))
	if err != nil {
		h.writeCaseError(c, err)
		return
	}

	if cases == nil {
		cases = []*models.Case{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cases,
	})
}

// GetCase handles GET /api/cases/:id
func (h *CaseHandler) GetCase(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope("INVALID_ID", "Invalid case ID format"))
		return
	}

	result, err := h.caseService.GetCase(c.Request.Context(), id)
	if err != nil {
		h.writeCaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// UpdateCaseRequest represents the request body for updating a case
type UpdateCaseRequest struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	Status          *string    `json:"status"`
	Priority        *string    `json:"priority"`
	CourtName       *string    `json:"court_name"`
	NextHearingDate *time.Time `json:"next_hearing_date"`
}

// UpdateCase handles PUT /api/cases/:id
func (h *CaseHandler) UpdateCase(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope("INVALID_ID", "Invalid case ID format"))
		return
	}

	var req UpdateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope("INVALID_REQUEST", err.Error()))
		return
	}

	serviceReq := service.UpdateCaseRequest{
		Role:            middleware.CallerRole(c),
		ID:              id,
		Title:           req.Title,
		Description:     req.Description,
		CourtName:       req.CourtName,
		NextHearingDate: req.NextHearingDate,
	}
	if req.Status != nil {
		status := models.CaseStatus(*req.Status)
		serviceReq.Status = &status
	}
	if req.Priority != nil {
		priority := models.CasePriority(*req.Priority)
		serviceReq.Priority = &priority
	}

	result, err := h.caseService.UpdateCase(c.Request.Context(), serviceReq)
	if err != nil {
		h.writeCaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// UpdatePriority handles PATCH /api/cases/:id/priority
func (h *CaseHandler) UpdatePriority(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope("INVALID_ID", "Invalid case ID format"))
		return
	}

	var req struct {
		Priority string `json:"priority" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope("INVALID_REQUEST", err.Error()))
		return
	}

	err = h.caseService.UpdatePriority(c.Request.Context(), middleware.CallerRole(c), id, models.CasePriority(req.Priority))
	if err != nil {
		h.writeCaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"id": id, "priority": req.Priority},
	})
}

// DeleteCase handles DELETE /api/cases/:id
func (h *CaseHandler) DeleteCase(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorEnvelope("INVALID_ID", "Invalid case ID format"))
		return
	}

	if err := h.caseService.DeleteCase(c.Request.Context(), middleware.CallerRole(c), id); err != nil {
		h.writeCaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Backlog handles GET /api/backlog
func (h *CaseHandler) Backlog(c *gin.Context) {
	filters := repository.BacklogFilters{}

	if v := c.Query("status"); v != "" {
		status := models.CaseStatus(v)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, errorEnvelope("INVALID_STATUS", "Unknown case status"))
			return
		}
		filters.Status = &status
	}
	if v := c.Query("priority"); v != "" {
		priority := models.CasePriority(v)
		if !priority.Valid() {
			c.JSON(http.StatusBadRequest, errorEnvelope("INVALID_PRIORITY", "Unknown case priority"))
			return
		}
		filters.Priority = &priority
	}

	result, err := h.caseService.Backlog(c.Request.Context(), middleware.CallerID(c), middleware.CallerRole(c), filters)
	if err != nil {
		h.writeCaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// Dashboard handles GET /api/dashboard/stats
func (h *CaseHandler) Dashboard(c *gin.Context) {
	stats, err := h.caseService.Dashboard(c.Request.Context(), middleware.CallerID(c), middleware.CallerRole(c))
	if err != nil {
		h.writeCaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}
