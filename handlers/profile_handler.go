package handlers

import (
	"context"
	"net/http"

	"verdic-backend/middleware"
	"verdic-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// profileReader is the slice of the profile repository the handler needs
type profileReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	GetRole(ctx context.Context, userID uuid.UUID) (models.AppRole, error)
}

// ProfileHandler serves the authenticated caller's own profile
type ProfileHandler struct {
	profiles profileReader
	logger   *zap.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profiles profileReader, logger *zap.Logger) *ProfileHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileHandler{profiles: profiles, logger: logger}
}

// Me handles GET /api/me. The role comes from the user_roles table when a row
// exists; callers without one fall back to the role on their token.
func (h *ProfileHandler) Me(c *gin.Context) {
	callerID := middleware.CallerID(c)

	profile, err := h.profiles.GetByID(c.Request.Context(), callerID)
	if err != nil {
		c.JSON(http.StatusNotFound, errorEnvelope("NOT_FOUND", "Profile not found"))
		return
	}

	role, err := h.profiles.GetRole(c.Request.Context(), callerID)
	if err != nil {
		role = middleware.CallerRole(c)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"profile": profile,
			"role":    role,
		},
	})
}
