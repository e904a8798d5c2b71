package handlers

import (
	"net/http"
	"time"

	"verdic-backend/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterConfig collects everything the HTTP surface needs
type RouterConfig struct {
	Auth      *middleware.AuthMiddleware
	Precedent *PrecedentHandler
	Research  *ResearchHandler
	Assistant *AssistantHandler
	Cases     *CaseHandler
	Profile   *ProfileHandler
}

// NewRouter assembles the gin engine with CORS, the edge-function routes, and
// the authenticated API group.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Browser clients call these endpoints directly, so preflights must get
	// an empty 200 with permissive headers.
	r.Use(cors.New(cors.Config{
		AllowOrigins:              []string{"*"},
		AllowMethods:              []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:              []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type"},
		OptionsResponseStatusCode: http.StatusOK,
		MaxAge:                    12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Function-style routes stay at the root so existing clients keep working.
	r.POST("/case-precedents", cfg.Auth.RequireAuth(), cfg.Precedent.FindSimilarCases)
	r.POST("/legal-research", cfg.Research.Research)

	api := r.Group("/api")
	api.Use(cfg.Auth.RequireAuth())
	{
		api.POST("/cases", cfg.Cases.CreateCase)
		api.GET("/cases", cfg.Cases.ListCases)
		api.GET("/cases/:id", cfg.Cases.GetCase)
		api.PUT("/cases/:id", cfg.Cases.UpdateCase)
		api.PATCH("/cases/:id/priority", cfg.Cases.UpdatePriority)
		api.DELETE("/cases/:id", cfg.Cases.DeleteCase)

		api.GET("/backlog", cfg.Cases.Backlog)
		api.GET("/dashboard/stats", cfg.Cases.Dashboard)

		api.GET("/precedents", cfg.Research.SearchPrecedents)
		api.POST("/assistant/chat", cfg.Assistant.Chat)
		api.GET("/me", cfg.Profile.Me)
	}

	return r
}
