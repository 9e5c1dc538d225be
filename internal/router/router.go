// Package router sets up all HTTP routes for the API.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/egremy-digital/social-engine-api/internal/database"
	"github.com/egremy-digital/social-engine-api/internal/handlers"
	"github.com/egremy-digital/social-engine-api/internal/middleware"
	"github.com/egremy-digital/social-engine-api/internal/services/edge"
	"github.com/egremy-digital/social-engine-api/internal/workflow"
)

// Setup creates and configures the Gin router with all routes.
func Setup(db *database.DB, edgeClient *edge.Client, wf *workflow.Store, jwtSecret, briefVersion string, rateLimit int, allowedOrigins []string) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORS(allowedOrigins))

	h := handlers.NewHandler(db, edgeClient, wf, jwtSecret, briefVersion)
	rateLimiter := middleware.NewRateLimiter(rateLimit)

	// --- Public Routes (no auth required) ---
	r.GET("/api/v1/health", h.HealthCheck)

	// API Documentation
	r.GET("/api/docs", h.ServeSwaggerUI)
	r.GET("/api/docs/openapi.yaml", h.ServeOpenAPISpec)

	// --- Auth Routes — public ---
	r.POST("/api/v1/auth/register", h.Register)
	r.POST("/api/v1/auth/login", h.Login)
	r.POST("/api/v1/auth/reset-password", h.ResetPassword)

	// --- JWT-protected routes ---
	protected := r.Group("/api/v1")
	protected.Use(middleware.JWTAuth(db, jwtSecret))
	protected.Use(rateLimiter.RateLimit())
	{
		protected.GET("/auth/me", h.GetMe)
		protected.POST("/auth/refresh", h.RefreshToken)

		// Project endpoints
		protected.GET("/projects", h.ListProjects)
		protected.POST("/projects", h.CreateProject)
		protected.POST("/projects/:id/select", h.SelectProject)
		protected.DELETE("/projects/:id", h.DeleteProject)
		protected.GET("/projects/:id/runs", h.ListRuns)

		// Content run history
		protected.GET("/runs/:id", h.GetRun)
		protected.DELETE("/runs/:id", h.DeleteRun)

		// Generation pipeline
		protected.POST("/generate/hooks", h.GenerateHooks)
		protected.POST("/generate/script", h.GenerateScript)
		protected.POST("/generate/knowledge-pack", h.GenerateKnowledgePack)

		// Result viewing and export
		protected.GET("/result", h.GetResult)
		protected.POST("/result/variant", h.SelectVariant)
		protected.GET("/result/export", h.ExportResult)
	}

	return r
}
