// Package handlers contains HTTP handler functions for the API.
//
// Handlers are grouped on a struct (Handler) holding shared dependencies,
// injected explicitly at startup — no globals, which keeps them testable.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/egremy-digital/social-engine-api/internal/database"
	"github.com/egremy-digital/social-engine-api/internal/models"
	"github.com/egremy-digital/social-engine-api/internal/services/edge"
	"github.com/egremy-digital/social-engine-api/internal/workflow"
)

// Handler holds shared dependencies for all HTTP handlers.
type Handler struct {
	DB           *database.DB
	Edge         *edge.Client
	Workflow     *workflow.Store
	JWTSecret    string
	BriefVersion string // request serialization the generation service expects
}

// NewHandler creates a new handler with all dependencies.
func NewHandler(db *database.DB, edgeClient *edge.Client, wf *workflow.Store, jwtSecret, briefVersion string) *Handler {
	return &Handler{
		DB:           db,
		Edge:         edgeClient,
		Workflow:     wf,
		JWTSecret:    jwtSecret,
		BriefVersion: briefVersion,
	}
}

// HealthCheck returns the API health status.
// GET /api/v1/health
func (h *Handler) HealthCheck(c *gin.Context) {
	// Check database connectivity
	dbStatus := "healthy"
	if err := h.DB.HealthCheck(c.Request.Context()); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	c.JSON(http.StatusOK, models.HealthResponse{
		Status:   "ok",
		Version:  "1.0.0",
		Database: dbStatus,
	})
}
