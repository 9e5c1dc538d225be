// projects.go handles project CRUD endpoints.
package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/egremy-digital/social-engine-api/internal/database"
	"github.com/egremy-digital/social-engine-api/internal/middleware"
	"github.com/egremy-digital/social-engine-api/internal/models"
)

// ListProjects returns the caller's projects with per-project run counts.
// GET /api/v1/projects
func (h *Handler) ListProjects(c *gin.Context) {
	user := middleware.GetUser(c)

	projects, err := h.DB.ListProjects(c.Request.Context(), user.ID)
	if err != nil {
		log.Printf("❌ Failed to list projects: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "database_error",
			Message: "Failed to list projects",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	if projects == nil {
		projects = []models.Project{}
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// CreateProject creates a project owned by the caller.
// POST /api/v1/projects
func (h *Handler) CreateProject(c *gin.Context) {
	user := middleware.GetUser(c)

	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Project name is required",
			Code:    http.StatusBadRequest,
		})
		return
	}

	project := &models.Project{
		Name:         req.Name,
		DefaultNiche: req.DefaultNiche,
	}
	if err := h.DB.CreateProject(c.Request.Context(), project, user.ID); err != nil {
		log.Printf("❌ Failed to create project: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "database_error",
			Message: "Failed to create project",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusCreated, project)
}

// SelectProject pins a project as the active one for the caller's
// generation flow.
// POST /api/v1/projects/:id/select
func (h *Handler) SelectProject(c *gin.Context) {
	user := middleware.GetUser(c)
	projectID := c.Param("id")

	project, err := h.DB.GetProject(c.Request.Context(), projectID, user.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "Project not found",
			Code:    http.StatusNotFound,
		})
		return
	}

	h.Workflow.SelectProject(user.ID, project.ID)
	c.JSON(http.StatusOK, project)
}

// DeleteProject removes a project along with its runs and memberships. The
// three deletions run in sequence inside one transaction; if any fails,
// nothing is removed and the caller's project list stays intact.
// DELETE /api/v1/projects/:id
func (h *Handler) DeleteProject(c *gin.Context) {
	user := middleware.GetUser(c)
	projectID := c.Param("id")

	if err := h.DB.DeleteProject(c.Request.Context(), projectID, user.ID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "not_found",
				Message: "Project not found",
				Code:    http.StatusNotFound,
			})
			return
		}
		log.Printf("❌ Failed to delete project %s: %v", projectID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "delete_failed",
			Message: "Failed to delete project; nothing was removed",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	// Drop any generation flow pinned to the deleted project.
	if st, ok := h.Workflow.Get(user.ID); ok && st.SelectedProjectID == projectID {
		h.Workflow.Clear(user.ID)
	}

	c.Status(http.StatusNoContent)
}
