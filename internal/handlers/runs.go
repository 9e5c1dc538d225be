// runs.go handles content-run history endpoints.
//
// Stored rows predating newer columns are reconstructed with defaults ("—",
// empty lists) so they always satisfy the canonical record shape a client
// renders from.
package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/egremy-digital/social-engine-api/internal/middleware"
	"github.com/egremy-digital/social-engine-api/internal/models"
)

// ListRuns returns a project's run history, newest first.
// GET /api/v1/projects/:id/runs
func (h *Handler) ListRuns(c *gin.Context) {
	user := middleware.GetUser(c)
	projectID := c.Param("id")

	runs, err := h.DB.ListContentRuns(c.Request.Context(), projectID, user.ID, 50)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "Project not found",
			Code:    http.StatusNotFound,
		})
		return
	}

	if runs == nil {
		runs = []models.ContentRun{}
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

// GetRun reconstructs one stored run as a canonical record for redisplay.
// GET /api/v1/runs/:id
func (h *Handler) GetRun(c *gin.Context) {
	user := middleware.GetUser(c)

	run, err := h.DB.GetContentRun(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "Content run not found",
			Code:    http.StatusNotFound,
		})
		return
	}

	c.JSON(http.StatusOK, models.ResultResponse{
		Result: reconstructRun(run),
		Mode:   "HISTORY",
	})
}

// DeleteRun removes a stored run.
// DELETE /api/v1/runs/:id
func (h *Handler) DeleteRun(c *gin.Context) {
	user := middleware.GetUser(c)

	if err := h.DB.DeleteContentRun(c.Request.Context(), c.Param("id"), user.ID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "Content run not found",
			Code:    http.StatusNotFound,
		})
		return
	}
	c.Status(http.StatusNoContent)
}

// reconstructRun builds a full canonical record from a partial stored row.
// Every field a newer row would carry gets an explicit default here, so the
// rendering contract is never violated by older rows.
func reconstructRun(run *models.ContentRun) *models.GenerationResult {
	result := &models.GenerationResult{
		RunID:            run.ID,
		AIModelUsed:      orDash(run.AIModelUsed),
		RiskLevelApplied: orDash(run.RiskLevelApplied),
		AdvancedOpts:     []string{},
	}

	if !unmarshalColumn(run.ScriptPSP, &result.ScriptPSP, run.ID, "script_psp") {
		result.ScriptPSP = models.ScriptPSP{}
	}

	if !unmarshalColumn(run.Hook, &result.Hook, run.ID, "hook") {
		result.Hook = models.SelectedHook{
			Code:     run.SelectedHookCode,
			Text:     result.ScriptPSP.Hook.Text,
			Category: "—",
		}
	}

	if !unmarshalColumn(run.ProductionPack, &result.ProductionPack, run.ID, "production_pack") {
		result.ProductionPack = models.ProductionPack{
			ScreenText:       []string{},
			CutRhythm:        "—",
			VisualStyle:      "—",
			BRollSuggestions: []string{},
		}
	}

	if !unmarshalColumn(run.SEOPack, &result.SEOPack, run.ID, "seo_pack") {
		result.SEOPack = models.SEOPack{
			Caption:        "—",
			Hashtags:       []string{},
			AltText:        "—",
			SpokenKeywords: []string{},
		}
	}

	if len(run.AdvancedOpts) > 0 {
		unmarshalColumn(run.AdvancedOpts, &result.AdvancedOpts, run.ID, "advanced_optimizations")
	}
	if len(run.ABTestVariants) > 0 {
		var ab models.ABTestVariants
		if unmarshalColumn(run.ABTestVariants, &ab, run.ID, "ab_test_variants") {
			result.ABTestVariants = &ab
		}
	}

	return result
}

// unmarshalColumn decodes a JSONB column, reporting whether usable data was
// present. A corrupt column is logged and treated as absent.
func unmarshalColumn(raw json.RawMessage, dst any, runID, column string) bool {
	if len(raw) == 0 || string(raw) == "null" {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Printf("⚠️ Run %s has corrupt %s column: %v", runID, column, err)
		return false
	}
	return true
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "—"
	}
	return *s
}
