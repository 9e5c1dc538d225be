// result.go serves the active generation result and variant switching.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/egremy-digital/social-engine-api/internal/middleware"
	"github.com/egremy-digital/social-engine-api/internal/models"
	"github.com/egremy-digital/social-engine-api/internal/services/script"
)

// GetResult returns the caller's active generation result.
// GET /api/v1/result
func (h *Handler) GetResult(c *gin.Context) {
	user := middleware.GetUser(c)

	resp := h.resultResponse(user.ID)
	if resp == nil {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "conflict_state",
			Message: "No generation result available; generate a script first",
			Code:    http.StatusConflict,
		})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SelectVariant switches the active variant of a multi-variant result.
// POST /api/v1/result/variant
func (h *Handler) SelectVariant(c *gin.Context) {
	user := middleware.GetUser(c)

	var req models.SelectVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Variant index is required",
			Code:    http.StatusBadRequest,
		})
		return
	}

	st, ok := h.Workflow.Get(user.ID)
	if !ok || len(st.Results) == 0 {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "conflict_state",
			Message: "No generation result available; generate a script first",
			Code:    http.StatusConflict,
		})
		return
	}

	if !h.Workflow.SelectVariant(user.ID, req.Index) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Variant index out of range",
			Code:    http.StatusBadRequest,
		})
		return
	}

	c.JSON(http.StatusOK, h.resultResponse(user.ID))
}

// resultResponse assembles the active result plus variant bookkeeping, or
// nil when no results exist.
func (h *Handler) resultResponse(userID string) *models.ResultResponse {
	st, ok := h.Workflow.Get(userID)
	if !ok || len(st.Results) == 0 {
		return nil
	}

	active := st.Results[st.VariantIndex]
	resp := &models.ResultResponse{
		Result:       &active,
		VariantIndex: st.VariantIndex,
		Mode:         string(st.Mode),
		OptimizeHint: script.OptimizationHint(active.QualityScore, active.QualityBreakdown),
	}
	if len(st.Results) > 1 {
		resp.Variants = st.Results
	}
	return resp
}
