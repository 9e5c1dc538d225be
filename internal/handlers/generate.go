// generate.go handles the three-step generation flow: request hook
// suggestions, generate a script around the chosen hook, or run the richer
// knowledge-pack endpoint directly. Workflow state carries the brief between
// the first two steps; a missing prerequisite is a 409, not a crash.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/egremy-digital/social-engine-api/internal/middleware"
	"github.com/egremy-digital/social-engine-api/internal/models"
	"github.com/egremy-digital/social-engine-api/internal/services/brief"
	"github.com/egremy-digital/social-engine-api/internal/services/edge"
	"github.com/egremy-digital/social-engine-api/internal/services/script"
	"github.com/egremy-digital/social-engine-api/internal/workflow"
)

// GenerateHooks asks the generation service for hook suggestions.
// POST /api/v1/generate/hooks
func (h *Handler) GenerateHooks(c *gin.Context) {
	user := middleware.GetUser(c)

	var req models.GenerateHooksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
			Code:    http.StatusBadRequest,
		})
		return
	}
	if err := brief.Validate(&req.Brief); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	projectID, ok := h.selectedProject(c, user.ID)
	if !ok {
		return
	}

	payload, err := brief.Serialize(h.BriefVersion, &req.Brief, projectID, "")
	if err != nil {
		log.Printf("❌ Brief serialization failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "server_error",
			Message: "Failed to build generation request",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	body, err := h.Edge.Invoke(c.Request.Context(), edge.FnGenerateContent, payload, middleware.GetAccessToken(c))
	if err != nil {
		h.writeUpstreamError(c, err)
		return
	}

	var resp script.Response
	if err := json.Unmarshal(body, &resp); err != nil {
		h.writeUpstreamError(c, edge.MissingField(edge.FnGenerateContent, "body", body))
		return
	}
	if len(resp.Suggested) == 0 {
		h.writeUpstreamError(c, edge.MissingField(edge.FnGenerateContent, "suggested_hooks", body))
		return
	}

	// Snapshot the brief: the script step replays it verbatim.
	briefCopy := req.Brief
	h.Workflow.SetHooks(user.ID, resp.Suggested, &briefCopy)

	c.JSON(http.StatusOK, gin.H{"suggested_hooks": resp.Suggested})
}

// GenerateScript generates the full script around a previously suggested hook.
// POST /api/v1/generate/script
func (h *Handler) GenerateScript(c *gin.Context) {
	user := middleware.GetUser(c)

	var req models.GenerateScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "selected_hook_code is required",
			Code:    http.StatusBadRequest,
		})
		return
	}

	st, ok := h.Workflow.Get(user.ID)
	if !ok || st.PendingBrief == nil || len(st.SuggestedHooks) == 0 {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "conflict_state",
			Message: "No pending hook suggestions; request hooks first",
			Code:    http.StatusConflict,
		})
		return
	}
	projectID, ok := h.selectedProject(c, user.ID)
	if !ok {
		return
	}

	payload, err := brief.Serialize(h.BriefVersion, st.PendingBrief, projectID, req.SelectedHookCode)
	if err != nil {
		log.Printf("❌ Brief serialization failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "server_error",
			Message: "Failed to build generation request",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	body, err := h.Edge.Invoke(c.Request.Context(), edge.FnGenerateContent, payload, middleware.GetAccessToken(c))
	if err != nil {
		h.writeUpstreamError(c, err)
		return
	}

	var resp script.Response
	if err := json.Unmarshal(body, &resp); err != nil {
		h.writeUpstreamError(c, edge.MissingField(edge.FnGenerateContent, "body", body))
		return
	}

	result := script.Normalize(&resp, st.PendingBrief.Duration, st.PendingBrief.FormatoVideo, st.PendingBrief.Niche)
	h.Workflow.SetResults(user.ID, workflow.ModeSingle, []models.GenerationResult{result})

	h.persistRun(c.Request.Context(), projectID, st.PendingBrief, req.SelectedHookCode, &result)
	h.saveDefaultNiche(user.ID, projectID, st.PendingBrief.Niche)

	c.JSON(http.StatusOK, h.resultResponse(user.ID))
}

// GenerateKnowledgePack runs the richer knowledge-pack endpoint, optionally
// requesting three variants.
// POST /api/v1/generate/knowledge-pack
func (h *Handler) GenerateKnowledgePack(c *gin.Context) {
	user := middleware.GetUser(c)

	var req models.KnowledgePackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
			Code:    http.StatusBadRequest,
		})
		return
	}
	if err := brief.Validate(&req.Brief); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	projectID, ok := h.selectedProject(c, user.ID)
	if !ok {
		return
	}

	durationSec := script.WindowsFor(req.Duration).TotalSeconds
	payload := brief.SerializeKnowledgePack(&req.Brief, req.Topic, req.Audience, req.Mode, req.BrandDomain, durationSec, req.Variants)

	body, err := h.Edge.Invoke(c.Request.Context(), edge.FnKnowledgePack, payload, middleware.GetAccessToken(c))
	if err != nil {
		h.writeUpstreamError(c, err)
		return
	}

	var resp script.Response
	if err := json.Unmarshal(body, &resp); err != nil {
		h.writeUpstreamError(c, edge.MissingField(edge.FnKnowledgePack, "body", body))
		return
	}

	var results []models.GenerationResult
	mode := workflow.ModeSingle
	if len(resp.Variants) > 0 {
		mode = workflow.ModeMultiVariant
		results = script.NormalizeVariants(resp.Variants, req.Duration, req.FormatoVideo, req.Niche)
	} else {
		results = []models.GenerationResult{
			script.Normalize(&resp, req.Duration, req.FormatoVideo, req.Niche),
		}
	}
	h.Workflow.SetResults(user.ID, mode, results)

	// Only the active (first) variant is persisted; switching variants is a
	// view operation, not a new run.
	h.persistRun(c.Request.Context(), projectID, &req.Brief, results[0].Hook.Code, &results[0])
	h.saveDefaultNiche(user.ID, projectID, req.Niche)

	c.JSON(http.StatusOK, h.resultResponse(user.ID))
}

// selectedProject fetches the workflow's pinned project id, answering 409
// when no project has been selected yet.
func (h *Handler) selectedProject(c *gin.Context, userID string) (string, bool) {
	st, ok := h.Workflow.Get(userID)
	if !ok || st.SelectedProjectID == "" {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "conflict_state",
			Message: "No project selected; select a project first",
			Code:    http.StatusConflict,
		})
		return "", false
	}
	return st.SelectedProjectID, true
}

// writeUpstreamError maps adapter failures onto the API error taxonomy.
func (h *Handler) writeUpstreamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, edge.ErrNoToken):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "unauthorized",
			Message: "No access token available for the generation service",
			Code:    http.StatusUnauthorized,
		})
	case errors.Is(err, edge.ErrMissingField):
		// Contract mismatch with the remote service, not a user problem.
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "invalid_upstream_response",
			Message: err.Error(),
			Code:    http.StatusBadGateway,
		})
	default:
		log.Printf("❌ Generation call failed: %v", err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "upstream_error",
			Message: err.Error(),
			Code:    http.StatusBadGateway,
		})
	}
}

// persistRun stores the active generation result. A storage failure is
// logged and surfaced as a warning field, never as a generation failure —
// the user already has their script.
func (h *Handler) persistRun(ctx context.Context, projectID string, b *models.Brief, hookCode string, result *models.GenerationResult) {
	run := &models.ContentRun{
		ProjectID:        projectID,
		Niche:            b.Niche,
		Pillar:           b.Pillar,
		Objective:        string(b.Objective),
		Platform:         string(b.Platform),
		SelectedHookCode: hookCode,
		ScriptPSP:        mustJSON(result.ScriptPSP),
		ProductionPack:   mustJSON(result.ProductionPack),
		SEOPack:          mustJSON(result.SEOPack),
		Hook:             mustJSON(result.Hook),
	}
	if len(result.AdvancedOpts) > 0 {
		run.AdvancedOpts = mustJSON(result.AdvancedOpts)
	}
	if result.ABTestVariants != nil {
		run.ABTestVariants = mustJSON(result.ABTestVariants)
	}
	if result.AIModelUsed != "" && result.AIModelUsed != "—" {
		run.AIModelUsed = &result.AIModelUsed
	}
	if result.RiskLevelApplied != "" && result.RiskLevelApplied != "—" {
		run.RiskLevelApplied = &result.RiskLevelApplied
	}

	if err := h.DB.CreateContentRun(ctx, run); err != nil {
		log.Printf("⚠️ Failed to store content run for project %s: %v", projectID, err)
	}
}

// saveDefaultNiche is the best-effort follow-up after a successful
// generation: if the brief's niche differs from the project default, save it
// as the new default. Failure is logged and never surfaces to the user.
func (h *Handler) saveDefaultNiche(userID, projectID, niche string) {
	if niche == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		project, err := h.DB.GetProject(ctx, projectID, userID)
		if err != nil || project.DefaultNiche == niche {
			return
		}
		if err := h.DB.UpdateProjectDefaultNiche(ctx, projectID, niche); err != nil {
			log.Printf("⚠️ Failed to save default niche for project %s: %v", projectID, err)
		}
	}()
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		// All inputs are our own structs; a marshal failure is a programming
		// error worth a loud log, not a panic in the request path.
		log.Printf("❌ Failed to marshal %T: %v", v, err)
		return json.RawMessage("null")
	}
	return b
}
