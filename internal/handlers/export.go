// export.go renders the active generation result as copy-ready text blocks.
//
// The "blocks" format is teleprompter-friendly: each beat as a labeled,
// timed block, separated by horizontal rules, with the caption/SEO tail
// appended.
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/egremy-digital/social-engine-api/internal/middleware"
	"github.com/egremy-digital/social-engine-api/internal/models"
)

// ExportResult returns the active result in a copy-ready format.
// GET /api/v1/result/export?format=blocks|caption|hashtags|json
func (h *Handler) ExportResult(c *gin.Context) {
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
	result := resp.Result

	format := c.DefaultQuery("format", "blocks")
	switch format {
	case "blocks":
		c.String(http.StatusOK, ComposeBlocks(result))
	case "caption":
		c.String(http.StatusOK, ComposeCaption(result))
	case "hashtags":
		c.String(http.StatusOK, strings.Join(result.SEOPack.Hashtags, " "))
	case "json":
		c.JSON(http.StatusOK, result)
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "format must be one of: blocks, caption, hashtags, json",
			Code:    http.StatusBadRequest,
		})
	}
}

// scriptBlock is one labeled, timed section of the composed script.
type scriptBlock struct {
	label string
	time  string
	text  string
	extra string
}

// ComposeBlocks renders the full script in recording-ready blocks. Beat
// texts and time windows pass through verbatim so nothing is lost between
// the record and the copied text.
func ComposeBlocks(result *models.GenerationResult) string {
	psp := result.ScriptPSP
	solutionExtra := psp.Solution.VisualDemo
	if solutionExtra == "" {
		solutionExtra = psp.Solution.KeyInsight
	}

	blocks := []scriptBlock{
		{label: "Hook", time: psp.Hook.Time, text: psp.Hook.Text, extra: psp.Hook.VisualAction},
		{label: "Problema", time: psp.Problem.Time, text: psp.Problem.Text, extra: psp.Problem.Validation},
		{label: "Solución", time: psp.Solution.Time, text: psp.Solution.Text, extra: solutionExtra},
		{
			label: "Prueba + CTA",
			time:  psp.ProofCTA.Time,
			text:  fmt.Sprintf("Prueba: %s\nCTA: %s", psp.ProofCTA.Proof, psp.ProofCTA.CTA),
			extra: psp.ProofCTA.UrgencyElement,
		},
	}

	rendered := make([]string, 0, len(blocks))
	for _, b := range blocks {
		block := fmt.Sprintf("[%s] %s:\n%s", b.time, b.label, b.text)
		if b.extra != "" {
			block += "\n\nVisual/nota: " + b.extra
		}
		rendered = append(rendered, block)
	}

	return fmt.Sprintf(`🎬 GUION EN BLOQUES (para grabar)

%s

---

📝 CAPTION:
%s

#️⃣ HASHTAGS:
%s

🔎 ALT TEXT:
%s`,
		strings.Join(rendered, "\n\n---\n\n"),
		result.SEOPack.Caption,
		strings.Join(result.SEOPack.Hashtags, " "),
		result.SEOPack.AltText,
	)
}

// ComposeCaption renders the caption ready to paste: caption text plus the
// hashtag line.
func ComposeCaption(result *models.GenerationResult) string {
	caption := result.SEOPack.Caption
	hashtags := strings.Join(result.SEOPack.Hashtags, " ")
	if hashtags == "" {
		return caption
	}
	if caption == "" {
		return hashtags
	}
	return caption + "\n\n" + hashtags
}
