package script

import (
	"fmt"
	"math"
	"strings"

	"github.com/egremy-digital/social-engine-api/internal/models"
)

// Quality dimension keys as reported in the breakdown.
const (
	DimHookStrength       = "hook_strength"
	DimPSPStructure       = "psp_structure"
	DimObjectiveAlignment = "objective_alignment"
	DimSEOCompliance      = "seo_compliance"
	DimCompliance         = "compliance"
)

// dimensionOrder fixes iteration order so ties resolve deterministically
// (earlier dimension wins on equal percentage).
var dimensionOrder = []string{
	DimHookStrength,
	DimPSPStructure,
	DimObjectiveAlignment,
	DimSEOCompliance,
	DimCompliance,
}

var dimensionMax = map[string]int{
	DimHookStrength:       25,
	DimPSPStructure:       25,
	DimObjectiveAlignment: 20,
	DimSEOCompliance:      20,
	DimCompliance:         10,
}

var dimensionHints = map[string]string{
	DimHookStrength:       "el hook podría ser más disruptivo con un pattern interrupt visual más fuerte en 0–1.7s.",
	DimPSPStructure:       "refuerza la emoción en el bloque Problema (dolor específico + validación humana).",
	DimObjectiveAlignment: "el CTA podría reforzar mejor el objetivo (ej. pedir envío por DM si buscas Sends).",
	DimSEOCompliance:      "agrega 1–2 keywords habladas en el audio y refuérzalas con texto en pantalla (safe zones).",
	DimCompliance:         "revisa que no haya engagement bait o claims sensibles innecesarios.",
}

// WeakDimension is the breakdown entry with the lowest fill percentage.
type WeakDimension struct {
	Dimension string
	Score     int
	Max       int
	Pct       float64
}

// WeakestDimension scans the breakdown and returns the dimension with the
// lowest score relative to its maximum, or nil when no breakdown exists.
func WeakestDimension(b *models.QualityBreakdown) *WeakDimension {
	if b == nil {
		return nil
	}
	scores := map[string]int{
		DimHookStrength:       b.HookStrength,
		DimPSPStructure:       b.PSPStructure,
		DimObjectiveAlignment: b.ObjectiveAlignment,
		DimSEOCompliance:      b.SEOCompliance,
		DimCompliance:         b.Compliance,
	}
	var weakest *WeakDimension
	for _, dim := range dimensionOrder {
		max := dimensionMax[dim]
		pct := float64(scores[dim]) / float64(max)
		if weakest == nil || pct < weakest.Pct {
			weakest = &WeakDimension{Dimension: dim, Score: scores[dim], Max: max, Pct: pct}
		}
	}
	return weakest
}

// OptimizationHint renders the improvement suggestion for a result, or ""
// when the score is already perfect or there is nothing to measure.
func OptimizationHint(score *int, b *models.QualityBreakdown) string {
	if score == nil || *score >= 100 {
		return ""
	}
	weakest := WeakestDimension(b)
	if weakest == nil {
		return ""
	}
	area := strings.ReplaceAll(weakest.Dimension, "_", " ")
	pct := int(math.Round(weakest.Pct * 100))
	return fmt.Sprintf("Optimizable: %s (Área: %s %d%%)", dimensionHints[weakest.Dimension], area, pct)
}
