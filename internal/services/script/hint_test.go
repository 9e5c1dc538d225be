package script

import (
	"strings"
	"testing"

	"github.com/egremy-digital/social-engine-api/internal/models"
)

func TestWeakestDimension(t *testing.T) {
	tests := []struct {
		name      string
		breakdown *models.QualityBreakdown
		wantDim   string
	}{
		{
			name:      "nil breakdown",
			breakdown: nil,
			wantDim:   "",
		},
		{
			name: "lowest percentage wins not lowest raw score",
			// compliance 5/10 (50%) is weaker than hook 15/25 (60%)
			// even though 5 < 15 in absolute terms.
			breakdown: &models.QualityBreakdown{
				HookStrength:       15,
				PSPStructure:       25,
				ObjectiveAlignment: 20,
				SEOCompliance:      20,
				Compliance:         5,
			},
			wantDim: DimCompliance,
		},
		{
			name: "tie resolves to earlier dimension",
			breakdown: &models.QualityBreakdown{
				HookStrength:       20,
				PSPStructure:       20,
				ObjectiveAlignment: 20,
				SEOCompliance:      20,
				Compliance:         10,
			},
			wantDim: DimHookStrength,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeakestDimension(tt.breakdown)
			if tt.wantDim == "" {
				if got != nil {
					t.Errorf("WeakestDimension() = %+v, want nil", got)
				}
				return
			}
			if got == nil || got.Dimension != tt.wantDim {
				t.Errorf("WeakestDimension() = %+v, want dimension %q", got, tt.wantDim)
			}
		})
	}
}

func TestOptimizationHint(t *testing.T) {
	breakdown := &models.QualityBreakdown{
		HookStrength:       15,
		PSPStructure:       25,
		ObjectiveAlignment: 20,
		SEOCompliance:      20,
		Compliance:         10,
	}

	t.Run("perfect score yields no hint", func(t *testing.T) {
		if got := OptimizationHint(intPtr(100), breakdown); got != "" {
			t.Errorf("OptimizationHint(100) = %q, want empty", got)
		}
	})

	t.Run("nil score yields no hint", func(t *testing.T) {
		if got := OptimizationHint(nil, breakdown); got != "" {
			t.Errorf("OptimizationHint(nil) = %q, want empty", got)
		}
	})

	t.Run("imperfect score names the weakest area", func(t *testing.T) {
		got := OptimizationHint(intPtr(90), breakdown)
		if !strings.HasPrefix(got, "Optimizable:") {
			t.Errorf("hint = %q, want Optimizable prefix", got)
		}
		if !strings.Contains(got, "hook strength 60%") {
			t.Errorf("hint = %q, want area label with percentage", got)
		}
	})
}
