// export_test.go — Tests for the copy-format composition. The key property:
// composing the blocks text loses no information — every beat text and time
// window from the record appears verbatim in the output.
package handlers

import (
	"strings"
	"testing"

	"github.com/egremy-digital/social-engine-api/internal/models"
)

func sampleResult() *models.GenerationResult {
	return &models.GenerationResult{
		RunID: "run-1",
		ScriptPSP: models.ScriptPSP{
			Hook:     models.Beat{Time: "0-3s", Text: "Hook de prueba", VisualAction: "primer plano"},
			Problem:  models.Beat{Time: "3-8s", Text: "Problema de prueba", Validation: "te pasa a ti también"},
			Solution: models.Beat{Time: "8-35s", Text: "Solución de prueba", KeyInsight: "el insight"},
			ProofCTA: models.ProofCTABeat{Time: "35-45s", Proof: "30 marcas lo usan", CTA: "comparte este video"},
		},
		SEOPack: models.SEOPack{
			Caption:  "Caption de prueba",
			Hashtags: []string{"#uno", "#dos"},
			AltText:  "Alt de prueba",
		},
	}
}

func TestComposeBlocks_RoundTrip(t *testing.T) {
	result := sampleResult()
	out := ComposeBlocks(result)

	// Every beat's time window and text must survive composition verbatim.
	for _, want := range []string{
		"[0-3s] Hook:", "Hook de prueba",
		"[3-8s] Problema:", "Problema de prueba",
		"[8-35s] Solución:", "Solución de prueba",
		"[35-45s] Prueba + CTA:",
		"Prueba: 30 marcas lo usan",
		"CTA: comparte este video",
		"Caption de prueba",
		"#uno #dos",
		"Alt de prueba",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("composed blocks missing %q\n%s", want, out)
		}
	}
}

func TestComposeBlocks_ExtrasAndSeparators(t *testing.T) {
	result := sampleResult()
	out := ComposeBlocks(result)

	if !strings.Contains(out, "Visual/nota: primer plano") {
		t.Error("hook visual action should render as a Visual/nota line")
	}
	// Solution has no visual demo, so the key insight is the fallback note.
	if !strings.Contains(out, "Visual/nota: el insight") {
		t.Error("solution key insight should render when visual demo is absent")
	}
	// Three separators join the four beat blocks; a fourth closes the
	// script section before the caption/SEO tail.
	if got := strings.Count(out, "\n\n---\n\n"); got != 4 {
		t.Errorf("separator count = %d, want 4", got)
	}
	if !strings.Contains(out, "\n\n---\n\n📝 CAPTION:") {
		t.Errorf("caption tail should follow the closing rule:\n%s", out)
	}
}

func TestComposeBlocks_NoExtraLineWhenEmpty(t *testing.T) {
	result := sampleResult()
	result.ScriptPSP.Hook.VisualAction = ""
	result.ScriptPSP.Problem.Validation = ""
	result.ScriptPSP.Solution.KeyInsight = ""
	out := ComposeBlocks(result)

	if strings.Count(out, "Visual/nota:") != 0 {
		t.Errorf("no Visual/nota lines expected when extras are empty:\n%s", out)
	}
}

func TestComposeCaption(t *testing.T) {
	tests := []struct {
		name     string
		caption  string
		hashtags []string
		want     string
	}{
		{
			name:     "caption plus hashtags",
			caption:  "Mi caption",
			hashtags: []string{"#a", "#b"},
			want:     "Mi caption\n\n#a #b",
		},
		{
			name:    "caption only",
			caption: "Mi caption",
			want:    "Mi caption",
		},
		{
			name:     "hashtags only",
			hashtags: []string{"#a"},
			want:     "#a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := &models.GenerationResult{
				SEOPack: models.SEOPack{Caption: tt.caption, Hashtags: tt.hashtags},
			}
			if got := ComposeCaption(result); got != tt.want {
				t.Errorf("ComposeCaption() = %q, want %q", got, tt.want)
			}
		})
	}
}
