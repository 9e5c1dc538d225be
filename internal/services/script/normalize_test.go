// normalize_test.go — Tests for the response normalizer: structured
// pass-through, legacy fallback parsing, field-name compatibility across
// response generations, and the placeholder guarantees.
package script

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/egremy-digital/social-engine-api/internal/models"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

// TestNormalize_StructuredPassThrough verifies idempotence: a response that
// already carries typed fields is passed through unchanged, including its
// own time windows (the duration mapping is not applied).
func TestNormalize_StructuredPassThrough(t *testing.T) {
	psp := models.ScriptPSP{
		Hook:     models.Beat{Time: "0-2s", Text: "Hook estructurado"},
		Problem:  models.Beat{Time: "2-9s", Text: "Problema estructurado"},
		Solution: models.Beat{Time: "9-40s", Text: "Solución estructurada"},
		ProofCTA: models.ProofCTABeat{Time: "40-50s", Proof: "Prueba directa", CTA: "CTA directo"},
	}
	resp := &Response{
		RunID:            "run-123",
		AIModelUsed:      "modelo-x",
		RiskLevelApplied: "medio",
		Version:          "v6",
		QualityScore:     intPtr(92),
		QualityPassed:    boolPtr(true),
		Hook:             &models.SelectedHook{Code: "H7", Text: "Hook elegido", Category: "curiosidad"},
		ScriptPSP:        &psp,
		ProductionPack: &RawProductionPack{
			ScreenText:       &ScreenText{Items: []string{"línea 1", "línea 2"}},
			CutRhythm:        "rápido",
			VisualStyle:      "talking head",
			BRollSuggestions: []string{"pantalla del dashboard"},
			MusicMood:        "enérgico",
		},
		SEOPack: &RawSEOPack{
			Caption:         "Caption directo",
			Hashtags:        []string{"#uno", "#dos"},
			AltText:         "alt directo",
			SpokenKeywords:  []string{"palabra"},
			BestPostingTime: "18:00",
		},
	}

	got := Normalize(resp, models.DurationMedium, "", "")

	if !reflect.DeepEqual(got.ScriptPSP, psp) {
		t.Errorf("ScriptPSP = %+v, want unchanged %+v", got.ScriptPSP, psp)
	}
	if got.RunID != "run-123" || got.AIModelUsed != "modelo-x" || got.Version != "v6" {
		t.Errorf("metadata altered: %+v", got)
	}
	if got.QualityScore == nil || *got.QualityScore != 92 {
		t.Errorf("QualityScore = %v, want 92", got.QualityScore)
	}
	if got.SEOPack.Caption != "Caption directo" || got.SEOPack.AltText != "alt directo" {
		t.Errorf("SEOPack altered: %+v", got.SEOPack)
	}
	if want := []string{"línea 1", "línea 2"}; !reflect.DeepEqual(got.ProductionPack.ScreenText, want) {
		t.Errorf("ScreenText = %v, want %v", got.ProductionPack.ScreenText, want)
	}
}

// TestNormalize_LegacyScenario walks the full legacy path: markdown in,
// canonical record out, with windows derived from the 30-60 bucket.
func TestNormalize_LegacyScenario(t *testing.T) {
	markdown := "[0-3s] HOOK:\nEsto es un hook\n[3-8s] PROBLEMA:\nEsto es un problema\n" +
		"[8-35s] SOLUCIÓN:\nEsto es la solución\n[35-45s] PRUEBA + CTA:\n" +
		"Prueba: lo vimos funcionar\nCTA: escríbenos por DM"

	resp := &Response{
		RunID: "legacy-1",
		Final: &Stage{Script: markdown, Evaluation: &Evaluation{Total: 78}},
	}
	got := Normalize(resp, models.DurationMedium, "", "")

	psp := got.ScriptPSP
	if psp.Hook.Time != "0-3s" || psp.Hook.Text != "Esto es un hook" {
		t.Errorf("Hook = %+v", psp.Hook)
	}
	if psp.Problem.Time != "3-8s" || psp.Problem.Text != "Esto es un problema" {
		t.Errorf("Problem = %+v", psp.Problem)
	}
	if psp.Solution.Time != "8-35s" || psp.Solution.Text != "Esto es la solución" {
		t.Errorf("Solution = %+v", psp.Solution)
	}
	if psp.ProofCTA.Time != "35-45s" {
		t.Errorf("ProofCTA.Time = %q, want 35-45s", psp.ProofCTA.Time)
	}
	if psp.ProofCTA.Proof != "lo vimos funcionar" {
		t.Errorf("Proof = %q", psp.ProofCTA.Proof)
	}
	if psp.ProofCTA.CTA != "escríbenos por DM" {
		t.Errorf("CTA = %q", psp.ProofCTA.CTA)
	}
	if got.QualityScore == nil || *got.QualityScore != 78 {
		t.Errorf("QualityScore = %v, want 78 from final evaluation", got.QualityScore)
	}
}

// TestNormalize_LegacyPlaceholders verifies the core record invariant: no
// beat is ever absent, even when the markdown yields nothing.
func TestNormalize_LegacyPlaceholders(t *testing.T) {
	resp := &Response{Final: &Stage{Script: "texto sin estructura"}}
	got := Normalize(resp, models.DurationShort, "", "")

	psp := got.ScriptPSP
	if psp.Hook.Text != PlaceholderHook {
		t.Errorf("Hook.Text = %q, want placeholder", psp.Hook.Text)
	}
	if psp.Problem.Text != PlaceholderProblem {
		t.Errorf("Problem.Text = %q, want placeholder", psp.Problem.Text)
	}
	if psp.Solution.Text != PlaceholderSolution {
		t.Errorf("Solution.Text = %q, want placeholder", psp.Solution.Text)
	}
	if psp.ProofCTA.Proof != PlaceholderProof {
		t.Errorf("Proof = %q, want placeholder", psp.ProofCTA.Proof)
	}
	if psp.ProofCTA.CTA != DefaultCTA {
		t.Errorf("CTA = %q, want default", psp.ProofCTA.CTA)
	}
	// Windows still come from the duration bucket.
	if psp.Hook.Time != "0-3s" || psp.ProofCTA.Time != "12-15s" {
		t.Errorf("windows = %q/%q, want 0-3s/12-15s", psp.Hook.Time, psp.ProofCTA.Time)
	}
	// SEO defaults for a bare legacy response.
	if !reflect.DeepEqual(got.SEOPack.Hashtags, defaultHashtags) {
		t.Errorf("Hashtags = %v, want defaults", got.SEOPack.Hashtags)
	}
	if !reflect.DeepEqual(got.SEOPack.SpokenKeywords, defaultKeywords) {
		t.Errorf("SpokenKeywords = %v, want defaults", got.SEOPack.SpokenKeywords)
	}
	if got.RunID == "" {
		t.Error("RunID should be generated when the response has none")
	}
	if got.AIModelUsed != "—" || got.RiskLevelApplied != "—" {
		t.Errorf("missing labels = %q/%q, want em dashes", got.AIModelUsed, got.RiskLevelApplied)
	}
}

// TestNormalize_PartialHeaders checks placeholder substitution hits exactly
// the missing beats and never contaminates the extracted ones.
func TestNormalize_PartialHeaders(t *testing.T) {
	markdown := "[0-3s] HOOK:\nHook real\n[8-12s] SOLUCIÓN:\nSolución real"
	resp := &Response{Final: &Stage{Script: markdown}}
	got := Normalize(resp, models.DurationShort, "", "")

	psp := got.ScriptPSP
	if psp.Hook.Text != "Hook real" {
		t.Errorf("Hook.Text = %q, want extracted text", psp.Hook.Text)
	}
	if psp.Problem.Text != PlaceholderProblem {
		t.Errorf("Problem.Text = %q, want placeholder", psp.Problem.Text)
	}
	if psp.Solution.Text != "Solución real" {
		t.Errorf("Solution.Text = %q, want extracted text", psp.Solution.Text)
	}
	if psp.ProofCTA.Proof != PlaceholderProof || psp.ProofCTA.CTA != DefaultCTA {
		t.Errorf("closing = %q/%q, want placeholders", psp.ProofCTA.Proof, psp.ProofCTA.CTA)
	}
}

// TestScreenText_Unmarshal covers the array/object union of the on-screen
// text field across response versions.
func TestScreenText_Unmarshal(t *testing.T) {
	tests := []struct {
		name string
		json string
		want []string
	}{
		{
			name: "array form passes through",
			json: `["uno", "dos"]`,
			want: []string{"uno", "dos"},
		},
		{
			name: "object form flattens to labeled lines",
			json: `{"top_safe": "arriba", "center_main": "centro", "bottom_cta": "abajo"}`,
			want: []string{"[TOP] arriba", "[CENTER] centro", "[BOTTOM] abajo"},
		},
		{
			name: "partial object skips empty slots",
			json: `{"center_main": "solo centro"}`,
			want: []string{"[CENTER] solo centro"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var st ScreenText
			if err := json.Unmarshal([]byte(tt.json), &st); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := st.Flatten(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Flatten() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestResolveSEO_CompatFields checks the newer field names win and the old
// ones still work.
func TestResolveSEO_CompatFields(t *testing.T) {
	tests := []struct {
		name         string
		raw          RawSEOPack
		wantCaption  string
		wantKeywords []string
		wantAlt      string
	}{
		{
			name: "frontloaded caption and spoken keywords win",
			raw: RawSEOPack{
				Caption:            "viejo",
				CaptionFrontloaded: "nuevo frontloaded",
				AudioKeywords:      []string{"viejo"},
				SpokenKeywords:     []string{"nuevo"},
				AltText:            "alt",
			},
			wantCaption:  "nuevo frontloaded",
			wantKeywords: []string{"nuevo"},
			wantAlt:      "alt",
		},
		{
			name: "older names still accepted",
			raw: RawSEOPack{
				Caption:       "caption viejo",
				AudioKeywords: []string{"audio"},
				AltText:       "alt",
			},
			wantCaption:  "caption viejo",
			wantKeywords: []string{"audio"},
			wantAlt:      "alt",
		},
		{
			name: "missing alt text synthesized from caption",
			raw: RawSEOPack{
				Caption: "Un caption suficientemente largo para superar los sesenta caracteres del corte",
			},
			wantCaption:  "Un caption suficientemente largo para superar los sesenta caracteres del corte",
			wantKeywords: []string{},
			wantAlt:      "Un caption suficientemente largo para superar los sesenta ca",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveSEO(&tt.raw)
			if got.Caption != tt.wantCaption {
				t.Errorf("Caption = %q, want %q", got.Caption, tt.wantCaption)
			}
			if !reflect.DeepEqual(got.SpokenKeywords, tt.wantKeywords) {
				t.Errorf("SpokenKeywords = %v, want %v", got.SpokenKeywords, tt.wantKeywords)
			}
			if got.AltText != tt.wantAlt {
				t.Errorf("AltText = %q, want %q", got.AltText, tt.wantAlt)
			}
		})
	}
}

func TestResolveABVariants(t *testing.T) {
	tests := []struct {
		name string
		raw  *RawABVariants
		want *models.ABTestVariants
	}{
		{
			name: "nil in nil out",
			raw:  nil,
			want: nil,
		},
		{
			name: "old hook_b and cta_b names",
			raw:  &RawABVariants{HookB: "hook b", CTAB: "cta b"},
			want: &models.ABTestVariants{HookVariant: "hook b", CTAVariant: "cta b"},
		},
		{
			name: "new names win over old",
			raw:  &RawABVariants{HookVariant: "nuevo", HookB: "viejo", CTAVariant: "nuevo cta"},
			want: &models.ABTestVariants{HookVariant: "nuevo", CTAVariant: "nuevo cta"},
		},
		{
			name: "all empty collapses to nil",
			raw:  &RawABVariants{},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveABVariants(tt.raw); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("resolveABVariants() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// TestNormalizeVariants verifies order preservation across candidates.
func TestNormalizeVariants(t *testing.T) {
	rs := []Response{
		{RunID: "a", Final: &Stage{Script: "[0-3s] HOOK:\nPrimero"}},
		{RunID: "b", Final: &Stage{Script: "[0-3s] HOOK:\nSegundo"}},
		{RunID: "c", Final: &Stage{Script: "[0-3s] HOOK:\nTercero"}},
	}
	got := NormalizeVariants(rs, models.DurationShort, "", "")

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, wantHook := range []string{"Primero", "Segundo", "Tercero"} {
		if got[i].ScriptPSP.Hook.Text != wantHook {
			t.Errorf("variant %d hook = %q, want %q", i, got[i].ScriptPSP.Hook.Text, wantHook)
		}
	}
}

func TestResolveHook(t *testing.T) {
	sel := &HookSelection{SelectedHookID: "H3", OriginalHook: "original", AdaptedHook: "adaptado"}
	got := resolveHook(&Response{HookSelection: sel}, "fitness")
	if got.Code != "H3" || got.Text != "adaptado" || got.Category != "fitness" {
		t.Errorf("resolveHook = %+v", got)
	}

	// Without any hook info a placeholder hook is synthesized.
	got = resolveHook(&Response{}, "fitness")
	if got.Code != "KP" || got.Text != PlaceholderHook {
		t.Errorf("resolveHook fallback = %+v", got)
	}
}
