// normalize.go resolves the remote response's shape once (structured vs
// legacy markdown) and builds the canonical GenerationResult. The rest of
// the application never inspects raw responses.
package script

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/egremy-digital/social-engine-api/internal/models"
)

// ScreenText accepts both the v4 array form and the v6 object form of the
// production pack's on-screen text.
type ScreenText struct {
	Items      []string
	TopSafe    string
	CenterMain string
	BottomCTA  string
}

// UnmarshalJSON resolves the array/object union at decode time.
func (s *ScreenText) UnmarshalJSON(b []byte) error {
	var items []string
	if err := json.Unmarshal(b, &items); err == nil {
		s.Items = items
		return nil
	}
	var obj struct {
		TopSafe    string `json:"top_safe"`
		CenterMain string `json:"center_main"`
		BottomCTA  string `json:"bottom_cta"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	s.TopSafe = obj.TopSafe
	s.CenterMain = obj.CenterMain
	s.BottomCTA = obj.BottomCTA
	return nil
}

// Flatten renders the object form as labeled lines; the array form passes
// through untouched.
func (s ScreenText) Flatten() []string {
	if s.Items != nil {
		return s.Items
	}
	var out []string
	if s.TopSafe != "" {
		out = append(out, "[TOP] "+s.TopSafe)
	}
	if s.CenterMain != "" {
		out = append(out, "[CENTER] "+s.CenterMain)
	}
	if s.BottomCTA != "" {
		out = append(out, "[BOTTOM] "+s.BottomCTA)
	}
	return out
}

// RawProductionPack is the production pack as returned by the service,
// before field-name reconciliation (b_roll vs b_roll_suggestions).
type RawProductionPack struct {
	ScreenText       *ScreenText `json:"screen_text"`
	CutRhythm        string      `json:"cut_rhythm"`
	VisualStyle      string      `json:"visual_style"`
	BRoll            []string    `json:"b_roll"`
	BRollSuggestions []string    `json:"b_roll_suggestions"`
	MusicMood        string      `json:"music_mood"`
}

// RawSEOPack is the SEO pack as returned by the service. v6 renamed
// audio_keywords to spoken_keywords and added caption_frontloaded.
type RawSEOPack struct {
	Caption            string   `json:"caption"`
	CaptionFrontloaded string   `json:"caption_frontloaded"`
	Hashtags           []string `json:"hashtags"`
	AltText            string   `json:"alt_text"`
	AudioKeywords      []string `json:"audio_keywords"`
	SpokenKeywords     []string `json:"spoken_keywords"`
	BestPostingTime    string   `json:"best_posting_time"`
}

// RawABVariants tolerates both naming generations for A/B copy.
type RawABVariants struct {
	HookVariant string `json:"hook_variant"`
	HookB       string `json:"hook_b"`
	CTAVariant  string `json:"cta_variant"`
	CTAB        string `json:"cta_b"`
}

// HookSelection is the knowledge-pack endpoint's record of which hook it
// chose and adapted.
type HookSelection struct {
	SelectedHookID string `json:"selected_hook_id"`
	OriginalHook   string `json:"original_hook"`
	AdaptedHook    string `json:"adapted_hook"`
	HookScore      int    `json:"hook_score"`
	HookAttempts   int    `json:"hook_attempts"`
}

// Evaluation is the legacy per-stage score object.
type Evaluation struct {
	HookStrength  int      `json:"hook_strength"`
	PSPStructure  int      `json:"psp_structure"`
	Shareability  int      `json:"shareability"`
	SEOCompliance int      `json:"seo_compliance"`
	Total         int      `json:"total"`
	Notes         []string `json:"notes"`
}

// Stage is one generation pass in the legacy shape: the raw markdown script
// plus its evaluation.
type Stage struct {
	Rewritten    bool        `json:"rewritten"`
	RewriteCount int         `json:"rewrite_count"`
	Script       string      `json:"script"`
	Evaluation   *Evaluation `json:"evaluation"`
}

// Response is the remote generation response, both shapes overlaid. A
// structured response carries ScriptPSP/ProductionPack/SEOPack; a legacy one
// carries only Final.Script markdown. Shape resolution happens exactly once,
// in Normalize.
type Response struct {
	Error string `json:"error,omitempty"`

	RunID            string                   `json:"run_id"`
	AIModelUsed      string                   `json:"ai_model_used"`
	RiskLevelApplied string                   `json:"risk_level_applied"`
	Version          string                   `json:"version"`
	QualityScore     *int                     `json:"quality_score"`
	QualityPassed    *bool                    `json:"quality_passed"`
	QualityBreakdown *models.QualityBreakdown `json:"quality_breakdown"`
	Rewrites         int                      `json:"rewrites_performed"`
	ObjectivePilar   string                   `json:"objective_pilar"`
	Tono             string                   `json:"tono"`

	Hook          *models.SelectedHook   `json:"hook"`
	HookSelection *HookSelection         `json:"hook_selection"`
	Suggested     []models.SuggestedHook `json:"suggested_hooks"`

	ScriptPSP      *models.ScriptPSP  `json:"script_psp"`
	ProductionPack *RawProductionPack `json:"production_pack"`
	SEOPack        *RawSEOPack        `json:"seo_pack"`
	AdvancedOpts   []string           `json:"advanced_optimizations"`
	ABTestVariants *RawABVariants     `json:"ab_test_variants"`

	Initial *Stage `json:"initial"`
	Final   *Stage `json:"final"`

	ConfigUsed *struct {
		Version string `json:"version"`
	} `json:"config_used"`

	// Multi-variant collections wrap N candidate responses.
	Variants []Response `json:"variants"`
}

// IsStructured reports whether the response already carries typed beats.
func (r *Response) IsStructured() bool {
	return r.ScriptPSP != nil
}

// Normalize builds the canonical record from a single response. Structured
// fields pass through unchanged (trusted); the legacy markdown goes through
// the fallback parser with time windows derived purely from the duration
// bucket. Every required field ends up populated.
func Normalize(r *Response, duration models.Duration, formato, domainTag string) models.GenerationResult {
	out := models.GenerationResult{
		RunID:             r.RunID,
		AIModelUsed:       r.AIModelUsed,
		RiskLevelApplied:  r.RiskLevelApplied,
		Version:           r.Version,
		QualityScore:      r.QualityScore,
		QualityPassed:     r.QualityPassed,
		QualityBreakdown:  r.QualityBreakdown,
		RewritesPerformed: r.Rewrites,
		ObjectivePilar:    r.ObjectivePilar,
		Tono:              r.Tono,
		AdvancedOpts:      r.AdvancedOpts,
	}

	if out.RunID == "" {
		out.RunID = uuid.NewString()
	}
	if out.Version == "" && r.ConfigUsed != nil {
		out.Version = r.ConfigUsed.Version
	}
	if out.AIModelUsed == "" {
		out.AIModelUsed = "—"
	}
	if out.RiskLevelApplied == "" {
		out.RiskLevelApplied = "—"
	}

	out.Hook = resolveHook(r, domainTag)
	out.ABTestVariants = resolveABVariants(r.ABTestVariants)

	if r.IsStructured() {
		out.ScriptPSP = *r.ScriptPSP
		out.ProductionPack = resolveProduction(r.ProductionPack)
		out.SEOPack = resolveSEO(r.SEOPack)
		return out
	}

	// Legacy shape: scrape the final markdown (fall back to the initial
	// pass if the final one is missing a script).
	var markdown string
	if r.Final != nil && r.Final.Script != "" {
		markdown = r.Final.Script
	} else if r.Initial != nil {
		markdown = r.Initial.Script
	}
	if out.QualityScore == nil && r.Final != nil && r.Final.Evaluation != nil {
		total := r.Final.Evaluation.Total
		out.QualityScore = &total
	}
	if out.RewritesPerformed == 0 && r.Final != nil {
		out.RewritesPerformed = r.Final.RewriteCount
	}

	parsed := ParseLegacyScript(markdown)
	out.ScriptPSP = buildBeats(parsed, duration)
	out.ProductionPack = legacyProduction(formato)
	out.SEOPack = legacySEO(parsed)
	return out
}

// NormalizeVariants normalizes each candidate independently, preserving the
// order the service returned (no re-sorting by score).
func NormalizeVariants(rs []Response, duration models.Duration, formato, domainTag string) []models.GenerationResult {
	out := make([]models.GenerationResult, 0, len(rs))
	for i := range rs {
		out = append(out, Normalize(&rs[i], duration, formato, domainTag))
	}
	return out
}

// buildBeats assembles the four beats from parsed text. Time windows come
// exclusively from the duration mapping; missing beat text degrades to the
// documented placeholders so no field is ever absent.
func buildBeats(p ParsedScript, duration models.Duration) models.ScriptPSP {
	w := WindowsFor(duration)

	psp := models.ScriptPSP{
		Hook:     models.Beat{Time: w.Hook, Text: p.Hook},
		Problem:  models.Beat{Time: w.Problem, Text: p.Problem},
		Solution: models.Beat{Time: w.Solution, Text: p.Solution},
		ProofCTA: models.ProofCTABeat{Time: w.ProofCTA, Proof: p.Proof, CTA: p.CTA},
	}
	if psp.Hook.Text == "" {
		psp.Hook.Text = PlaceholderHook
	}
	if psp.Problem.Text == "" {
		psp.Problem.Text = PlaceholderProblem
	}
	if psp.Solution.Text == "" {
		psp.Solution.Text = PlaceholderSolution
	}
	if psp.ProofCTA.Proof == "" {
		psp.ProofCTA.Proof = PlaceholderProof
	}
	if psp.ProofCTA.CTA == "" {
		psp.ProofCTA.CTA = DefaultCTA
	}
	return psp
}

func resolveHook(r *Response, domainTag string) models.SelectedHook {
	if r.Hook != nil {
		return *r.Hook
	}
	if r.HookSelection != nil {
		text := r.HookSelection.AdaptedHook
		if text == "" {
			text = r.HookSelection.OriginalHook
		}
		return models.SelectedHook{
			Code:     r.HookSelection.SelectedHookID,
			Text:     text,
			Category: domainTag,
		}
	}
	return models.SelectedHook{Code: "KP", Text: PlaceholderHook, Category: domainTag}
}

func resolveProduction(raw *RawProductionPack) models.ProductionPack {
	if raw == nil {
		return legacyProduction("")
	}
	pack := models.ProductionPack{
		ScreenText:       []string{},
		CutRhythm:        raw.CutRhythm,
		VisualStyle:      raw.VisualStyle,
		BRollSuggestions: raw.BRollSuggestions,
		MusicMood:        raw.MusicMood,
	}
	if raw.ScreenText != nil {
		pack.ScreenText = raw.ScreenText.Flatten()
	}
	if raw.BRoll != nil {
		pack.BRollSuggestions = raw.BRoll
	}
	if pack.BRollSuggestions == nil {
		pack.BRollSuggestions = []string{}
	}
	if pack.CutRhythm == "" {
		pack.CutRhythm = "—"
	}
	if pack.VisualStyle == "" {
		pack.VisualStyle = "—"
	}
	return pack
}

func resolveSEO(raw *RawSEOPack) models.SEOPack {
	if raw == nil {
		return legacySEO(ParsedScript{})
	}
	caption := raw.CaptionFrontloaded
	if caption == "" {
		caption = raw.Caption
	}
	keywords := raw.SpokenKeywords
	if keywords == nil {
		keywords = raw.AudioKeywords
	}
	if keywords == nil {
		keywords = []string{}
	}
	hashtags := raw.Hashtags
	if hashtags == nil {
		hashtags = []string{}
	}
	altText := raw.AltText
	if altText == "" {
		altText = synthesizeAltText(caption)
	}
	return models.SEOPack{
		Caption:         caption,
		Hashtags:        hashtags,
		AltText:         altText,
		SpokenKeywords:  keywords,
		BestPostingTime: raw.BestPostingTime,
	}
}

// legacyProduction synthesizes a displayable production pack for responses
// that never carried one; the video format tag is the only real signal.
func legacyProduction(formato string) models.ProductionPack {
	style := "—"
	if formato != "" {
		style = formato
	}
	return models.ProductionPack{
		ScreenText:       []string{},
		CutRhythm:        "—",
		VisualStyle:      style,
		BRollSuggestions: []string{},
	}
}

func legacySEO(p ParsedScript) models.SEOPack {
	hashtags := p.Hashtags
	if len(hashtags) == 0 {
		hashtags = append([]string(nil), defaultHashtags...)
	}
	keywords := p.Keywords
	if len(keywords) == 0 {
		keywords = append([]string(nil), defaultKeywords...)
	}
	return models.SEOPack{
		Caption:        p.Caption,
		Hashtags:       hashtags,
		AltText:        synthesizeAltText(p.Caption),
		SpokenKeywords: keywords,
	}
}

// synthesizeAltText derives alt text from the first 60 characters of the
// caption. An empty caption yields empty alt text.
func synthesizeAltText(caption string) string {
	runes := []rune(caption)
	if len(runes) > 60 {
		runes = runes[:60]
	}
	return string(runes)
}

func resolveABVariants(raw *RawABVariants) *models.ABTestVariants {
	if raw == nil {
		return nil
	}
	hook := raw.HookVariant
	if hook == "" {
		hook = raw.HookB
	}
	cta := raw.CTAVariant
	if cta == "" {
		cta = raw.CTAB
	}
	if hook == "" && cta == "" {
		return nil
	}
	return &models.ABTestVariants{HookVariant: hook, CTAVariant: cta}
}
