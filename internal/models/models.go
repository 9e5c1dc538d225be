// Package models defines the data structures used throughout the application.
//
// Go Pattern: Models are plain structs with JSON tags for serialization.
// The `db` tags work with sqlx for database column mapping; the generation
// payloads that live in JSONB columns are kept as raw JSON here and
// materialized into typed structs at the handler boundary.
package models

import (
	"encoding/json"
	"time"
)

// --- Brief enums ---
// Go Pattern: String constants instead of enums. The remote generation
// service speaks these exact values, so we never translate them.

// Objective is what the content should optimize for.
type Objective string

const (
	ObjectiveLeads     Objective = "Leads"
	ObjectiveReach     Objective = "Reach"
	ObjectiveSends     Objective = "Sends"
	ObjectiveSaves     Objective = "Saves"
	ObjectiveAuthority Objective = "Authority"
)

// Awareness is how warm the target audience is.
type Awareness string

const (
	AwarenessFrio     Awareness = "Frio"
	AwarenessTibio    Awareness = "Tibio"
	AwarenessCaliente Awareness = "Caliente"
)

// Duration is the video length bucket. Each bucket implies a fixed timing
// breakdown for the four script beats (see services/script.WindowsFor).
type Duration string

const (
	DurationShort  Duration = "7-15"
	DurationMedium Duration = "30-60"
	DurationLong   Duration = "60+"
)

// Platform is the publishing target.
type Platform string

const (
	PlatformIG   Platform = "IG"
	PlatformTT   Platform = "TT"
	PlatformBoth Platform = "BOTH"
)

// RiskLevel is the creative aggressiveness of the generated copy.
type RiskLevel string

const (
	RiskBajo  RiskLevel = "bajo"
	RiskMedio RiskLevel = "medio"
	RiskAlto  RiskLevel = "alto"
)

// Brief is the user-specified generation request. Niche and pillar are the
// only required fields; everything else has a service-side default.
// A brief is never mutated after submission — the generate flow snapshots it
// into the workflow state and replays it verbatim on the second step.
type Brief struct {
	Niche          string    `json:"niche"`
	Pillar         string    `json:"pillar"`
	Objective      Objective `json:"objective"`
	ObjectivePilar string    `json:"objective_pilar"` // watch_time, sends, seo, saves, authority
	Awareness      Awareness `json:"awareness"`
	Duration       Duration  `json:"duration"`
	Platform       Platform  `json:"platform"`
	Language       string    `json:"language"` // ES or EN
	CTADest        string    `json:"cta_dest"` // DM, WhatsApp, Link, Comentar, Seguir
	RiskLevel      RiskLevel `json:"risk_level"`
	Tono           string    `json:"tono"`
	FormatoVideo   string    `json:"formato_video"`
}

// --- Canonical Script Record ---

// Beat is one narrative segment of a generated script. Every beat always has
// a non-empty time window and text; the normalizer substitutes placeholders
// rather than leaving fields absent.
type Beat struct {
	Time string `json:"time"`
	Text string `json:"text"`
	// Beat-specific production notes. Only the ones relevant to the beat
	// position are populated; all are optional.
	VisualAction     string `json:"visual_action,omitempty"`
	PatternInterrupt string `json:"pattern_interrupt,omitempty"`
	HookType         string `json:"hook_type,omitempty"`
	Validation       string `json:"validation,omitempty"`
	Emotion          string `json:"emotion,omitempty"`
	KeyInsight       string `json:"key_insight,omitempty"`
	Analogy          string `json:"analogy,omitempty"`
	VisualDemo       string `json:"visual_demo,omitempty"`
}

// ProofCTABeat is the closing beat. Unlike the other three it carries two
// text bodies: the proof statement and the call to action.
type ProofCTABeat struct {
	Time           string `json:"time"`
	Proof          string `json:"proof"`
	CTA            string `json:"cta"`
	UrgencyElement string `json:"urgency_element,omitempty"`
	KeywordTrigger string `json:"keyword_trigger,omitempty"`
}

// ScriptPSP is the four-beat narrative structure (Problema-Solución-Prueba).
type ScriptPSP struct {
	Hook     Beat         `json:"hook"`
	Problem  Beat         `json:"problem"`
	Solution Beat         `json:"solution"`
	ProofCTA ProofCTABeat `json:"proof_cta"`
}

// ProductionPack holds filming guidance for the script.
type ProductionPack struct {
	ScreenText       []string `json:"screen_text"`
	CutRhythm        string   `json:"cut_rhythm"`
	VisualStyle      string   `json:"visual_style"`
	BRollSuggestions []string `json:"b_roll_suggestions"`
	MusicMood        string   `json:"music_mood,omitempty"`
}

// SEOPack holds discoverability metadata for the script.
type SEOPack struct {
	Caption         string   `json:"caption"`
	Hashtags        []string `json:"hashtags"`
	AltText         string   `json:"alt_text"`
	SpokenKeywords  []string `json:"spoken_keywords"`
	BestPostingTime string   `json:"best_posting_time,omitempty"`
}

// QualityBreakdown scores the script on five dimensions. The maxima are
// fixed (25/25/20/20/10) and sum to 100.
type QualityBreakdown struct {
	HookStrength       int `json:"hook_strength"`
	PSPStructure       int `json:"psp_structure"`
	ObjectiveAlignment int `json:"objective_alignment"`
	SEOCompliance      int `json:"seo_compliance"`
	Compliance         int `json:"compliance"`
}

// SelectedHook identifies which hook from the suggestion step the script
// was built around.
type SelectedHook struct {
	Code     string `json:"code"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

// ABTestVariants carries optional alternative hook/CTA copy for A/B testing.
type ABTestVariants struct {
	HookVariant string `json:"hook_variant,omitempty"`
	CTAVariant  string `json:"cta_variant,omitempty"`
}

// GenerationResult is the canonical script record: the normalized,
// always-fully-populated representation of one generation outcome. Display
// and export code only ever see this type, never the raw remote response.
// Records are immutable once built; switching variants swaps the whole record.
type GenerationResult struct {
	RunID             string            `json:"run_id"`
	AIModelUsed       string            `json:"ai_model_used"`
	RiskLevelApplied  string            `json:"risk_level_applied"`
	Version           string            `json:"version,omitempty"`
	QualityScore      *int              `json:"quality_score,omitempty"`
	QualityPassed     *bool             `json:"quality_passed,omitempty"`
	QualityBreakdown  *QualityBreakdown `json:"quality_breakdown,omitempty"`
	RewritesPerformed int               `json:"rewrites_performed,omitempty"`
	ObjectivePilar    string            `json:"objective_pilar,omitempty"`
	Tono              string            `json:"tono,omitempty"`
	Hook              SelectedHook      `json:"hook"`
	ScriptPSP         ScriptPSP         `json:"script_psp"`
	ProductionPack    ProductionPack    `json:"production_pack"`
	SEOPack           SEOPack           `json:"seo_pack"`
	AdvancedOpts      []string          `json:"advanced_optimizations,omitempty"`
	ABTestVariants    *ABTestVariants   `json:"ab_test_variants,omitempty"`
}

// SuggestedHook is one candidate hook returned by the first generation step.
type SuggestedHook struct {
	Code     string `json:"code"`
	Text     string `json:"text"`
	Category string `json:"category"`
	Tip      string `json:"tip"`
	Why      string `json:"why"`
}

// --- Persisted entities ---

// User is an authenticated account.
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // "-" means never serialize to JSON
	Name         string    `json:"name" db:"name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Project groups content runs under a client/brand.
type Project struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	DefaultNiche string    `json:"default_niche" db:"default_niche"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	// RunCount is computed per request, not stored.
	RunCount int `json:"run_count" db:"run_count"`
}

// ProjectMember links a user to a project with a role.
type ProjectMember struct {
	ProjectID string    `json:"project_id" db:"project_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ContentRun is a stored generation result. The pack columns are JSONB and
// kept as raw JSON here; reconstruction into a GenerationResult (with
// defaults for rows that predate newer columns) happens in the runs handler.
type ContentRun struct {
	ID               string          `json:"id" db:"id"`
	ProjectID        string          `json:"project_id" db:"project_id"`
	Niche            string          `json:"niche" db:"niche"`
	Pillar           string          `json:"pillar" db:"pillar"`
	Objective        string          `json:"objective" db:"objective"`
	Platform         string          `json:"platform" db:"platform"`
	SelectedHookCode string          `json:"selected_hook_code" db:"selected_hook_code"`
	ScriptPSP        json.RawMessage `json:"script_psp" db:"script_psp"`
	ProductionPack   json.RawMessage `json:"production_pack,omitempty" db:"production_pack"`
	SEOPack          json.RawMessage `json:"seo_pack,omitempty" db:"seo_pack"`
	AdvancedOpts     json.RawMessage `json:"advanced_optimizations,omitempty" db:"advanced_optimizations"`
	ABTestVariants   json.RawMessage `json:"ab_test_variants,omitempty" db:"ab_test_variants"`
	Hook             json.RawMessage `json:"hook,omitempty" db:"hook"`
	AIModelUsed      *string         `json:"ai_model_used,omitempty" db:"ai_model_used"`
	RiskLevelApplied *string         `json:"risk_level_applied,omitempty" db:"risk_level_applied"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
}

// --- Request/Response DTOs ---
// Go Pattern: Separate structs for API input/output vs database models.
// This keeps the API contract independent of the database schema.

// RegisterRequest is the JSON body for POST /api/v1/auth/register.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

// LoginRequest is the JSON body for POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ResetPasswordRequest is the JSON body for POST /api/v1/auth/reset-password.
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

// AuthResponse is returned by register, login and refresh.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CreateProjectRequest is the JSON body for POST /api/v1/projects.
type CreateProjectRequest struct {
	Name         string `json:"name" binding:"required"`
	DefaultNiche string `json:"default_niche,omitempty"`
}

// GenerateHooksRequest is the JSON body for POST /api/v1/generate/hooks.
// It embeds the Brief; niche/pillar validation happens in the brief service
// so the rule is shared with the knowledge-pack flow.
type GenerateHooksRequest struct {
	Brief
}

// GenerateScriptRequest selects one of the previously suggested hooks.
type GenerateScriptRequest struct {
	SelectedHookCode string `json:"selected_hook_code" binding:"required"`
}

// KnowledgePackRequest is the JSON body for POST /api/v1/generate/knowledge-pack.
type KnowledgePackRequest struct {
	Brief
	Topic       string `json:"topic"`
	Audience    string `json:"audience"`
	Mode        string `json:"mode"`
	BrandDomain string `json:"brand_domain"`
	Variants    int    `json:"variants"` // 1 or 3
}

// SelectVariantRequest pins one of the generated variants as the active result.
type SelectVariantRequest struct {
	Index int `json:"index"`
}

// ResultResponse is the active generation result plus variant bookkeeping.
type ResultResponse struct {
	Result       *GenerationResult  `json:"result"`
	Variants     []GenerationResult `json:"variants,omitempty"`
	VariantIndex int                `json:"variant_index"`
	Mode         string             `json:"mode"`
	OptimizeHint string             `json:"optimization_hint,omitempty"`
}

// ErrorResponse is a standard error format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database string `json:"database"`
}
