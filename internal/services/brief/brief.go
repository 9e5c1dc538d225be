// Package brief validates generation briefs and serializes them into the
// request shapes the generation service accepts. Two wire shapes exist: the
// legacy flat object and the v2 envelope that groups fields under
// content/objective/format with a version tag.
package brief

import (
	"fmt"
	"strings"

	"github.com/egremy-digital/social-engine-api/internal/models"
)

// Serialization versions.
const (
	VersionLegacy = "legacy"
	VersionV2     = "v2"
)

// ValidationError reports which required field is missing.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required field %q is empty", e.Field)
}

// Validate checks the two required free-text fields. All other brief fields
// are enums with server-side defaults, so only niche and pillar can block a
// submission.
func Validate(b *models.Brief) error {
	if strings.TrimSpace(b.Niche) == "" {
		return &ValidationError{Field: "niche"}
	}
	if strings.TrimSpace(b.Pillar) == "" {
		return &ValidationError{Field: "pillar"}
	}
	return nil
}

// LegacyPayload is the flat request shape: brief fields spread directly at
// the top level next to the project id and, when present, the chosen hook.
type LegacyPayload struct {
	ProjectID        string `json:"project_id"`
	SelectedHookCode string `json:"selected_hook_code,omitempty"`

	Niche          string `json:"niche"`
	Pillar         string `json:"pillar"`
	Objective      string `json:"objective"`
	ObjectivePilar string `json:"objective_pilar,omitempty"`
	Awareness      string `json:"awareness"`
	Duration       string `json:"duration"`
	Platform       string `json:"platform"`
	Language       string `json:"language"`
	CTADest        string `json:"cta_dest"`
	RiskLevel      string `json:"risk_level"`
	Tono           string `json:"tono,omitempty"`
	FormatoVideo   string `json:"formato_video,omitempty"`
}

// V2Payload is the versioned envelope shape.
type V2Payload struct {
	Version          string  `json:"version"`
	ProjectID        string  `json:"project_id"`
	SelectedHookCode string  `json:"selected_hook_code,omitempty"`
	Brief            V2Brief `json:"brief"`
}

// V2Brief groups the brief fields by concern.
type V2Brief struct {
	Content   V2Content   `json:"content"`
	Objective V2Objective `json:"objective"`
	Format    V2Format    `json:"format"`
}

type V2Content struct {
	Niche    string `json:"niche"`
	Pillar   string `json:"pillar"`
	Language string `json:"language"`
	Tono     string `json:"tono,omitempty"`
}

type V2Objective struct {
	Objective      string `json:"objective"`
	ObjectivePilar string `json:"objective_pilar,omitempty"`
	Awareness      string `json:"awareness"`
	CTADest        string `json:"cta_dest"`
	RiskLevel      string `json:"risk_level"`
}

type V2Format struct {
	Duration     string `json:"duration"`
	Platform     string `json:"platform"`
	FormatoVideo string `json:"formato_video,omitempty"`
}

// Serialize renders the brief in the requested wire shape. The hook code is
// empty on the first (hook-suggestion) call and set on the second
// (script-generation) call; omitempty keeps it off the wire when absent.
func Serialize(version string, b *models.Brief, projectID, selectedHookCode string) (any, error) {
	switch version {
	case VersionLegacy, "":
		return &LegacyPayload{
			ProjectID:        projectID,
			SelectedHookCode: selectedHookCode,
			Niche:            b.Niche,
			Pillar:           b.Pillar,
			Objective:        string(b.Objective),
			ObjectivePilar:   string(b.ObjectivePilar),
			Awareness:        string(b.Awareness),
			Duration:         string(b.Duration),
			Platform:         string(b.Platform),
			Language:         string(b.Language),
			CTADest:          b.CTADest,
			RiskLevel:        string(b.RiskLevel),
			Tono:             b.Tono,
			FormatoVideo:     b.FormatoVideo,
		}, nil
	case VersionV2, "brief":
		return &V2Payload{
			Version:          VersionV2,
			ProjectID:        projectID,
			SelectedHookCode: selectedHookCode,
			Brief: V2Brief{
				Content: V2Content{
					Niche:    b.Niche,
					Pillar:   b.Pillar,
					Language: string(b.Language),
					Tono:     b.Tono,
				},
				Objective: V2Objective{
					Objective:      string(b.Objective),
					ObjectivePilar: string(b.ObjectivePilar),
					Awareness:      string(b.Awareness),
					CTADest:        b.CTADest,
					RiskLevel:      string(b.RiskLevel),
				},
				Format: V2Format{
					Duration:     string(b.Duration),
					Platform:     string(b.Platform),
					FormatoVideo: b.FormatoVideo,
				},
			},
		}, nil
	default:
		return nil, fmt.Errorf("unknown brief serialization version %q", version)
	}
}

// KnowledgePackPayload is the richer request shape for the knowledge-pack
// endpoint: topic/audience/mode plus the full brief, flat.
type KnowledgePackPayload struct {
	Topic       string `json:"topic"`
	Platform    string `json:"platform"`
	DurationSec int    `json:"duration_sec"`
	Audience    string `json:"audience"`
	Mode        string `json:"mode"`
	BrandDomain string `json:"brand_domain"`
	Variants    int    `json:"variants"`

	Niche          string `json:"niche"`
	Pillar         string `json:"pillar"`
	Objective      string `json:"objective"`
	ObjectivePilar string `json:"objective_pilar"`
	Awareness      string `json:"awareness"`
	CTADest        string `json:"cta_dest"`
	RiskLevel      string `json:"risk_level"`
	Tono           string `json:"tono"`
	FormatoVideo   string `json:"formato_video"`
	Language       string `json:"language"`
}

// SerializeKnowledgePack builds the knowledge-pack request. The duration in
// seconds comes from the duration bucket's total, not from user input.
func SerializeKnowledgePack(b *models.Brief, topic, audience, mode, brandDomain string, durationSec, variants int) *KnowledgePackPayload {
	if variants != 3 {
		variants = 1
	}
	return &KnowledgePackPayload{
		Topic:          topic,
		Platform:       string(b.Platform),
		DurationSec:    durationSec,
		Audience:       audience,
		Mode:           mode,
		BrandDomain:    brandDomain,
		Variants:       variants,
		Niche:          b.Niche,
		Pillar:         b.Pillar,
		Objective:      string(b.Objective),
		ObjectivePilar: string(b.ObjectivePilar),
		Awareness:      string(b.Awareness),
		CTADest:        b.CTADest,
		RiskLevel:      string(b.RiskLevel),
		Tono:           b.Tono,
		FormatoVideo:   b.FormatoVideo,
		Language:       string(b.Language),
	}
}
