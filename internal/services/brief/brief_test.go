package brief

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/egremy-digital/social-engine-api/internal/models"
)

func sampleBrief() *models.Brief {
	return &models.Brief{
		Niche:          "Clínica estética facial",
		Pillar:         "Tratamientos anti-edad",
		Objective:      models.ObjectiveLeads,
		ObjectivePilar: "watch_time",
		Awareness:      models.AwarenessTibio,
		Duration:       models.DurationMedium,
		Platform:       models.PlatformIG,
		Language:       "ES",
		CTADest:        "DM",
		RiskLevel:      models.RiskMedio,
		Tono:           "cercano",
		FormatoVideo:   "talking_head",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.Brief)
		wantField string
	}{
		{
			name:   "complete brief passes",
			mutate: func(b *models.Brief) {},
		},
		{
			name:      "empty niche blocks",
			mutate:    func(b *models.Brief) { b.Niche = "" },
			wantField: "niche",
		},
		{
			name:      "whitespace niche blocks",
			mutate:    func(b *models.Brief) { b.Niche = "   " },
			wantField: "niche",
		},
		{
			name:      "empty pillar blocks",
			mutate:    func(b *models.Brief) { b.Pillar = "" },
			wantField: "pillar",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := sampleBrief()
			tt.mutate(b)
			err := Validate(b)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			var verr *ValidationError
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			var ok bool
			if verr, ok = err.(*ValidationError); !ok {
				t.Fatalf("Validate() error type = %T, want *ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestSerialize_Legacy(t *testing.T) {
	payload, err := Serialize(VersionLegacy, sampleBrief(), "proj-1", "H2")
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var flat map[string]any
	if err := json.Unmarshal(raw, &flat); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// Legacy shape is flat: brief fields live at the top level.
	for key, want := range map[string]string{
		"project_id":         "proj-1",
		"selected_hook_code": "H2",
		"niche":              "Clínica estética facial",
		"pillar":             "Tratamientos anti-edad",
		"objective":          "Leads",
		"duration":           "30-60",
		"platform":           "IG",
		"risk_level":         "medio",
	} {
		if got, _ := flat[key].(string); got != want {
			t.Errorf("flat[%q] = %q, want %q", key, got, want)
		}
	}
	if _, nested := flat["brief"]; nested {
		t.Error("legacy payload must not nest fields under a brief key")
	}
}

func TestSerialize_LegacyOmitsEmptyHook(t *testing.T) {
	payload, err := Serialize(VersionLegacy, sampleBrief(), "proj-1", "")
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	raw, _ := json.Marshal(payload)
	if strings.Contains(string(raw), "selected_hook_code") {
		t.Errorf("payload should omit empty hook code: %s", raw)
	}
}

func TestSerialize_V2Envelope(t *testing.T) {
	for _, version := range []string{VersionV2, "brief"} {
		t.Run(version, func(t *testing.T) {
			payload, err := Serialize(version, sampleBrief(), "proj-1", "")
			if err != nil {
				t.Fatalf("Serialize: %v", err)
			}

			env, ok := payload.(*V2Payload)
			if !ok {
				t.Fatalf("payload type = %T, want *V2Payload", payload)
			}
			if env.Version != VersionV2 {
				t.Errorf("Version = %q, want %q", env.Version, VersionV2)
			}
			if env.Brief.Content.Niche != "Clínica estética facial" {
				t.Errorf("Content.Niche = %q", env.Brief.Content.Niche)
			}
			if env.Brief.Objective.Objective != "Leads" || env.Brief.Objective.RiskLevel != "medio" {
				t.Errorf("Objective group = %+v", env.Brief.Objective)
			}
			if env.Brief.Format.Duration != "30-60" || env.Brief.Format.Platform != "IG" {
				t.Errorf("Format group = %+v", env.Brief.Format)
			}
		})
	}
}

func TestSerialize_UnknownVersion(t *testing.T) {
	if _, err := Serialize("v99", sampleBrief(), "proj-1", ""); err == nil {
		t.Error("Serialize(v99) should fail")
	}
}

func TestSerializeKnowledgePack_VariantsClamped(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{1, 1},
		{3, 3},
		{0, 1},
		{2, 1},
		{7, 1},
	}
	for _, tt := range tests {
		got := SerializeKnowledgePack(sampleBrief(), "tema", "dueños de clínicas", "SINGLE", "egremy.com", 45, tt.in)
		if got.Variants != tt.want {
			t.Errorf("variants %d clamped to %d, want %d", tt.in, got.Variants, tt.want)
		}
	}
}
