package policy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"aishield/internal/models"
)

func TestCompose_ZeroRulesStillComplete(t *testing.T) {
	settings := models.DefaultSettings("user-1")

	instructions := Compose(nil, settings)

	assert.NotEmpty(t, instructions)
	for _, field := range []string{"score", "riskLevel", "explanation", "confidenceLevel"} {
		assert.Contains(t, instructions, field, "Output shape must always be described")
	}
	assert.Contains(t, instructions, "Scores 80-100")
	assert.Contains(t, instructions, "Scores 0-39")
}

func TestCompose_SettingsClauses(t *testing.T) {
	tests := []struct {
		name          string
		settings      *models.AnalysisSettings
		wantFragments []string
		skipFragments []string
	}{
		{
			name:          "False positive protection adds caution clause",
			settings:      &models.AnalysisSettings{FalsePositiveProtection: true, MinConfidenceThreshold: 70},
			wantFragments: []string{"false positive protection", "at least 70% certain"},
		},
		{
			name:          "Protection disabled omits caution clause",
			settings:      &models.AnalysisSettings{FalsePositiveProtection: false, MinConfidenceThreshold: 85},
			wantFragments: []string{"at least 85% certain"},
			skipFragments: []string{"false positive protection"},
		},
		{
			name:          "Zero threshold omits confidence bar",
			settings:      &models.AnalysisSettings{FalsePositiveProtection: false},
			skipFragments: []string{"% certain", "false positive protection"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instructions := Compose(nil, tt.settings)
			for _, f := range tt.wantFragments {
				assert.Contains(t, instructions, f)
			}
			for _, f := range tt.skipFragments {
				assert.NotContains(t, instructions, f)
			}
		})
	}
}

func TestCompose_RuleFragments(t *testing.T) {
	tests := []struct {
		name     string
		ruleType models.RuleType
		want     map[models.Sensitivity]string
	}{
		{
			name:     "AI content fragments scale with sensitivity",
			ruleType: models.RuleAIContent,
			want: map[models.Sensitivity]string{
				models.SensitivityLow:    "Only flag clearly AI-generated text",
				models.SensitivityMedium: "artificially structured",
				models.SensitivityHigh:   "content that seems too perfect",
			},
		},
		{
			name:     "Domain spoofing fragments scale with sensitivity",
			ruleType: models.RuleDomainSpoof,
			want: map[models.Sensitivity]string{
				models.SensitivityLow:    "obvious domain spoofing",
				models.SensitivityMedium: "homograph attacks",
				models.SensitivityHigh:   "international character substitutions",
			},
		},
		{
			name:     "URL fragments scale with sensitivity",
			ruleType: models.RuleURLs,
			want: map[models.Sensitivity]string{
				models.SensitivityLow:    "clearly malicious URLs",
				models.SensitivityMedium: "redirection techniques",
				models.SensitivityHigh:   "URL shorteners",
			},
		},
		{
			name:     "Urgency fragments scale with sensitivity",
			ruleType: models.RuleUrgency,
			want: map[models.Sensitivity]string{
				models.SensitivityLow:    "extreme urgency language",
				models.SensitivityMedium: "time-pressure tactics",
				models.SensitivityHigh:   "sense of urgency",
			},
		},
	}

	settings := models.DefaultSettings("user-1")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for sensitivity, fragment := range tt.want {
				rules := []*models.DetectionRule{{
					Name:        "test rule",
					RuleType:    tt.ruleType,
					Enabled:     true,
					Sensitivity: sensitivity,
				}}
				instructions := Compose(rules, settings)
				assert.Contains(t, instructions, fragment)
				assert.Contains(t, instructions, string(sensitivity)+" sensitivity")
			}
		})
	}
}

func TestCompose_DisabledAndOtherRulesContributeNothing(t *testing.T) {
	settings := models.DefaultSettings("user-1")
	base := Compose(nil, settings)

	rules := []*models.DetectionRule{
		{Name: "off", RuleType: models.RuleUrgency, Enabled: false, Sensitivity: models.SensitivityHigh},
		{Name: "custom", RuleType: models.RuleOther, Enabled: true, Sensitivity: models.SensitivityHigh},
	}
	withRules := Compose(rules, settings)

	assert.Equal(t, base, withRules)
}

func TestCompose_Deterministic(t *testing.T) {
	settings := models.DefaultSettings("user-1")
	rules := models.DefaultRules()

	first := Compose(rules, settings)
	second := Compose(rules, settings)

	assert.Equal(t, first, second)
	assert.Equal(t, 4, strings.Count(first, "sensitivity):"), "One fragment per enabled concrete rule")
}
