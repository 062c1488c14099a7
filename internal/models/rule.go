package models

import "time"

// RuleType is the closed set of detection categories a rule can belong to.
// The policy composer switches exhaustively over these values, so adding a
// category means adding a constant here and a fragment there.
type RuleType string

const (
	RuleAIContent   RuleType = "ai_content"
	RuleDomainSpoof RuleType = "domain_spoof"
	RuleURLs        RuleType = "urls"
	RuleUrgency     RuleType = "urgency"
	RuleOther       RuleType = "other"
)

func (t RuleType) Valid() bool {
	switch t {
	case RuleAIContent, RuleDomainSpoof, RuleURLs, RuleUrgency, RuleOther:
		return true
	}
	return false
}

// Sensitivity controls how aggressively a rule's heuristic is expressed
// to the classifier.
type Sensitivity string

const (
	SensitivityLow    Sensitivity = "low"
	SensitivityMedium Sensitivity = "medium"
	SensitivityHigh   Sensitivity = "high"
)

func (s Sensitivity) Valid() bool {
	return s == SensitivityLow || s == SensitivityMedium || s == SensitivityHigh
}

// DetectionRule is a user-toggleable detection category stored in the
// 'detection_rules' table.
type DetectionRule struct {
	ID          string      `db:"id" json:"id"`
	UserID      string      `db:"user_id" json:"user_id"`
	Name        string      `db:"name" json:"name"`
	Description string      `db:"description" json:"description"`
	RuleType    RuleType    `db:"rule_type" json:"rule_type"`
	Enabled     bool        `db:"enabled" json:"enabled"`
	Sensitivity Sensitivity `db:"sensitivity" json:"sensitivity"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
}

// DefaultRules returns the rule set used when a user has not configured any.
// One rule per concrete category, all enabled; domain spoofing defaults to
// high sensitivity, the rest to medium.
func DefaultRules() []*DetectionRule {
	return []*DetectionRule{
		{
			Name:        "AI Content Detection",
			Description: "Detect AI-generated phishing content",
			RuleType:    RuleAIContent,
			Enabled:     true,
			Sensitivity: SensitivityMedium,
		},
		{
			Name:        "Domain Spoofing Detection",
			Description: "Detect domains that look similar to legitimate ones",
			RuleType:    RuleDomainSpoof,
			Enabled:     true,
			Sensitivity: SensitivityHigh,
		},
		{
			Name:        "Suspicious URL Analysis",
			Description: "Analyze URLs for phishing indicators",
			RuleType:    RuleURLs,
			Enabled:     true,
			Sensitivity: SensitivityMedium,
		},
		{
			Name:        "Urgency Detection",
			Description: "Detect messages creating false urgency",
			RuleType:    RuleUrgency,
			Enabled:     true,
			Sensitivity: SensitivityMedium,
		},
	}
}
