package models

import "fmt"

// AnalysisSettings is a user's per-account analysis policy, stored in the
// 'analysis_settings' table. One row per user, created lazily with defaults.
type AnalysisSettings struct {
	UserID                  string `db:"user_id" json:"user_id"`
	MinConfidenceThreshold  int    `db:"min_confidence_threshold" json:"min_confidence_threshold"`
	AutoReportHighRisk      bool   `db:"auto_report_high_risk" json:"auto_report_high_risk"`
	ShowDetailedIndicators  bool   `db:"show_detailed_indicators" json:"show_detailed_indicators"`
	FalsePositiveProtection bool   `db:"false_positive_protection" json:"false_positive_protection"`
}

// DefaultSettings returns the settings applied to users who have never
// saved any.
func DefaultSettings(userID string) *AnalysisSettings {
	return &AnalysisSettings{
		UserID:                  userID,
		MinConfidenceThreshold:  70,
		AutoReportHighRisk:      true,
		ShowDetailedIndicators:  true,
		FalsePositiveProtection: true,
	}
}

// Validate checks the settings against their allowed ranges.
func (s *AnalysisSettings) Validate() error {
	if s.MinConfidenceThreshold < 50 || s.MinConfidenceThreshold > 95 {
		return fmt.Errorf("min_confidence_threshold must be between 50 and 95, got %d", s.MinConfidenceThreshold)
	}
	return nil
}
