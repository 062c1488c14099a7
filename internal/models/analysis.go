package models

import "time"

// RiskLevel is the three-band risk classification produced by the classifier.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Valid reports whether the value is one of the known risk bands.
func (r RiskLevel) Valid() bool {
	return r == RiskLow || r == RiskMedium || r == RiskHigh
}

// ConfidenceLevel expresses how certain the classifier is of its verdict.
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

func (c ConfidenceLevel) Valid() bool {
	return c == ConfidenceLow || c == ConfidenceMedium || c == ConfidenceHigh
}

// AnalysisStatus is the lifecycle state of a stored analysis.
type AnalysisStatus string

const (
	StatusNew      AnalysisStatus = "new"
	StatusReviewed AnalysisStatus = "reviewed"
	StatusSafe     AnalysisStatus = "safe"
	StatusReported AnalysisStatus = "reported"
)

func (s AnalysisStatus) Valid() bool {
	return s == StatusNew || s == StatusReviewed || s == StatusSafe || s == StatusReported
}

// Verdict is the classifier's structured judgment about one piece of content.
// Score is 0-100 and loosely banded: 0-39 low, 40-79 medium, 80-100 high.
type Verdict struct {
	Score       int             `json:"score"`
	RiskLevel   RiskLevel       `json:"riskLevel"`
	Explanation string          `json:"explanation"`
	Confidence  ConfidenceLevel `json:"confidenceLevel"`
}

// Analysis is one persisted analysis result, stored in the 'analyses' table.
// Rows are immutable after insert except for explicit status updates.
type Analysis struct {
	ID          string          `db:"id" json:"id"`
	UserID      string          `db:"user_id" json:"user_id"`
	UserEmail   string          `db:"user_email" json:"user_email"`
	Message     string          `db:"message" json:"message"`
	Score       int             `db:"score" json:"score"`
	RiskLevel   RiskLevel       `db:"risk_level" json:"risk_level"`
	Explanation string          `db:"explanation" json:"explanation"`
	Confidence  ConfidenceLevel `db:"confidence_level" json:"confidence_level"`
	Status      AnalysisStatus  `db:"status" json:"status"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// AnalysisStats aggregates one user's analyses for the dashboard.
type AnalysisStats struct {
	TotalDetected int `db:"total_detected" json:"totalDetected"`
	HighRisk      int `db:"high_risk" json:"highRisk"`
	MediumRisk    int `db:"medium_risk" json:"mediumRisk"`
	LowRisk       int `db:"low_risk" json:"lowRisk"`
	TotalReported int `db:"total_reported" json:"totalReported"`
	TotalSafe     int `db:"total_safe" json:"totalSafe"`
}
