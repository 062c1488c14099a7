package policy

import (
	"fmt"
	"strings"

	"aishield/internal/models"
)

const (
	falsePositiveNote = "\n\nNote: False positive protection is enabled on your account. When confidence is not high, the risk assessment may be adjusted to reduce false positives."
	autoReportNote    = "\n\nNote: This high-risk email was automatically reported based on your settings."
	indicatorsHeading = "\n\nActive detection rules that affected this analysis:"

	// Auto-report requires a score strictly above this bar, on top of high
	// risk and high confidence. Kept at 85 rather than the high band's
	// lower bound of 80: the stricter bar is intentional for an action
	// that fires outbound notifications.
	autoReportScoreThreshold = 85
)

// Apply runs the deterministic post-processing policy over a raw classifier
// verdict and reports whether the result is auto-report eligible. It only
// adjusts RiskLevel and Score and appends to Explanation; Confidence is
// never changed. Applying it a second time to its own output is a no-op:
// every appended note is guarded, and the downgrade preconditions no longer
// hold once applied.
func Apply(v models.Verdict, settings *models.AnalysisSettings, activeRules []*models.DetectionRule) (models.Verdict, bool) {
	if settings.FalsePositiveProtection && v.Confidence != models.ConfidenceHigh {
		if !strings.Contains(v.Explanation, falsePositiveNote) {
			v.Explanation += falsePositiveNote
		}

		if v.Confidence == models.ConfidenceLow && v.RiskLevel == models.RiskHigh {
			// Downgrade into the medium band; the original score only
			// survives if it already sat inside [40, 79].
			v.RiskLevel = models.RiskMedium
			v.Score = max(40, min(v.Score, 79))
		} else if v.Confidence == models.ConfidenceMedium && v.RiskLevel == models.RiskHigh && v.Score > 90 {
			v.Score = 85
		}
	}

	autoReported := settings.AutoReportHighRisk &&
		v.RiskLevel == models.RiskHigh &&
		v.Confidence == models.ConfidenceHigh &&
		v.Score > autoReportScoreThreshold
	if autoReported && !strings.Contains(v.Explanation, autoReportNote) {
		v.Explanation += autoReportNote
	}

	if settings.ShowDetailedIndicators && len(activeRules) > 0 &&
		!strings.Contains(v.Explanation, indicatorsHeading) {
		var b strings.Builder
		b.WriteString(indicatorsHeading)
		for _, rule := range activeRules {
			fmt.Fprintf(&b, "\n- %s (%s sensitivity)", rule.Name, rule.Sensitivity)
		}
		v.Explanation += b.String()
	}

	return v, autoReported
}
