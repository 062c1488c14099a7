// Package policy builds classifier instructions from a user's detection
// configuration and applies deterministic post-processing to the verdicts
// that come back. Both halves are pure functions so they can be tested
// without a live classifier.
package policy

import (
	"fmt"
	"strings"

	"aishield/internal/models"
)

const baseInstructions = `You are an expert in phishing email detection specializing in identifying sophisticated attacks, including AI-generated phishing attempts. Your analysis must be extremely accurate and thorough.

Analyze the provided email or message and return a JSON object with this exact structure:
{
  "score": number 0-100,
  "riskLevel": "low", "medium", or "high",
  "explanation": string with detailed analysis,
  "confidenceLevel": "low", "medium", or "high"
}

Follow these analysis guidelines:
1. Be more suspicious of emails requesting urgent action, financial transactions, password resets, or account verifications
2. Carefully analyze sender addresses for subtle misspellings, character substitutions, or unusual domains
3. Check for mismatches between display names and actual email addresses
4. Analyze URLs for suspicious patterns, redirects, or unusual domains
5. Consider language patterns that seem generic, overly formal, or contain inconsistent tone
6. Pay special attention to AI-generated content that's grammatically perfect but contextually odd
7. For legitimate-looking business emails, verify if the sender domain matches the actual business domain`

const closingInstructions = `

Look for these phishing indicators:
- Urgency and threatening language
- Mismatched or suspicious URLs
- Request for sensitive information
- Grammar and spelling errors (or suspiciously perfect grammar from AI)
- Impersonation of trusted entities
- Unusual sender addresses with subtle misspellings
- AI-generated text patterns
- Evasive techniques that bypass traditional filters
- Unusual email routing or headers
- Suspicious attachments or unusual file types

For scoring guidance:
- Scores 80-100: High risk, multiple strong indicators of phishing
- Scores 40-79: Medium risk, some concerning elements that warrant caution
- Scores 0-39: Low risk, likely legitimate communication

For confidence levels:
- High confidence: Clear indicators present, strong evidence supports conclusion
- Medium confidence: Some indicators present, but with possible ambiguity
- Low confidence: Limited indicators or competing legitimate explanations exist

If the email includes headers, consider the sender domain, reply-to address, and routing information in your analysis.

Always consider the context and provide a detailed explanation supporting your risk assessment. Be specific about which indicators led to your conclusion.`

// Compose builds the classifier instruction set for one analysis. It is
// deterministic given its inputs and performs no I/O. Composing with zero
// enabled rules still yields a complete instruction set.
func Compose(rules []*models.DetectionRule, settings *models.AnalysisSettings) string {
	var b strings.Builder
	b.WriteString(baseInstructions)

	if settings.FalsePositiveProtection {
		b.WriteString("\n8. Apply rigorous false positive protection - when in doubt, err on the side of caution to avoid flagging legitimate emails as phishing")
	}
	if settings.MinConfidenceThreshold > 0 {
		fmt.Fprintf(&b, "\n9. Only provide a 'high' confidenceLevel when you're at least %d%% certain of your assessment", settings.MinConfidenceThreshold)
	}

	for _, rule := range rules {
		if !rule.Enabled {
			continue
		}
		b.WriteString(ruleFragment(rule.RuleType, rule.Sensitivity))
	}

	b.WriteString(closingInstructions)
	return b.String()
}

// ruleFragment returns the sensitivity-scaled instruction fragment for one
// rule category. RuleOther has no classifier-facing heuristic and
// contributes nothing.
func ruleFragment(t models.RuleType, s models.Sensitivity) string {
	var heading, low, medium, high string

	switch t {
	case models.RuleAIContent:
		heading = "AI-generated content detection"
		low = "Only flag clearly AI-generated text with obvious patterns"
		medium = "Look for content that seems artificially structured or has unusual phrasing"
		high = "Be highly suspicious of perfectly formatted text, subtle AI patterns, or content that seems too perfect"
	case models.RuleDomainSpoof:
		heading = "domain spoofing detection"
		low = "Flag only obvious domain spoofing (e.g., 'google-accounts.com' instead of 'google.com')"
		medium = "Detect moderate domain manipulation and homograph attacks"
		high = "Detect even subtle domain variations, look for homograph attacks, international character substitutions"
	case models.RuleURLs:
		heading = "suspicious URL detection"
		low = "Flag only clearly malicious URLs"
		medium = "Analyze URL paths, parameters, and check for redirection techniques"
		high = "Be highly suspicious of URL shorteners, encoded URLs, or unusual TLDs"
	case models.RuleUrgency:
		heading = "urgency detection"
		low = "Flag only extreme urgency language (e.g., 'act now or your account will be deleted')"
		medium = "Be suspicious of time-pressure tactics and deadlines"
		high = "Flag any language that creates a sense of urgency or time pressure"
	case models.RuleOther:
		return ""
	default:
		return ""
	}

	var line string
	switch s {
	case models.SensitivityLow:
		line = low
	case models.SensitivityHigh:
		line = high
	default:
		line = medium
		s = models.SensitivityMedium
	}

	return fmt.Sprintf("\n\nFor %s (%s sensitivity):\n- %s", heading, s, line)
}
