// Package analyzer orchestrates the phishing analysis pipeline: normalize
// the submission, compose classifier instructions from the caller's
// configuration, classify, apply verdict policy, persist, and trigger
// alerts for auto-reported results.
package analyzer

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"aishield/internal/models"
	"aishield/internal/normalizer"
	"aishield/internal/policy"
	"aishield/internal/repository"
)

// ErrEmptyMessage is returned when the submission contains no content.
var ErrEmptyMessage = errors.New("no message provided")

// Stored messages are truncated to bound row size; the analysis itself
// always sees the full text.
const storedMessageLimit = 10000

const excerptLimit = 200

// Classifier is the narrow interface to the external risk classifier, kept
// small so the pipeline can be tested with a deterministic fake.
type Classifier interface {
	Classify(ctx context.Context, instructions, content string) (models.Verdict, error)
}

// AlertSender delivers best-effort high-risk alerts.
type AlertSender interface {
	SendHighRiskAlert(ctx context.Context, recipient string, riskScore int, subject, excerpt string)
}

// Result is what the caller gets back from one analysis. ID is empty when
// the persistence write failed or was skipped.
type Result struct {
	Score        int                    `json:"score"`
	RiskLevel    models.RiskLevel       `json:"riskLevel"`
	Explanation  string                 `json:"explanation"`
	Confidence   models.ConfidenceLevel `json:"confidenceLevel"`
	ID           string                 `json:"id,omitempty"`
	AutoReported bool                   `json:"autoReported,omitempty"`
}

// Service runs the analysis pipeline. All state is request-scoped, so one
// Service handles any number of concurrent callers.
type Service struct {
	classifier Classifier
	analyses   repository.AnalysisRepository
	rules      repository.RuleRepository
	settings   repository.SettingsRepository
	alerts     AlertSender
	logger     *zap.Logger
}

func NewService(
	classifier Classifier,
	analyses repository.AnalysisRepository,
	rules repository.RuleRepository,
	settings repository.SettingsRepository,
	alerts AlertSender,
	logger *zap.Logger,
) *Service {
	return &Service{
		classifier: classifier,
		analyses:   analyses,
		rules:      rules,
		settings:   settings,
		alerts:     alerts,
		logger:     logger,
	}
}

// Analyze runs the full pipeline for one submission. Only an empty message
// or an outright classifier failure surface as errors; persistence and
// notification failures degrade to a result without an id.
func (s *Service) Analyze(ctx context.Context, userID, userEmail, message string) (*Result, error) {
	if message == "" {
		return nil, ErrEmptyMessage
	}

	norm := normalizer.Normalize(message)
	rules := s.loadRules(userID)
	settings := s.loadSettings(userID)

	instructions := policy.Compose(rules, settings)

	verdict, err := s.classifier.Classify(ctx, instructions, norm.FormattedPrompt)
	if err != nil {
		return nil, err
	}

	final, autoReported := policy.Apply(verdict, settings, rules)

	status := models.StatusNew
	if autoReported {
		status = models.StatusReported
	}

	analysis := &models.Analysis{
		ID:          uuid.NewString(),
		UserID:      userID,
		UserEmail:   userEmail,
		Message:     truncate(message, storedMessageLimit),
		Score:       final.Score,
		RiskLevel:   final.RiskLevel,
		Explanation: final.Explanation,
		Confidence:  final.Confidence,
		Status:      status,
	}

	result := &Result{
		Score:        final.Score,
		RiskLevel:    final.RiskLevel,
		Explanation:  final.Explanation,
		Confidence:   final.Confidence,
		AutoReported: autoReported,
	}

	// Availability over durability: the caller still gets the verdict when
	// the write fails, just without a stored id.
	if err := s.analyses.Save(analysis); err != nil {
		s.logger.Error("Failed to store analysis result", zap.String("user_id", userID), zap.Error(err))
	} else {
		result.ID = analysis.ID
	}

	if autoReported && s.alerts != nil {
		subject := ""
		if norm.Headers != nil {
			subject = norm.Headers.Subject
		}
		excerpt := truncate(message, excerptLimit)
		// Detached from the request context so a finished response does
		// not cancel the alert.
		go s.alerts.SendHighRiskAlert(context.Background(), userEmail, final.Score, subject, excerpt)
	}

	return result, nil
}

// loadRules returns the caller's enabled detection rules. The default rule
// set applies only when the user has configured nothing at all (or the read
// fails); a user who disabled every rule gets exactly that.
func (s *Service) loadRules(userID string) []*models.DetectionRule {
	rules, err := s.rules.ListByUser(userID)
	if err != nil {
		s.logger.Warn("Failed to load detection rules, using defaults", zap.String("user_id", userID), zap.Error(err))
		rules = models.DefaultRules()
	} else if len(rules) == 0 {
		rules = models.DefaultRules()
	}

	enabled := make([]*models.DetectionRule, 0, len(rules))
	for _, rule := range rules {
		if rule.Enabled {
			enabled = append(enabled, rule)
		}
	}
	return enabled
}

// loadSettings returns the caller's analysis settings, falling back to
// defaults when none are stored or the read fails.
func (s *Service) loadSettings(userID string) *models.AnalysisSettings {
	settings, err := s.settings.GetByUser(userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("Failed to load analysis settings, using defaults", zap.String("user_id", userID), zap.Error(err))
		}
		return models.DefaultSettings(userID)
	}
	return settings
}

// truncate cuts s to at most limit bytes without splitting a rune, so the
// stored text stays valid UTF-8.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
