package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"aishield/internal/models"
)

type SettingsRepository interface {
	GetByUser(userID string) (*models.AnalysisSettings, error)
	Upsert(settings *models.AnalysisSettings) error
}

type settingsRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewSettingsRepository(db *sqlx.DB, logger *zap.Logger) SettingsRepository {
	return &settingsRepository{db: db, logger: logger}
}

func (r *settingsRepository) GetByUser(userID string) (*models.AnalysisSettings, error) {
	var s models.AnalysisSettings
	query := `SELECT user_id, min_confidence_threshold, auto_report_high_risk, show_detailed_indicators, false_positive_protection
	          FROM analysis_settings WHERE user_id = $1`
	err := r.db.Get(&s, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepository) Upsert(settings *models.AnalysisSettings) error {
	query := `INSERT INTO analysis_settings (user_id, min_confidence_threshold, auto_report_high_risk, show_detailed_indicators, false_positive_protection)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (user_id) DO UPDATE SET
	            min_confidence_threshold = EXCLUDED.min_confidence_threshold,
	            auto_report_high_risk = EXCLUDED.auto_report_high_risk,
	            show_detailed_indicators = EXCLUDED.show_detailed_indicators,
	            false_positive_protection = EXCLUDED.false_positive_protection`
	_, err := r.db.Exec(query, settings.UserID, settings.MinConfidenceThreshold,
		settings.AutoReportHighRisk, settings.ShowDetailedIndicators, settings.FalsePositiveProtection)
	return err
}
