package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"aishield/internal/models"
)

type AnalysisRepository interface {
	Save(a *models.Analysis) error
	ListByUser(userID string) ([]*models.Analysis, error)
	GetByID(id, userID string) (*models.Analysis, error)
	UpdateStatus(id, userID string, status models.AnalysisStatus) error
	Delete(id, userID string) error
	Stats(userID string) (*models.AnalysisStats, error)
}

type analysisRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewAnalysisRepository(db *sqlx.DB, logger *zap.Logger) AnalysisRepository {
	return &analysisRepository{db: db, logger: logger}
}

func (r *analysisRepository) Save(a *models.Analysis) error {
	query := `INSERT INTO analyses (id, user_id, user_email, message, score, risk_level, explanation, confidence_level, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING created_at`
	return r.db.QueryRowx(query, a.ID, a.UserID, a.UserEmail, a.Message, a.Score,
		a.RiskLevel, a.Explanation, a.Confidence, a.Status).Scan(&a.CreatedAt)
}

func (r *analysisRepository) ListByUser(userID string) ([]*models.Analysis, error) {
	var analyses []*models.Analysis
	query := `SELECT id, user_id, user_email, message, score, risk_level, explanation, confidence_level, status, created_at
	          FROM analyses WHERE user_id = $1 ORDER BY created_at DESC`
	if err := r.db.Select(&analyses, query, userID); err != nil {
		return nil, err
	}
	return analyses, nil
}

func (r *analysisRepository) GetByID(id, userID string) (*models.Analysis, error) {
	var a models.Analysis
	query := `SELECT id, user_id, user_email, message, score, risk_level, explanation, confidence_level, status, created_at
	          FROM analyses WHERE id = $1 AND user_id = $2`
	err := r.db.Get(&a, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *analysisRepository) UpdateStatus(id, userID string, status models.AnalysisStatus) error {
	query := `UPDATE analyses SET status = $1 WHERE id = $2 AND user_id = $3`
	res, err := r.db.Exec(query, status, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *analysisRepository) Delete(id, userID string) error {
	query := `DELETE FROM analyses WHERE id = $1 AND user_id = $2`
	res, err := r.db.Exec(query, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *analysisRepository) Stats(userID string) (*models.AnalysisStats, error) {
	var stats models.AnalysisStats
	query := `SELECT
	            COUNT(*) AS total_detected,
	            COUNT(*) FILTER (WHERE risk_level = 'high') AS high_risk,
	            COUNT(*) FILTER (WHERE risk_level = 'medium') AS medium_risk,
	            COUNT(*) FILTER (WHERE risk_level = 'low') AS low_risk,
	            COUNT(*) FILTER (WHERE status = 'reported') AS total_reported,
	            COUNT(*) FILTER (WHERE status = 'safe') AS total_safe
	          FROM analyses WHERE user_id = $1`
	if err := r.db.Get(&stats, query, userID); err != nil {
		return nil, err
	}
	return &stats, nil
}

// requireRow maps a zero-row write to ErrNotFound so status updates and
// deletes on missing or foreign records fail loudly.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
