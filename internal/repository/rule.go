package repository

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"aishield/internal/models"
)

type RuleRepository interface {
	ListByUser(userID string) ([]*models.DetectionRule, error)
	Seed(userID string, rules []*models.DetectionRule) error
	Update(id, userID string, enabled *bool, sensitivity *models.Sensitivity) (*models.DetectionRule, error)
}

type ruleRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewRuleRepository(db *sqlx.DB, logger *zap.Logger) RuleRepository {
	return &ruleRepository{db: db, logger: logger}
}

func (r *ruleRepository) ListByUser(userID string) ([]*models.DetectionRule, error) {
	var rules []*models.DetectionRule
	query := `SELECT id, user_id, name, description, rule_type, enabled, sensitivity, created_at
	          FROM detection_rules WHERE user_id = $1 ORDER BY created_at ASC`
	if err := r.db.Select(&rules, query, userID); err != nil {
		return nil, err
	}
	return rules, nil
}

// Seed inserts the given rules for a user, assigning ids. Used to
// materialize the default rule set the first time a user touches rules.
func (r *ruleRepository) Seed(userID string, rules []*models.DetectionRule) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO detection_rules (id, user_id, name, description, rule_type, enabled, sensitivity)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at`
	for _, rule := range rules {
		if rule.ID == "" {
			rule.ID = uuid.NewString()
		}
		rule.UserID = userID
		if err := tx.QueryRowx(query, rule.ID, userID, rule.Name, rule.Description,
			rule.RuleType, rule.Enabled, rule.Sensitivity).Scan(&rule.CreatedAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Update mutates only the user-adjustable fields. Nil arguments leave the
// stored value untouched.
func (r *ruleRepository) Update(id, userID string, enabled *bool, sensitivity *models.Sensitivity) (*models.DetectionRule, error) {
	var rule models.DetectionRule
	query := `UPDATE detection_rules
	          SET enabled = COALESCE($1, enabled), sensitivity = COALESCE($2, sensitivity)
	          WHERE id = $3 AND user_id = $4
	          RETURNING id, user_id, name, description, rule_type, enabled, sensitivity, created_at`
	err := r.db.QueryRowx(query, enabled, sensitivity, id, userID).StructScan(&rule)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}
