package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"aishield/internal/models"
	"aishield/internal/repository"
)

type RulesHandler interface {
	GetRules(c *gin.Context)
	UpdateRule(c *gin.Context)
}

type rulesHandler struct {
	ruleRepo repository.RuleRepository
	logger   *zap.Logger
}

func NewRulesHandler(ruleRepo repository.RuleRepository, logger *zap.Logger) RulesHandler {
	return &rulesHandler{ruleRepo: ruleRepo, logger: logger}
}

// GetRules handles GET /api/rules. A user with no configured rules gets the
// default rule set seeded first, so subsequent updates have rows to target.
func (h *rulesHandler) GetRules(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	rules, err := h.ruleRepo.ListByUser(userID)
	if err != nil {
		h.logger.Error("Failed to list detection rules", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rules"})
		return
	}

	if len(rules) == 0 {
		rules = models.DefaultRules()
		if err := h.ruleRepo.Seed(userID, rules); err != nil {
			h.logger.Error("Failed to seed default rules", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initialize rules"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

type UpdateRuleRequest struct {
	Enabled     *bool               `json:"enabled"`
	Sensitivity *models.Sensitivity `json:"sensitivity"`
}

// UpdateRule handles PATCH /api/rules/:id. Only the enabled flag and the
// sensitivity are user-adjustable.
func (h *rulesHandler) UpdateRule(c *gin.Context) {
	userID := c.MustGet("user_id").(string)
	id := c.Param("id")

	var req UpdateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Enabled == nil && req.Sensitivity == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}
	if req.Sensitivity != nil && !req.Sensitivity.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sensitivity. Valid values: low, medium, high"})
		return
	}

	rule, err := h.ruleRepo.Update(id, userID, req.Enabled, req.Sensitivity)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rule not found"})
			return
		}
		h.logger.Error("Failed to update detection rule", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update rule"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rule": rule})
}
