package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"aishield/internal/models"
	"aishield/internal/repository"
)

type SettingsHandler interface {
	GetSettings(c *gin.Context)
	UpdateSettings(c *gin.Context)
}

type settingsHandler struct {
	settingsRepo repository.SettingsRepository
	logger       *zap.Logger
}

func NewSettingsHandler(settingsRepo repository.SettingsRepository, logger *zap.Logger) SettingsHandler {
	return &settingsHandler{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// GetSettings handles GET /api/settings. Users without a stored row get
// the defaults; the row is only materialized on first save.
func (h *settingsHandler) GetSettings(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	settings, err := h.settingsRepo.GetByUser(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusOK, models.DefaultSettings(userID))
			return
		}
		h.logger.Error("Failed to get analysis settings", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

type UpdateSettingsRequest struct {
	MinConfidenceThreshold  int  `json:"min_confidence_threshold" binding:"required"`
	AutoReportHighRisk      bool `json:"auto_report_high_risk"`
	ShowDetailedIndicators  bool `json:"show_detailed_indicators"`
	FalsePositiveProtection bool `json:"false_positive_protection"`
}

// UpdateSettings handles PUT /api/settings
func (h *settingsHandler) UpdateSettings(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings := &models.AnalysisSettings{
		UserID:                  userID,
		MinConfidenceThreshold:  req.MinConfidenceThreshold,
		AutoReportHighRisk:      req.AutoReportHighRisk,
		ShowDetailedIndicators:  req.ShowDetailedIndicators,
		FalsePositiveProtection: req.FalsePositiveProtection,
	}
	if err := settings.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.settingsRepo.Upsert(settings); err != nil {
		h.logger.Error("Failed to save analysis settings", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}
