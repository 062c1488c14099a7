package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"aishield/internal/repository"
)

type AnalyticsHandler interface {
	GetStats(c *gin.Context)
}

type analyticsHandler struct {
	analysisRepo repository.AnalysisRepository
	logger       *zap.Logger
}

func NewAnalyticsHandler(analysisRepo repository.AnalysisRepository, logger *zap.Logger) AnalyticsHandler {
	return &analyticsHandler{
		analysisRepo: analysisRepo,
		logger:       logger,
	}
}

// GetStats handles GET /api/stats
func (h *analyticsHandler) GetStats(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	stats, err := h.analysisRepo.Stats(userID)
	if err != nil {
		h.logger.Error("Failed to get dashboard stats", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve dashboard data"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
