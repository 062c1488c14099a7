package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"aishield/internal/analyzer"
	"aishield/internal/models"
	"aishield/internal/repository"
)

// AnalysisService runs one phishing analysis. Implemented by
// analyzer.Service; narrowed to an interface so handlers can be tested
// without the real pipeline.
type AnalysisService interface {
	Analyze(ctx context.Context, userID, userEmail, message string) (*analyzer.Result, error)
}

type AnalysisHandler interface {
	Analyze(c *gin.Context)
	ListAnalyses(c *gin.Context)
	GetAnalysis(c *gin.Context)
	UpdateStatus(c *gin.Context)
	DeleteAnalysis(c *gin.Context)
}

type analysisHandler struct {
	service AnalysisService
	repo    repository.AnalysisRepository
	logger  *zap.Logger
}

func NewAnalysisHandler(service AnalysisService, repo repository.AnalysisRepository, logger *zap.Logger) AnalysisHandler {
	return &analysisHandler{service: service, repo: repo, logger: logger}
}

type AnalyzeRequest struct {
	Message   string `json:"message"`
	UserEmail string `json:"userEmail"`
}

// Analyze handles POST /api/analyze
func (h *analysisHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No message provided"})
		return
	}

	userID := c.MustGet("user_id").(string)
	userEmail := c.MustGet("user_email").(string)
	if req.UserEmail != "" {
		userEmail = req.UserEmail
	}

	result, err := h.service.Analyze(c.Request.Context(), userID, userEmail, req.Message)
	if err != nil {
		if errors.Is(err, analyzer.ErrEmptyMessage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No message provided"})
			return
		}
		h.logger.Error("Analysis failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListAnalyses handles GET /api/analyses
func (h *analysisHandler) ListAnalyses(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	analyses, err := h.repo.ListByUser(userID)
	if err != nil {
		h.logger.Error("Failed to list analyses", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve analyses"})
		return
	}

	if analyses == nil {
		analyses = []*models.Analysis{}
	}
	c.JSON(http.StatusOK, gin.H{"analyses": analyses})
}

// GetAnalysis handles GET /api/analyses/:id
func (h *analysisHandler) GetAnalysis(c *gin.Context) {
	userID := c.MustGet("user_id").(string)
	id := c.Param("id")

	analysis, err := h.repo.GetByID(id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
			return
		}
		h.logger.Error("Failed to get analysis", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve analysis"})
		return
	}

	c.JSON(http.StatusOK, analysis)
}

type UpdateStatusRequest struct {
	Status models.AnalysisStatus `json:"status" binding:"required"`
}

// UpdateStatus handles PATCH /api/analyses/:id/status
func (h *analysisHandler) UpdateStatus(c *gin.Context) {
	userID := c.MustGet("user_id").(string)
	id := c.Param("id")

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Users may re-triage, but only into review outcomes.
	switch req.Status {
	case models.StatusReviewed, models.StatusSafe, models.StatusReported:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status. Valid values: reviewed, safe, reported"})
		return
	}

	if err := h.repo.UpdateStatus(id, userID, req.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
			return
		}
		h.logger.Error("Failed to update analysis status", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated successfully"})
}

// DeleteAnalysis handles DELETE /api/analyses/:id
func (h *analysisHandler) DeleteAnalysis(c *gin.Context) {
	userID := c.MustGet("user_id").(string)
	id := c.Param("id")

	if err := h.repo.Delete(id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
			return
		}
		h.logger.Error("Failed to delete analysis", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete analysis"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Analysis deleted successfully"})
}
