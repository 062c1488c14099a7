package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"aishield/internal/analyzer"
	"aishield/internal/models"
	"aishield/internal/repository"
)

type stubAnalysisService struct {
	result *analyzer.Result
	err    error
}

func (s *stubAnalysisService) Analyze(ctx context.Context, userID, userEmail, message string) (*analyzer.Result, error) {
	if message == "" {
		return nil, analyzer.ErrEmptyMessage
	}
	return s.result, s.err
}

type stubAnalysisRepo struct {
	analyses  []*models.Analysis
	listErr   error
	updateErr error
	deleteErr error
}

func (s *stubAnalysisRepo) Save(a *models.Analysis) error { return nil }
func (s *stubAnalysisRepo) ListByUser(userID string) ([]*models.Analysis, error) {
	return s.analyses, s.listErr
}
func (s *stubAnalysisRepo) GetByID(id, userID string) (*models.Analysis, error) {
	for _, a := range s.analyses {
		if a.ID == id && a.UserID == userID {
			return a, nil
		}
	}
	return nil, repository.ErrNotFound
}
func (s *stubAnalysisRepo) UpdateStatus(id, userID string, status models.AnalysisStatus) error {
	return s.updateErr
}
func (s *stubAnalysisRepo) Delete(id, userID string) error { return s.deleteErr }
func (s *stubAnalysisRepo) Stats(userID string) (*models.AnalysisStats, error) {
	return &models.AnalysisStats{}, nil
}

func newTestRouter(service AnalysisService, repo repository.AnalysisRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", "u1")
		c.Set("user_email", "user@example.com")
	})

	h := NewAnalysisHandler(service, repo, zap.NewNop())
	r.POST("/api/analyze", h.Analyze)
	r.GET("/api/analyses", h.ListAnalyses)
	r.GET("/api/analyses/:id", h.GetAnalysis)
	r.PATCH("/api/analyses/:id/status", h.UpdateStatus)
	r.DELETE("/api/analyses/:id", h.DeleteAnalysis)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestAnalyzeHandler(t *testing.T) {
	t.Run("Successful analysis", func(t *testing.T) {
		service := &stubAnalysisService{result: &analyzer.Result{
			Score:        92,
			RiskLevel:    models.RiskHigh,
			Explanation:  "Multiple strong indicators.",
			Confidence:   models.ConfidenceHigh,
			ID:           "a1",
			AutoReported: true,
		}}
		r := newTestRouter(service, &stubAnalysisRepo{})

		w, resp := doRequest(t, r, http.MethodPost, "/api/analyze", `{"message":"verify your account now"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(92), resp["score"])
		assert.Equal(t, "high", resp["riskLevel"])
		assert.Equal(t, "a1", resp["id"])
		assert.Equal(t, true, resp["autoReported"])
	})

	t.Run("Empty message", func(t *testing.T) {
		r := newTestRouter(&stubAnalysisService{}, &stubAnalysisRepo{})

		w, resp := doRequest(t, r, http.MethodPost, "/api/analyze", `{"message":""}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "No message provided", resp["error"])
	})

	t.Run("Malformed body", func(t *testing.T) {
		r := newTestRouter(&stubAnalysisService{}, &stubAnalysisRepo{})

		w, resp := doRequest(t, r, http.MethodPost, "/api/analyze", `not json`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "No message provided", resp["error"])
	})

	t.Run("Classifier failure", func(t *testing.T) {
		service := &stubAnalysisService{err: errors.New("classifier request failed: status 502")}
		r := newTestRouter(service, &stubAnalysisRepo{})

		w, resp := doRequest(t, r, http.MethodPost, "/api/analyze", `{"message":"check this"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal server error", resp["error"])
		assert.Contains(t, resp["details"], "status 502")
	})
}

func TestListAnalysesHandler(t *testing.T) {
	t.Run("Empty history returns an empty list", func(t *testing.T) {
		r := newTestRouter(&stubAnalysisService{}, &stubAnalysisRepo{})

		w, resp := doRequest(t, r, http.MethodGet, "/api/analyses", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []any{}, resp["analyses"])
	})

	t.Run("Repository failure", func(t *testing.T) {
		r := newTestRouter(&stubAnalysisService{}, &stubAnalysisRepo{listErr: errors.New("db down")})

		w, resp := doRequest(t, r, http.MethodGet, "/api/analyses", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to retrieve analyses", resp["error"])
	})
}

func TestGetAnalysisHandler(t *testing.T) {
	repo := &stubAnalysisRepo{analyses: []*models.Analysis{
		{ID: "a1", UserID: "u1", Message: "suspicious text", Score: 92, RiskLevel: models.RiskHigh},
		{ID: "a2", UserID: "someone-else", Message: "not yours", Score: 10, RiskLevel: models.RiskLow},
	}}

	t.Run("Own analysis", func(t *testing.T) {
		r := newTestRouter(&stubAnalysisService{}, repo)

		w, resp := doRequest(t, r, http.MethodGet, "/api/analyses/a1", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "a1", resp["id"])
		assert.Equal(t, float64(92), resp["score"])
	})

	t.Run("Unknown analysis", func(t *testing.T) {
		r := newTestRouter(&stubAnalysisService{}, repo)

		w, resp := doRequest(t, r, http.MethodGet, "/api/analyses/missing", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Analysis not found", resp["error"])
	})

	t.Run("Another user's analysis", func(t *testing.T) {
		r := newTestRouter(&stubAnalysisService{}, repo)

		w, resp := doRequest(t, r, http.MethodGet, "/api/analyses/a2", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Analysis not found", resp["error"])
	})
}

func TestUpdateStatusHandler(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		repo     *stubAnalysisRepo
		wantCode int
		wantErr  string
	}{
		{
			name:     "Valid status",
			body:     `{"status":"reviewed"}`,
			repo:     &stubAnalysisRepo{},
			wantCode: http.StatusOK,
		},
		{
			name:     "Status outside the review set",
			body:     `{"status":"new"}`,
			repo:     &stubAnalysisRepo{},
			wantCode: http.StatusBadRequest,
			wantErr:  "Invalid status. Valid values: reviewed, safe, reported",
		},
		{
			name:     "Unknown analysis",
			body:     `{"status":"safe"}`,
			repo:     &stubAnalysisRepo{updateErr: repository.ErrNotFound},
			wantCode: http.StatusNotFound,
			wantErr:  "Analysis not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&stubAnalysisService{}, tt.repo)

			w, resp := doRequest(t, r, http.MethodPatch, "/api/analyses/a1/status", tt.body)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, resp["error"])
			}
		})
	}
}

func TestDeleteAnalysisHandler(t *testing.T) {
	t.Run("Existing analysis", func(t *testing.T) {
		r := newTestRouter(&stubAnalysisService{}, &stubAnalysisRepo{})

		w, _ := doRequest(t, r, http.MethodDelete, "/api/analyses/a1", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Unknown analysis", func(t *testing.T) {
		r := newTestRouter(&stubAnalysisService{}, &stubAnalysisRepo{deleteErr: repository.ErrNotFound})

		w, resp := doRequest(t, r, http.MethodDelete, "/api/analyses/missing", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Analysis not found", resp["error"])
	})
}
