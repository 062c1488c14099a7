package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"aishield/internal/config"
	"aishield/internal/handler"
	"aishield/internal/middleware"
	"aishield/internal/repository"
	"aishield/internal/service"
)

type Server struct {
	router   *gin.Engine
	db       *sqlx.DB
	cfg      *config.Config
	analyzer handler.AnalysisService
	logger   *zap.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, analyzer handler.AnalysisService, logger *zap.Logger) *Server {
	router := gin.Default()

	s := &Server{
		router:   router,
		db:       db,
		cfg:      cfg,
		analyzer: analyzer,
		logger:   logger,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	jwtSecret := []byte(s.cfg.Auth.JWTSecret)
	tokenTTL := time.Duration(s.cfg.Auth.TokenTTLHours) * time.Hour

	authRepo := repository.NewAuthRepository(s.db, s.logger)
	analysisRepo := repository.NewAnalysisRepository(s.db, s.logger)
	ruleRepo := repository.NewRuleRepository(s.db, s.logger)
	settingsRepo := repository.NewSettingsRepository(s.db, s.logger)

	authService := service.NewAuthService(authRepo, jwtSecret, tokenTTL, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	analysisHandler := handler.NewAnalysisHandler(s.analyzer, analysisRepo, s.logger)
	analyticsHandler := handler.NewAnalyticsHandler(analysisRepo, s.logger)
	rulesHandler := handler.NewRulesHandler(ruleRepo, s.logger)
	settingsHandler := handler.NewSettingsHandler(settingsRepo, s.logger)
	integrationsHandler := handler.NewIntegrationsHandler()

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Authentication routes
	authGroup := s.router.Group("/api/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	// Authenticated routes
	authRequired := s.router.Group("/api")
	authRequired.Use(middleware.AuthMiddleware(jwtSecret, s.logger))
	{
		authRequired.POST("/analyze", analysisHandler.Analyze)
		authRequired.GET("/analyses", analysisHandler.ListAnalyses)
		authRequired.GET("/analyses/:id", analysisHandler.GetAnalysis)
		authRequired.PATCH("/analyses/:id/status", analysisHandler.UpdateStatus)
		authRequired.DELETE("/analyses/:id", analysisHandler.DeleteAnalysis)

		authRequired.GET("/stats", analyticsHandler.GetStats)

		authRequired.GET("/rules", rulesHandler.GetRules)
		authRequired.PATCH("/rules/:id", rulesHandler.UpdateRule)

		authRequired.GET("/settings", settingsHandler.GetSettings)
		authRequired.PUT("/settings", settingsHandler.UpdateSettings)

		authRequired.GET("/integrations/email", integrationsHandler.GetEmailIntegration)

		authRequired.POST("/auth/logout", authHandler.Logout)
	}
}

func (s *Server) Run(addr string) {
	s.logger.Info("Server starting", zap.String("addr", addr))
	if err := s.router.Run(addr); err != nil {
		s.logger.Fatal("Server failed to start", zap.Error(err))
	}
}
