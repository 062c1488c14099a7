package main

import (
	"go.uber.org/zap"

	"aishield/internal/analyzer"
	"aishield/internal/config"
	"aishield/internal/llm_client"
	"aishield/internal/notifier"
	"aishield/internal/repository"
	"aishield/internal/server"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	// Load configuration
	cfgPath := "configs/config.yml"
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	if cfg.Classifier.APIKey == "" {
		logger.Warn("Classifier API key is not configured - analysis requests will fail")
	}

	// Database connection
	db, err := repository.NewPostgresDB(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	repository.MigrateDB(db, logger)

	// Initialize repositories
	analysisRepo := repository.NewAnalysisRepository(db, logger)
	ruleRepo := repository.NewRuleRepository(db, logger)
	settingsRepo := repository.NewSettingsRepository(db, logger)

	// Initialize classifier client
	classifier := llm_client.NewClient(cfg.Classifier.BaseURL, cfg.Classifier.APIKey, cfg.Classifier.Model, logger)

	// Initialize alert channels (Telegram is optional)
	emailClient := notifier.NewEmailClient(cfg.Email.BaseURL, cfg.Email.APIKey, cfg.Email.From)
	bot, err := notifier.NewTelegramBot(cfg.Alerts.TelegramBotToken, logger)
	if err != nil {
		logger.Warn("Failed to initialize Telegram bot, continuing without it", zap.Error(err))
		bot = nil
	}
	alerts := notifier.New(emailClient, bot, cfg.Alerts.TelegramChatID, logger)

	// Initialize the analysis pipeline
	pipeline := analyzer.NewService(classifier, analysisRepo, ruleRepo, settingsRepo, alerts, logger)

	// Initialize and run the server
	srv := server.NewServer(db, cfg, pipeline, logger)
	srv.Run(cfg.Server.Port)
}
