// Package notifier delivers best-effort alerts for auto-reported high-risk
// verdicts. Failures are logged and never surfaced to the analysis caller.
package notifier

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const alertSubject = "High Risk Phishing Content Detected"

// Notifier fans one alert out to email and, when configured, a Telegram
// operations channel.
type Notifier struct {
	email    *EmailClient
	bot      *tgbotapi.BotAPI
	tgChatID int64
	logger   *zap.Logger
}

// New creates a notifier. bot may be nil, in which case only email alerts
// are sent.
func New(email *EmailClient, bot *tgbotapi.BotAPI, tgChatID int64, logger *zap.Logger) *Notifier {
	return &Notifier{
		email:    email,
		bot:      bot,
		tgChatID: tgChatID,
		logger:   logger,
	}
}

// NewTelegramBot authorizes the optional Telegram alert channel. An empty
// token disables it without error.
func NewTelegramBot(token string, logger *zap.Logger) (*tgbotapi.BotAPI, error) {
	if token == "" {
		logger.Info("Telegram alerts disabled (empty token)")
		return nil, nil
	}

	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot API: %w", err)
	}

	logger.Info("Telegram bot authorized", zap.String("username", botAPI.Self.UserName))
	return botAPI, nil
}

// SendHighRiskAlert fires one alert. Fire-and-forget: every failure path
// logs and returns, the analysis response is never affected.
func (n *Notifier) SendHighRiskAlert(ctx context.Context, recipient string, riskScore int, subject, excerpt string) {
	if recipient == "" {
		n.logger.Warn("Skipping high-risk alert: no recipient email")
		return
	}

	body := alertHTML(riskScore, subject, excerpt)
	messageID, err := n.email.Send(ctx, recipient, alertSubject, body)
	if err != nil {
		n.logger.Error("Failed to send high-risk alert email",
			zap.String("recipient", recipient),
			zap.Error(err))
	} else {
		n.logger.Info("High-risk alert email sent",
			zap.String("recipient", recipient),
			zap.String("message_id", messageID),
			zap.Int("risk_score", riskScore))
	}

	if n.bot != nil {
		text := fmt.Sprintf("High risk phishing content detected\nRisk score: %d%%\nSubject: %s\nRecipient notified: %s", riskScore, subject, recipient)
		msg := tgbotapi.NewMessage(n.tgChatID, text)
		if _, err := n.bot.Send(msg); err != nil {
			n.logger.Error("Failed to send Telegram alert", zap.Error(err))
		}
	}
}
