package config

import (
	"github.com/repowise/waitlist-api/internal/log"
	"github.com/repowise/waitlist-api/internal/mail"
	"github.com/repowise/waitlist-api/pkg/utils"
)

func NewMailConfig() *mail.SMTPConfig {
	cfg := &mail.SMTPConfig{
		Host:     utils.GetEnvTrimmed("SMTP_HOST"),
		Port:     utils.GetEnvIntOrDefault("SMTP_PORT", 587),
		Username: utils.GetEnvTrimmed("SMTP_USER"),
		Password: utils.GetEnvTrimmed("SMTP_PASS"),
		From:     utils.GetEnvTrimmedOrDefault("MAIL_FROM", "waitlist@localhost"),
		SiteURL:  utils.GetEnvTrimmedOrDefault("SITE_URL", "http://localhost:3000"),
	}

	return cfg
}

// NewNotifier builds the welcome-email dispatcher. Without SMTP_HOST the
// dispatcher runs in drop mode and signups proceed without email.
func NewNotifier(logger *log.Logger) *mail.Dispatcher {
	cfg := NewMailConfig()

	if !cfg.IsConfigured() {
		logger.Info("SMTP not configured; welcome emails will be dropped")
		return mail.NewDispatcher(nil, logger, nil)
	}

	logger.Info("SMTP mailer configured", "host", cfg.Host, "port", cfg.Port, "from", cfg.From)
	return mail.NewDispatcher(mail.NewSMTPMailer(cfg), logger, nil)
}
