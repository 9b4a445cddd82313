package config

import (
	"time"

	"github.com/repowise/waitlist-api/internal/log"
	"github.com/repowise/waitlist-api/pkg/utils"
)

type AdminConfig struct {
	Email         string
	PasswordHash  string
	SessionSecret string
	SessionTTL    time.Duration
	RestoreSecret string
	APIKey        string
}

// NewAdminConfig loads the dashboard credentials. Missing values disable the
// features they gate rather than failing startup: the public waitlist keeps
// working on a box with no admin configured.
func NewAdminConfig(logger *log.Logger) *AdminConfig {
	cfg := &AdminConfig{
		Email:         utils.GetEnvTrimmed("ADMIN_EMAIL"),
		PasswordHash:  utils.GetEnvTrimmed("ADMIN_PASSWORD_HASH"),
		SessionSecret: utils.GetEnvTrimmed("ADMIN_SESSION_SECRET"),
		SessionTTL:    7 * 24 * time.Hour,
		RestoreSecret: utils.GetEnvTrimmed("ADMIN_RESTORE_SECRET"),
		APIKey:        utils.GetEnvTrimmed("ADMIN_API_KEY"),
	}

	if raw := utils.GetEnvTrimmed("ADMIN_SESSION_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			cfg.SessionTTL = parsed
		} else {
			logger.Warn("Invalid ADMIN_SESSION_TTL; using default", "value", raw)
		}
	}

	if cfg.Email == "" || cfg.PasswordHash == "" || cfg.SessionSecret == "" {
		logger.Warn("Admin credentials incomplete; dashboard login disabled",
			"have_email", cfg.Email != "",
			"have_password_hash", cfg.PasswordHash != "",
			"have_session_secret", cfg.SessionSecret != "",
		)
	}
	if cfg.RestoreSecret == "" {
		logger.Info("ADMIN_RESTORE_SECRET not set; waitlist restore disabled")
	}

	return cfg
}
