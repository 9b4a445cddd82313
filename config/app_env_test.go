package config

import "testing"

func TestValidateAutoMigrateAllowed(t *testing.T) {
	allowed := []string{"", "dev", "development", "local", "test", "testing", "DEV", "  Local  "}
	for _, env := range allowed {
		if err := ValidateAutoMigrateAllowed(env); err != nil {
			t.Fatalf("expected auto-migrate allowed for env %q, got %v", env, err)
		}
	}

	rejected := []string{"prod", "production", "staging", "preprod", " Production ", "qa"}
	for _, env := range rejected {
		if err := ValidateAutoMigrateAllowed(env); err == nil {
			t.Fatalf("expected auto-migrate rejected for env %q", env)
		}
	}
}

func TestGetAppEnvNormalizes(t *testing.T) {
	t.Setenv(AppEnvKey, "  Production  ")

	if got := GetAppEnv(); got != "production" {
		t.Fatalf("expected normalized app env, got %q", got)
	}
}
