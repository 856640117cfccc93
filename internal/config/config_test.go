package config

import (
	"os"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"APP_ENV", "HTTP_ADDR", "METRICS_ADDR", "ADMIN_API_KEY",
		"ADMIN_API_KEY_HASH", "RATE_LIMIT_PER_IP", "LOG_LEVEL",
		"ELDERLY_AGE_YEARS", "HIGH_RISK_ASA", "HIGH_RISK_FIO2_PCT",
		"LOW_FLOW_MIN_LPM", "AGENT_MAX_PCT", "AGENT_SENSITIVE_PCT",
		"LOW_WEIGHT_KG", "LOW_COMPLIANCE_ML_CMH2O",
	}
	for _, key := range keys {
		os.Unsetenv(key)
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.AppEnv != "dev" {
		t.Errorf("Expected AppEnv='dev', got '%s'", cfg.AppEnv)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("Expected HTTPAddr=':8080', got '%s'", cfg.HTTPAddr)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("Expected MetricsAddr=':9090', got '%s'", cfg.MetricsAddr)
	}
	if cfg.RateLimitPerIP != 120 {
		t.Errorf("Expected RateLimitPerIP=120, got %d", cfg.RateLimitPerIP)
	}
	if cfg.ElderlyAgeYears != 65 {
		t.Errorf("Expected ElderlyAgeYears=65, got %d", cfg.ElderlyAgeYears)
	}
	if cfg.HighRiskFiO2Pct != 30.0 {
		t.Errorf("Expected HighRiskFiO2Pct=30.0, got %v", cfg.HighRiskFiO2Pct)
	}
	if cfg.LowFlowMinLPM != 0.5 {
		t.Errorf("Expected LowFlowMinLPM=0.5, got %v", cfg.LowFlowMinLPM)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "staging")
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("ELDERLY_AGE_YEARS", "70")
	t.Setenv("LOW_FLOW_MIN_LPM", "0.75")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.AppEnv != "staging" {
		t.Errorf("Expected AppEnv='staging', got '%s'", cfg.AppEnv)
	}
	if cfg.HTTPAddr != ":9999" {
		t.Errorf("Expected HTTPAddr=':9999', got '%s'", cfg.HTTPAddr)
	}
	if cfg.ElderlyAgeYears != 70 {
		t.Errorf("Expected ElderlyAgeYears=70, got %d", cfg.ElderlyAgeYears)
	}
	if cfg.LowFlowMinLPM != 0.75 {
		t.Errorf("Expected LowFlowMinLPM=0.75, got %v", cfg.LowFlowMinLPM)
	}
}

func TestConfig_Thresholds(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	thresholds := cfg.Thresholds()
	if result := thresholds.Validate(); !result.Valid {
		t.Fatalf("default config thresholds should validate, got %v", result.Errors)
	}
	if thresholds.HighRiskASA != 3 {
		t.Errorf("HighRiskASA = %d, want 3", thresholds.HighRiskASA)
	}
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default dev config should validate, got %v", err)
	}

	cfg.HTTPAddr = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty HTTP_ADDR")
	}
	cfg.HTTPAddr = ":8080"

	cfg.RateLimitPerIP = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero rate limit")
	}
	cfg.RateLimitPerIP = 120

	cfg.HighRiskFiO2Pct = 20 // below the hypoxic floor
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for high-risk FiO2 below the hypoxic floor")
	}
	cfg.HighRiskFiO2Pct = 30

	cfg.AppEnv = "prod"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for default admin key in production")
	}
	cfg.AdminAPIKey = "something-else"
	if err := cfg.Validate(); err != nil {
		t.Errorf("prod config with custom admin key should validate, got %v", err)
	}
}
