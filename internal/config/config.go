// Package config provides application configuration loading from environment
// variables and .env files. It uses viper for flexible configuration
// management with sensible defaults.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/gasguard/gasguard/internal/mixture"
)

const defaultAdminKey = "admin-123"

// Config holds all application configuration loaded from environment
// variables or a .env file. Environment variables take precedence.
type Config struct {
	AppEnv         string // Application environment (dev, staging, prod)
	HTTPAddr       string // HTTP server bind address (e.g., ":8080")
	MetricsAddr    string // Metrics server bind address
	AdminAPIKey    string // Admin API key for threshold updates
	AdminKeyHash   string // Optional bcrypt hash of the admin key; preferred over the plain key
	RateLimitPerIP int    // Per-IP rate limit for evaluation requests (per minute)
	LogLevel       string // zerolog level (debug, info, warn, error)

	// Clinical threshold overrides. The 25% hypoxic floor is deliberately
	// absent: it is not configurable.
	ElderlyAgeYears         int
	HighRiskASA             int
	HighRiskFiO2Pct         float64
	LowFlowMinLPM           float64
	AgentMaxPct             float64
	AgentSensitivePct       float64
	LowWeightKg             float64
	LowComplianceMLPerCmH2O float64
}

// Load reads configuration from environment variables and a .env file (if
// present). Returns a Config with all values populated from env or defaults.
// Use Validate() to check production-readiness constraints.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env") // Optional; silently ignored if file doesn't exist
	_ = v.ReadInConfig()    // Ignore error - .env is optional
	v.AutomaticEnv()

	setConfigDefaults(v)

	return &Config{
		AppEnv:         v.GetString("APP_ENV"),
		HTTPAddr:       v.GetString("HTTP_ADDR"),
		MetricsAddr:    v.GetString("METRICS_ADDR"),
		AdminAPIKey:    v.GetString("ADMIN_API_KEY"),
		AdminKeyHash:   v.GetString("ADMIN_API_KEY_HASH"),
		RateLimitPerIP: v.GetInt("RATE_LIMIT_PER_IP"),
		LogLevel:       v.GetString("LOG_LEVEL"),

		ElderlyAgeYears:         v.GetInt("ELDERLY_AGE_YEARS"),
		HighRiskASA:             v.GetInt("HIGH_RISK_ASA"),
		HighRiskFiO2Pct:         v.GetFloat64("HIGH_RISK_FIO2_PCT"),
		LowFlowMinLPM:           v.GetFloat64("LOW_FLOW_MIN_LPM"),
		AgentMaxPct:             v.GetFloat64("AGENT_MAX_PCT"),
		AgentSensitivePct:       v.GetFloat64("AGENT_SENSITIVE_PCT"),
		LowWeightKg:             v.GetFloat64("LOW_WEIGHT_KG"),
		LowComplianceMLPerCmH2O: v.GetFloat64("LOW_COMPLIANCE_ML_CMH2O"),
	}, nil
}

// setConfigDefaults sets default values for all configuration options.
// These defaults are suitable for local development but should be overridden
// in production.
func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("METRICS_ADDR", ":9090")
	v.SetDefault("ADMIN_API_KEY", defaultAdminKey) // Change in production!
	v.SetDefault("ADMIN_API_KEY_HASH", "")
	v.SetDefault("RATE_LIMIT_PER_IP", 120)
	v.SetDefault("LOG_LEVEL", "info")

	defaults := mixture.DefaultThresholds()
	v.SetDefault("ELDERLY_AGE_YEARS", defaults.ElderlyAgeYears)
	v.SetDefault("HIGH_RISK_ASA", defaults.HighRiskASA)
	v.SetDefault("HIGH_RISK_FIO2_PCT", defaults.HighRiskFiO2Pct)
	v.SetDefault("LOW_FLOW_MIN_LPM", defaults.LowFlowTotalLPM)
	v.SetDefault("AGENT_MAX_PCT", defaults.AgentMaxPct)
	v.SetDefault("AGENT_SENSITIVE_PCT", defaults.AgentSensitivePct)
	v.SetDefault("LOW_WEIGHT_KG", defaults.LowWeightKg)
	v.SetDefault("LOW_COMPLIANCE_ML_CMH2O", defaults.LowComplianceMLPerCmH2O)
}

// Thresholds assembles the clinical threshold set from configuration.
func (c *Config) Thresholds() mixture.Thresholds {
	return mixture.Thresholds{
		ElderlyAgeYears:         c.ElderlyAgeYears,
		HighRiskASA:             c.HighRiskASA,
		HighRiskFiO2Pct:         c.HighRiskFiO2Pct,
		LowFlowTotalLPM:         c.LowFlowMinLPM,
		AgentMaxPct:             c.AgentMaxPct,
		AgentSensitivePct:       c.AgentSensitivePct,
		LowWeightKg:             c.LowWeightKg,
		LowComplianceMLPerCmH2O: c.LowComplianceMLPerCmH2O,
	}
}

// ValidationError represents a configuration validation error with details
// about what failed.
type ValidationError struct {
	Field   string // Name of the configuration field
	Message string // Human-readable error message
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation failed [%s]: %s", e.Field, e.Message)
}

// Validate checks that the configuration is suitable to start the server.
// It is intended to be called at application startup to fail fast on
// misconfiguration.
func (c *Config) Validate() error {
	if c.HTTPAddr == "" {
		return ValidationError{
			Field:   "HTTP_ADDR",
			Message: "HTTP server address cannot be empty",
		}
	}

	if c.MetricsAddr == "" {
		return ValidationError{
			Field:   "METRICS_ADDR",
			Message: "metrics server address cannot be empty",
		}
	}

	if c.RateLimitPerIP <= 0 {
		return ValidationError{
			Field:   "RATE_LIMIT_PER_IP",
			Message: "rate limit must be greater than zero",
		}
	}

	if result := c.Thresholds().Validate(); !result.Valid {
		for field, message := range result.Errors {
			return ValidationError{Field: field, Message: message}
		}
	}

	// Production-specific checks (stricter validation)
	if c.AppEnv == "prod" || c.AppEnv == "production" {
		if c.AdminKeyHash == "" && c.AdminAPIKey == defaultAdminKey {
			return ValidationError{
				Field:   "ADMIN_API_KEY",
				Message: fmt.Sprintf("default admin API key '%s' is not allowed in production", defaultAdminKey),
			}
		}
	}

	return nil
}
