package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr                      string        `yaml:"addr"`
	DatabaseURL               string        `yaml:"database_url"`
	JWTSecret                 string        `yaml:"jwt_secret"`
	Environment               string        `yaml:"environment"`
	LogLevel                  string        `yaml:"log_level"`
	LogFormat                 string        `yaml:"log_format"`
	RunMigrations             bool          `yaml:"run_migrations"`
	MaxBodyBytes              int64         `yaml:"max_body_bytes"`
	RateLimitPerMinute        int           `yaml:"rate_limit_per_minute"`
	MetricsEnabled            bool          `yaml:"metrics_enabled"`
	AuditEnabled              bool          `yaml:"audit_enabled"`
	SkillGapCriticalThreshold float64       `yaml:"skill_gap_critical_threshold"`
	CertExpiryWarning         time.Duration `yaml:"-"`
	CertExpiryWarningRaw      string        `yaml:"cert_expiry_warning"`
	DashboardTimeout          time.Duration `yaml:"-"`
	DashboardTimeoutRaw       string        `yaml:"dashboard_timeout"`
}

func Defaults() Config {
	return Config{
		Addr:                      ":8080",
		Environment:               "development",
		LogLevel:                  "info",
		LogFormat:                 "json",
		RunMigrations:             true,
		MaxBodyBytes:              1048576,
		RateLimitPerMinute:        120,
		MetricsEnabled:            true,
		AuditEnabled:              true,
		SkillGapCriticalThreshold: 20,
		CertExpiryWarning:         30 * 24 * time.Hour,
		DashboardTimeout:          10 * time.Second,
	}
}

// Load reads CONFIG_FILE (if set) over the defaults, then lets environment
// variables override individual keys.
func Load() (Config, error) {
	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		fileCfg, err := LoadFile(path, cfg)
		if err != nil {
			return Config{}, err
		}
		cfg = fileCfg
	}
	return applyEnv(cfg), nil
}

func LoadFile(path string, base Config) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read file %s: %w", path, err)
	}
	cfg := base
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse yaml: %w", err)
	}
	if cfg.CertExpiryWarningRaw != "" {
		d, err := time.ParseDuration(cfg.CertExpiryWarningRaw)
		if err != nil {
			return Config{}, fmt.Errorf("config: cert_expiry_warning: %w", err)
		}
		cfg.CertExpiryWarning = d
	}
	if cfg.DashboardTimeoutRaw != "" {
		d, err := time.ParseDuration(cfg.DashboardTimeoutRaw)
		if err != nil {
			return Config{}, fmt.Errorf("config: dashboard_timeout: %w", err)
		}
		cfg.DashboardTimeout = d
	}
	return cfg, nil
}

func applyEnv(cfg Config) Config {
	cfg.Addr = getEnv("APP_ADDR", cfg.Addr)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.Environment = getEnv("APP_ENV", cfg.Environment)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	cfg.RunMigrations = getEnvBool("RUN_MIGRATIONS", cfg.RunMigrations)
	cfg.MaxBodyBytes = int64(getEnvInt("MAX_BODY_BYTES", int(cfg.MaxBodyBytes)))
	cfg.RateLimitPerMinute = getEnvInt("RATE_LIMIT_PER_MINUTE", cfg.RateLimitPerMinute)
	cfg.MetricsEnabled = getEnvBool("METRICS_ENABLED", cfg.MetricsEnabled)
	cfg.AuditEnabled = getEnvBool("AUDIT_ENABLED", cfg.AuditEnabled)
	cfg.SkillGapCriticalThreshold = getEnvFloat("SKILL_GAP_CRITICAL_THRESHOLD", cfg.SkillGapCriticalThreshold)
	cfg.CertExpiryWarning = getEnvDuration("CERT_EXPIRY_WARNING", cfg.CertExpiryWarning)
	cfg.DashboardTimeout = getEnvDuration("DASHBOARD_TIMEOUT", cfg.DashboardTimeout)
	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.IsProduction() && strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.SkillGapCriticalThreshold <= 0 {
		return fmt.Errorf("SKILL_GAP_CRITICAL_THRESHOLD must be positive")
	}
	if c.DashboardTimeout <= 0 {
		return fmt.Errorf("DASHBOARD_TIMEOUT must be positive")
	}
	return nil
}
