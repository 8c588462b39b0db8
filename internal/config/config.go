// Package config contains everything related to configuration
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jalikoi/analytics-tui/internal/models"
)

// Config holds the application configuration.
type Config struct {
	APIBaseURL     string `validate:"required,url"`
	APIToken       string
	SessionPath    string
	DatabasePath   string `validate:"required"`
	LogPath        string
	LogLevel       string `validate:"oneof=debug info warn warning error"`
	MetricsAddr    string
	ConfigFile     string
	Panels         PanelLimits
	RequestTimeout time.Duration `validate:"gt=0"`
	AuditRetention time.Duration `validate:"gte=0"`
	DefaultPeriod  models.Preset
}

// PanelLimits are the server-side caps sent with ML panel requests.
type PanelLimits struct {
	ChurnMinProbability float64 `yaml:"churn_min_probability" validate:"gte=0,lte=1"`
	ChurnLimit          int     `yaml:"churn_limit" validate:"gte=1"`
	ForecastTopN        int     `yaml:"forecast_top_n" validate:"gte=1"`
	AnomalyLimit        int     `yaml:"anomaly_limit" validate:"gte=1"`
}

// fileConfig is the optional YAML file layout.
type fileConfig struct {
	Panels PanelLimits `yaml:"panels"`
}

// Default values
const (
	defaultAPIBaseURL     = "http://localhost:8000"
	defaultRequestTimeout = 30 * time.Second
	defaultAuditRetention = 30 * 24 * time.Hour
	defaultLogLevel       = "info"
)

// DefaultPanelLimits returns the caps used when neither the config file nor
// the environment overrides them.
func DefaultPanelLimits() PanelLimits {
	return PanelLimits{
		ChurnMinProbability: 0.3,
		ChurnLimit:          10,
		ForecastTopN:        10,
		AnomalyLimit:        50,
	}
}

var validate = validator.New()

// Load reads configuration from .env files, the optional YAML file and
// environment variables, in increasing precedence.
func Load() (*Config, error) {
	envPaths := getEnvPaths()
	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	period, err := models.ParsePreset(getEnvString("DEFAULT_PERIOD", models.PresetYesterday.String()))
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_PERIOD: %w", err)
	}
	if period == models.PresetCustom {
		return nil, fmt.Errorf("DEFAULT_PERIOD: custom requires explicit dates and cannot be a default")
	}

	cfg := &Config{
		APIBaseURL:     getEnvString("API_BASE_URL", defaultAPIBaseURL),
		APIToken:       os.Getenv("API_TOKEN"),
		SessionPath:    getEnvString("SESSION_PATH", getDefaultSessionPath()),
		DatabasePath:   getEnvString("DATABASE_PATH", getDefaultDatabasePath()),
		LogPath:        getEnvString("LOG_PATH", getDefaultLogPath()),
		LogLevel:       getEnvString("LOG_LEVEL", defaultLogLevel),
		MetricsAddr:    os.Getenv("METRICS_ADDR"),
		ConfigFile:     os.Getenv("CONFIG_FILE"),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", defaultRequestTimeout),
		AuditRetention: getEnvDuration("AUDIT_RETENTION", defaultAuditRetention),
		DefaultPeriod:  period,
		Panels:         DefaultPanelLimits(),
	}

	if cfg.ConfigFile != "" {
		if err := loadFile(cfg.ConfigFile, &cfg.Panels); err != nil {
			return nil, err
		}
	}
	applyPanelOverrides(&cfg.Panels)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := ensureDir(filepath.Dir(cfg.DatabasePath)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid configuration: %s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// loadFile merges panel limits from a YAML file over the defaults.
func loadFile(path string, panels *PanelLimits) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config file %s not found: %w", path, err)
		}
		return fmt.Errorf("read config: %w", err)
	}
	fc := fileConfig{Panels: *panels}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	*panels = fc.Panels
	return nil
}

func applyPanelOverrides(p *PanelLimits) {
	p.ChurnMinProbability = getEnvFloat("CHURN_MIN_PROBABILITY", p.ChurnMinProbability)
	p.ChurnLimit = getEnvInt("CHURN_LIMIT", p.ChurnLimit)
	p.ForecastTopN = getEnvInt("FORECAST_TOP_N", p.ForecastTopN)
	p.AnomalyLimit = getEnvInt("ANOMALY_LIMIT", p.AnomalyLimit)
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	if dir := configDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, ".env"))
	}

	// Parent directory (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(cwd), ".env"))
	}

	return paths
}

// configDir returns the per-user configuration directory, or "" when the
// home directory is unknown.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "jalikoi")
}

// getDefaultDatabasePath returns the default path for the SQLite database.
func getDefaultDatabasePath() string {
	if dir := configDir(); dir != "" {
		return filepath.Join(dir, "audit.db")
	}
	return "audit.db"
}

// getDefaultSessionPath returns the default path for the session file.
func getDefaultSessionPath() string {
	if dir := configDir(); dir != "" {
		return filepath.Join(dir, "session.json")
	}
	return "session.json"
}

// getDefaultLogPath returns the default log file path.
func getDefaultLogPath() string {
	if dir := configDir(); dir != "" {
		return filepath.Join(dir, "tui.log")
	}
	return ""
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvFloat retrieves a float environment variable or returns the default.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
