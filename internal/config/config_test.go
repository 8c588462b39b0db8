package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jalikoi/analytics-tui/internal/models"
)

// isolate points HOME and the working directory at a temp dir so no real
// .env or config directory leaks into the test.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	wd, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(wd) })
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{
		"API_BASE_URL", "API_TOKEN", "SESSION_PATH", "LOG_PATH", "LOG_LEVEL",
		"REQUEST_TIMEOUT", "DEFAULT_PERIOD", "METRICS_ADDR", "CONFIG_FILE",
		"CHURN_MIN_PROBABILITY", "CHURN_LIMIT", "FORECAST_TOP_N", "ANOMALY_LIMIT",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("DATABASE_PATH", filepath.Join(tmpDir, "data", "audit.db"))
	return tmpDir
}

func TestGetEnvString(t *testing.T) {
	t.Setenv("TEST_ENV_STRING", "test_value")

	if got := getEnvString("TEST_ENV_STRING", "default"); got != "test_value" {
		t.Errorf("getEnvString() = %q, want %q", got, "test_value")
	}
	if got := getEnvString("NON_EXISTENT", "default"); got != "default" {
		t.Errorf("getEnvString() = %q, want %q", got, "default")
	}
}

func TestGetEnvDuration(t *testing.T) {
	key := "TEST_ENV_DURATION"

	tests := []struct {
		name       string
		envVal     string
		defaultVal time.Duration
		want       time.Duration
	}{
		{"ValidDuration", "1m", time.Second, time.Minute},
		{"ValidSeconds", "60", time.Second, 60 * time.Second},
		{"Invalid", "invalid", time.Second, time.Second},
		{"Empty", "", time.Second, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(key, tt.envVal)
			if got := getEnvDuration(key, tt.defaultVal); got != tt.want {
				t.Errorf("getEnvDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvNumbers(t *testing.T) {
	t.Setenv("TEST_INT", "25")
	t.Setenv("TEST_BAD_INT", "lots")
	t.Setenv("TEST_FLOAT", "0.55")

	if got := getEnvInt("TEST_INT", 1); got != 25 {
		t.Errorf("getEnvInt() = %d, want 25", got)
	}
	if got := getEnvInt("TEST_BAD_INT", 7); got != 7 {
		t.Errorf("getEnvInt() = %d, want default 7", got)
	}
	if got := getEnvFloat("TEST_FLOAT", 0.3); got != 0.55 {
		t.Errorf("getEnvFloat() = %v, want 0.55", got)
	}
}

func TestEnsureDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir")

	if err := ensureDir(path); err != nil {
		t.Fatalf("ensureDir() failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("directory was not created")
	}
	if err := ensureDir(""); err != nil {
		t.Error("ensureDir(\"\") should not error")
	}
}

func TestGetDefaultPaths(t *testing.T) {
	home := isolate(t)
	base := filepath.Join(home, ".config", "jalikoi")

	if got := getDefaultDatabasePath(); got != filepath.Join(base, "audit.db") {
		t.Errorf("getDefaultDatabasePath() = %q", got)
	}
	if got := getDefaultSessionPath(); got != filepath.Join(base, "session.json") {
		t.Errorf("getDefaultSessionPath() = %q", got)
	}
	if got := getDefaultLogPath(); got != filepath.Join(base, "tui.log") {
		t.Errorf("getDefaultLogPath() = %q", got)
	}
}

func TestGetEnvPaths(t *testing.T) {
	paths := getEnvPaths()
	if len(paths) == 0 {
		t.Fatal("getEnvPaths() returned empty list")
	}

	cwd, _ := os.Getwd()
	if paths[0] != filepath.Join(cwd, ".env") {
		t.Errorf("getEnvPaths()[0] = %q, want current directory .env", paths[0])
	}
}

func TestLoad_Defaults(t *testing.T) {
	tmpDir := isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.APIBaseURL != defaultAPIBaseURL {
		t.Errorf("APIBaseURL = %q, want %q", cfg.APIBaseURL, defaultAPIBaseURL)
	}
	if cfg.RequestTimeout != defaultRequestTimeout {
		t.Errorf("RequestTimeout = %v, want %v", cfg.RequestTimeout, defaultRequestTimeout)
	}
	if cfg.DefaultPeriod != models.PresetYesterday {
		t.Errorf("DefaultPeriod = %v, want yesterday", cfg.DefaultPeriod)
	}
	if cfg.Panels != DefaultPanelLimits() {
		t.Errorf("Panels = %+v, want defaults", cfg.Panels)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "data")); err != nil {
		t.Errorf("database directory was not created: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("API_BASE_URL", "https://analytics.example.com")
	t.Setenv("API_TOKEN", "tok")
	t.Setenv("DEFAULT_PERIOD", "month")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("ANOMALY_LIMIT", "25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.APIBaseURL != "https://analytics.example.com" || cfg.APIToken != "tok" {
		t.Errorf("unexpected API settings: %+v", cfg)
	}
	if cfg.DefaultPeriod != models.PresetMonth {
		t.Errorf("DefaultPeriod = %v, want month", cfg.DefaultPeriod)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v, want 5s", cfg.RequestTimeout)
	}
	if cfg.Panels.AnomalyLimit != 25 {
		t.Errorf("AnomalyLimit = %d, want 25", cfg.Panels.AnomalyLimit)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	tmpDir := isolate(t)
	path := filepath.Join(tmpDir, "panels.yaml")
	content := "panels:\n  churn_min_probability: 0.5\n  churn_limit: 20\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("CHURN_LIMIT", "15")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Panels.ChurnMinProbability != 0.5 {
		t.Errorf("ChurnMinProbability = %v, want 0.5 from file", cfg.Panels.ChurnMinProbability)
	}
	if cfg.Panels.ChurnLimit != 15 {
		t.Errorf("ChurnLimit = %d, env should win over file", cfg.Panels.ChurnLimit)
	}
	if cfg.Panels.ForecastTopN != 10 {
		t.Errorf("ForecastTopN = %d, unset keys keep defaults", cfg.Panels.ForecastTopN)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantMsg string
	}{
		{"bad url", "API_BASE_URL", "not a url", "APIBaseURL"},
		{"bad period", "DEFAULT_PERIOD", "fortnight", "DEFAULT_PERIOD"},
		{"custom period", "DEFAULT_PERIOD", "custom", "DEFAULT_PERIOD"},
		{"probability out of range", "CHURN_MIN_PROBABILITY", "1.5", "ChurnMinProbability"},
		{"zero limit", "ANOMALY_LIMIT", "0", "AnomalyLimit"},
		{"bad level", "LOG_LEVEL", "chatty", "LogLevel"},
		{"missing file", "CONFIG_FILE", "/nonexistent/panels.yaml", "not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoad_WithEnvFile(t *testing.T) {
	tmpDir := isolate(t)
	// godotenv does not override variables that are already set, even empty.
	os.Unsetenv("API_BASE_URL")
	envPath := filepath.Join(tmpDir, ".env")
	if err := os.WriteFile(envPath, []byte("API_BASE_URL=http://env-file:9000\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("API_BASE_URL") })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.APIBaseURL != "http://env-file:9000" {
		t.Errorf("APIBaseURL = %q, want value from .env", cfg.APIBaseURL)
	}
}
