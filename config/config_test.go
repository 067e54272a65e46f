package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// unset clears the variables Load reads, restored after the test.
func unset(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GHOSTFOLIO_BASE_URL", "GHOSTFOLIO_TOKEN", "GHOSTFOLIO_REQUEST_TIMEOUT", "GHOSTFOLIO_RATE_LIMIT",
		"GHOSTFOLIO_DEFAULT_DATA_SOURCE", "EODHD_API_KEY", "LLM_ENABLED", "GEMINI_API_KEY", "GEMINI_MODEL",
		"LISTEN_ADDR", "SESSION_DSN", "LOG_LEVEL", "LOG_PRETTY", "TRACING_EXPORTER",
	} {
		if v, ok := os.LookupEnv(k); ok {
			t.Setenv(k, v) // registers the restore
			os.Unsetenv(k)
		}
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	unset(t)
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	want := Config{
		GhostfolioBaseURL: "https://ghostfol.io",
		GhostfolioTimeout: 10 * time.Second,
		GhostfolioRate:    5,
		DefaultDataSource: Mock,
		GeminiModel:       "gemini-2.5-flash",
		ListenAddr:        ":8000",
		LogLevel:          "info",
		TracingExporter:   "none",
	}
	if *cfg != want {
		t.Errorf("LoadFromEnv() = %+v, want %+v", *cfg, want)
	}
}

func TestLoadFromEnv(t *testing.T) {
	unset(t)
	t.Setenv("GHOSTFOLIO_DEFAULT_DATA_SOURCE", "ghostfolio_api")
	t.Setenv("GHOSTFOLIO_TOKEN", "secret")
	t.Setenv("GHOSTFOLIO_REQUEST_TIMEOUT", "2500ms")
	t.Setenv("LLM_ENABLED", "true")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("SESSION_DSN", "sessions.db")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.DefaultDataSource != GhostfolioAPI || cfg.GhostfolioTimeout != 2500*time.Millisecond || !cfg.LLMEnabled || cfg.SessionDSN != "sessions.db" {
		t.Errorf("LoadFromEnv() = %+v", *cfg)
	}
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		env  map[string]string
		want string
	}{
		{map[string]string{"GHOSTFOLIO_DEFAULT_DATA_SOURCE": "excel"}, "unknown data source"},
		{map[string]string{"GHOSTFOLIO_DEFAULT_DATA_SOURCE": "ghostfolio_api"}, "GHOSTFOLIO_TOKEN is required"},
		{map[string]string{"LLM_ENABLED": "true"}, "GEMINI_API_KEY is required"},
		{map[string]string{"TRACING_EXPORTER": "jaeger"}, "unsupported exporter"},
		{map[string]string{"GHOSTFOLIO_REQUEST_TIMEOUT": "soon"}, "failed to load config"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			unset(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := LoadFromEnv(); err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadFromEnv() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	unset(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("LISTEN_ADDR=:9999\nGEMINI_MODEL=gemini-test\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	// godotenv sets the variables for real, make sure they go away
	t.Setenv("LISTEN_ADDR", "")
	os.Unsetenv("LISTEN_ADDR")
	t.Setenv("GEMINI_MODEL", "")
	os.Unsetenv("GEMINI_MODEL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ListenAddr != ":9999" || cfg.GeminiModel != "gemini-test" {
		t.Errorf("Load() = %q, %q, want values from .env", cfg.ListenAddr, cfg.GeminiModel)
	}
}
