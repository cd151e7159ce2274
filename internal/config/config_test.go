package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp runs the test from an empty directory so no stray .env is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)
	for _, k := range []string{"PORT", "LOG_LEVEL", "REDIS_ADDR", "LLM_PROVIDER", "LLM_MODEL", "LLM_API_KEY", "LLM_TEMPERATURE", "WORKER_CONCURRENCY", "WORKER_ASYNC", "LLM_CACHE_DIR", "LLM_CACHE_TTL", "CORS_ALLOWED_ORIGINS", "CATALOG_PATH"} {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "gpt-4", cfg.LLM.Model)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 1e-6)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 4, cfg.Worker.Concurrency)
	assert.Equal(t, 24*time.Hour, cfg.Worker.JobRetention)
	assert.False(t, cfg.Worker.Async)
	assert.Empty(t, cfg.LLM.CacheDir)
	assert.Equal(t, 24*time.Hour, cfg.LLM.CacheTTL)
	assert.Empty(t, cfg.CatalogPath)
	assert.False(t, cfg.HasLLM())
}

func TestLoad_FromEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("LLM_MODEL", "gemini-2.5-flash")
	t.Setenv("LLM_API_KEY", "secret")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.HasLLM())
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("LLM_API_KEY", "")
	_ = os.Unsetenv("LLM_API_KEY")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LLM_API_KEY=from-dotenv\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("LLM_API_KEY") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.LLM.APIKey)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"LLM_PROVIDER", "anthropic-compatible-thing"},
		{"LLM_TEMPERATURE", "3"},
		{"LLM_TEMPERATURE", "warm"},
		{"WORKER_CONCURRENCY", "0"},
		{"LLM_TIMEOUT", "-1s"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			chdirTemp(t)
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		LLM:    LLMConfig{Provider: ProviderOpenAI, Temperature: 0.7, Timeout: time.Second},
		Worker: WorkerConfig{Concurrency: 1},
	}
	assert.NoError(t, cfg.Validate())

	cfg.LLM.Provider = ""
	assert.Error(t, cfg.Validate())
}
