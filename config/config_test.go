package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// clearEnv blanks every config key so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for key := range defaults {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.ServerAddress)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ProviderGemini, cfg.LLMProvider)
	assert.Equal(t, "gemini-1.5-flash", cfg.GeminiModel)
	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
	assert.Equal(t, 60*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 15*time.Second, cfg.ImageTimeout)
	assert.Equal(t, "https://api.pexels.com/v1", cfg.PexelsBaseURL)
	assert.Empty(t, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.LLMConfigured())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_ADDRESS", ":9000")
	t.Setenv("APP_ENV", "production")
	t.Setenv("LLM_PROVIDER", " OpenAI ")
	t.Setenv("OPENAI_API_KEY", " sk-test ")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("PEXELS_API_KEY", "px")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ServerAddress)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ProviderOpenAI, cfg.LLMProvider)
	assert.Equal(t, "sk-test", cfg.OpenAIKey)
	assert.True(t, cfg.LLMConfigured())
	assert.Equal(t, 5*time.Second, cfg.LLMTimeout)
	assert.Equal(t, "px", cfg.PexelsAPIKey)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_File(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	yaml := "GEMINI_API_KEY: from-file\nGEMINI_MODEL: gemini-2.0-flash\nIMAGE_TIMEOUT: 3s\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.GeminiModel)
	assert.Equal(t, 3*time.Second, cfg.ImageTimeout)
	assert.True(t, cfg.LLMConfigured())
}

func TestLoadConfig_BrokenFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("GEMINI_MODEL: [unclosed"), 0o644))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestLoadConfig_UnknownProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "llama")

	_, err := LoadConfig(t.TempDir())
	assert.ErrorContains(t, err, "llama")
}

func TestLogWarnings(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	Config{LLMProvider: ProviderGemini}.LogWarnings(zap.New(core))
	assert.Equal(t, 2, logs.Len())

	core, logs = observer.New(zapcore.WarnLevel)
	Config{LLMProvider: ProviderGemini, GeminiAPIKey: "k", PexelsAPIKey: "p"}.LogWarnings(zap.New(core))
	assert.Zero(t, logs.Len())
}
