package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// LLM providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config holds all configuration for the application.
// Mapstructure tags map environment variables and config file keys.
type Config struct {
	// Server Configuration
	ServerAddress      string   `mapstructure:"SERVER_ADDRESS"`       // e.g., ":5000"
	AppEnv             string   `mapstructure:"APP_ENV"`              // "production" switches gin and zap to release mode
	LogLevel           string   `mapstructure:"LOG_LEVEL"`            // debug, info, warn, error
	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"` // empty allows every origin

	// AI Configuration
	LLMProvider   string        `mapstructure:"LLM_PROVIDER"` // "gemini" or "openai"
	GeminiAPIKey  string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel   string        `mapstructure:"GEMINI_MODEL"`
	OpenAIKey     string        `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel   string        `mapstructure:"OPENAI_MODEL"`
	OpenAIBaseURL string        `mapstructure:"OPENAI_BASE_URL"`
	LLMTimeout    time.Duration `mapstructure:"LLM_TIMEOUT"`

	// Image Search Configuration
	PexelsAPIKey  string        `mapstructure:"PEXELS_API_KEY"`
	PexelsBaseURL string        `mapstructure:"PEXELS_BASE_URL"`
	ImageTimeout  time.Duration `mapstructure:"IMAGE_TIMEOUT"`
}

var defaults = map[string]any{
	"SERVER_ADDRESS":       ":5000",
	"APP_ENV":              "development",
	"LOG_LEVEL":            "info",
	"CORS_ALLOWED_ORIGINS": []string{},
	"LLM_PROVIDER":         ProviderGemini,
	"GEMINI_API_KEY":       "",
	"GEMINI_MODEL":         "gemini-1.5-flash",
	"OPENAI_API_KEY":       "",
	"OPENAI_MODEL":         "gpt-4o",
	"OPENAI_BASE_URL":      "",
	"LLM_TIMEOUT":          60 * time.Second,
	"PEXELS_API_KEY":       "",
	"PEXELS_BASE_URL":      "https://api.pexels.com/v1",
	"IMAGE_TIMEOUT":        15 * time.Second,
}

// LoadConfig reads configuration from an optional config.yaml in path and from
// environment variables, which take precedence.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Unmarshal only sees keys viper knows about, so every key gets a default.
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.LLMProvider = strings.ToLower(strings.TrimSpace(config.LLMProvider))
	switch config.LLMProvider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return Config{}, fmt.Errorf("unsupported LLM_PROVIDER %q", config.LLMProvider)
	}

	config.GeminiAPIKey = strings.TrimSpace(config.GeminiAPIKey)
	config.OpenAIKey = strings.TrimSpace(config.OpenAIKey)
	config.PexelsAPIKey = strings.TrimSpace(config.PexelsAPIKey)
	config.CORSAllowedOrigins = cleanList(config.CORSAllowedOrigins)

	return config, nil
}

// IsProduction reports whether the service runs in release mode.
func (c Config) IsProduction() bool {
	env := strings.ToLower(c.AppEnv)
	return env == "production" || env == "prod"
}

// LLMConfigured reports whether the selected provider has an API key.
func (c Config) LLMConfigured() bool {
	switch c.LLMProvider {
	case ProviderOpenAI:
		return c.OpenAIKey != ""
	default:
		return c.GeminiAPIKey != ""
	}
}

// LogWarnings reports missing credentials. Both only switch on a fallback path.
func (c Config) LogWarnings(logger *zap.Logger) {
	if !c.LLMConfigured() {
		logger.Warn("LLM API key not set, blueprints will use the built-in fallback",
			zap.String("provider", c.LLMProvider))
	}
	if c.PexelsAPIKey == "" {
		logger.Warn("PEXELS_API_KEY not set, sections will use fallback images")
	}
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
