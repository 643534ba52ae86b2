package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"site_prototype_server/api"
	"site_prototype_server/config"
	"site_prototype_server/internal/ai"
	handlers "site_prototype_server/internal/api"
	"site_prototype_server/internal/images"
	"site_prototype_server/internal/logging"
	"site_prototype_server/internal/metrics"
	"site_prototype_server/internal/site"
	"site_prototype_server/web"
)

func main() {
	// --- Load .env file ---
	// Must happen before viper reads the environment.
	envErr := godotenv.Load()

	// --- Configuration Loading ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		zap.NewExample().Fatal("cannot load config", zap.Error(err))
	}

	logger, err := logging.New(cfg.LogLevel, !cfg.IsProduction())
	if err != nil {
		zap.NewExample().Fatal("cannot build logger", zap.String("level", cfg.LogLevel), zap.Error(err))
	}
	defer func() { _ = logger.Sync() }()

	if envErr != nil && !os.IsNotExist(envErr) {
		logger.Warn("error loading .env file", zap.Error(envErr))
	}
	cfg.LogWarnings(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Dependency Initialization ---
	m := metrics.New()

	llm, err := newTextGenerator(ctx, cfg)
	if err != nil {
		// A broken client is treated like a missing key.
		logger.Warn("LLM client unavailable, blueprints will use the built-in fallback", zap.Error(err))
		llm = nil
	}
	generator := ai.NewGenerator(llm, cfg.LLMTimeout, logger.Named("blueprint"), m)

	imageFetcher := images.New(images.Options{
		APIKey:  cfg.PexelsAPIKey,
		BaseURL: cfg.PexelsBaseURL,
		Timeout: cfg.ImageTimeout,
		Logger:  logger.Named("images"),
		Metrics: m,
	})

	assembler := site.NewAssembler(generator, imageFetcher, nil, logger.Named("assembler"))
	apiHandler := handlers.NewAPIHandler(assembler, web.IndexHTML, logger.Named("api"))

	// --- Start API Server ---
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := api.NewRouter(apiHandler, m, logger.Named("http"), cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: router,
		// WriteTimeout covers the LLM call plus one image search per section.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.LLMTimeout + 10*cfg.ImageTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting API server",
			zap.String("address", cfg.ServerAddress),
			zap.String("llm_provider", cfg.LLMProvider),
			zap.Bool("llm_configured", llm != nil),
			zap.Bool("images_configured", cfg.PexelsAPIKey != ""),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("API server listen error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("shutting down server", zap.String("signal", sig.String()))

	shutdownCtx, serverCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer serverCancel()
	cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("API server forced shutdown", zap.Error(err))
	} else {
		logger.Info("API server gracefully stopped")
	}
}

// newTextGenerator returns the configured LLM backend, or nil when the selected
// provider has no API key.
func newTextGenerator(ctx context.Context, cfg config.Config) (ai.TextGenerator, error) {
	if !cfg.LLMConfigured() {
		return nil, nil
	}
	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		return ai.NewOpenAIBackend(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL), nil
	default:
		backend, err := ai.NewGeminiBackend(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		return backend, nil
	}
}
