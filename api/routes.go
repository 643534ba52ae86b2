package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	handlers "site_prototype_server/internal/api"
	"site_prototype_server/internal/logging"
	"site_prototype_server/internal/metrics"
)

// RegisterRoutes sets up the API endpoints.
func RegisterRoutes(router *gin.Engine, h *handlers.APIHandler, m *metrics.Metrics) {
	// --- Prototype page and generation ---
	router.GET("/", h.Index)
	router.POST("/generate_prototype", h.GeneratePrototype)

	// --- Operations ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}
}

// NewRouter builds the gin engine with recovery, request IDs, logging, metrics
// and CORS middleware, and registers all routes.
func NewRouter(h *handlers.APIHandler, m *metrics.Metrics, logger *zap.Logger, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(handlers.RequestID())
	router.Use(logging.Middleware(logger))
	if m != nil {
		router.Use(metrics.Middleware(m))
	}
	router.Use(cors.New(corsConfig(allowedOrigins)))

	RegisterRoutes(router, h, m)
	return router
}

func corsConfig(allowedOrigins []string) cors.Config {
	config := cors.DefaultConfig()
	if len(allowedOrigins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowedOrigins
	}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = append(config.AllowHeaders, handlers.RequestIDHeader)
	config.ExposeHeaders = []string{handlers.RequestIDHeader}
	return config
}
