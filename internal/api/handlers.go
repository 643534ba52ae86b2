package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"site_prototype_server/internal/logging"
	"site_prototype_server/internal/types"
)

// DefaultPrompt replaces a missing or blank prompt.
const DefaultPrompt = "Website"

// PayloadAssembler builds the prototype payload for a prompt.
type PayloadAssembler interface {
	Assemble(ctx context.Context, prompt string) types.Payload
}

// APIHandler holds dependencies for API endpoints.
type APIHandler struct {
	assembler PayloadAssembler
	indexHTML []byte
	logger    *zap.Logger
}

// NewAPIHandler initializes a new API handler with its dependencies.
func NewAPIHandler(assembler PayloadAssembler, indexHTML []byte, logger *zap.Logger) *APIHandler {
	return &APIHandler{
		assembler: assembler,
		indexHTML: indexHTML,
		logger:    logging.OrNop(logger),
	}
}

// --- Structs for API Requests/Responses ---

type GeneratePrototypeRequest struct {
	Prompt string `json:"prompt"`
}

// --- API Handlers ---

// GET /
func (h *APIHandler) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", h.indexHTML)
}

// POST /generate_prototype
//
// Malformed bodies are not rejected: the prompt falls back to DefaultPrompt
// and the response is always 200 with a full payload.
func (h *APIHandler) GeneratePrototype(c *gin.Context) {
	var req GeneratePrototypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("unreadable prototype request, using default prompt",
			zap.String("request_id", c.GetString(logging.RequestIDKey)),
			zap.Error(err),
		)
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		prompt = DefaultPrompt
	}

	h.logger.Info("generating prototype",
		zap.String("request_id", c.GetString(logging.RequestIDKey)),
		zap.Int("prompt_length", len(prompt)),
	)

	payload := h.assembler.Assemble(c.Request.Context(), prompt)

	h.logger.Info("prototype generated",
		zap.String("request_id", c.GetString(logging.RequestIDKey)),
		zap.Int("sections", len(payload.Sections)),
	)
	c.JSON(http.StatusOK, payload)
}
