package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"site_prototype_server/internal/ai/prompts"
	aiutils "site_prototype_server/internal/ai/utils"
	"site_prototype_server/internal/logging"
	"site_prototype_server/internal/metrics"
	"site_prototype_server/internal/types"
)

// DefaultLLMTimeout bounds a single generation call when none is configured.
const DefaultLLMTimeout = 60 * time.Second

var (
	// ErrEmptyResponse is returned when the model answers with no text.
	ErrEmptyResponse = errors.New("model returned an empty response")
	// ErrEmptyBlueprint is returned when the decoded blueprint has no sections.
	ErrEmptyBlueprint = errors.New("blueprint has no sections")
)

// TextGenerator is an LLM backend that turns a prompt into raw text.
type TextGenerator interface {
	Name() string
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Generator produces blueprints from website ideas. It is safe for concurrent use.
type Generator struct {
	llm     TextGenerator
	timeout time.Duration
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewGenerator creates a Generator. A nil llm means no backend is configured and
// every call returns FallbackBlueprint.
func NewGenerator(llm TextGenerator, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) *Generator {
	if timeout <= 0 {
		timeout = DefaultLLMTimeout
	}
	return &Generator{
		llm:     llm,
		timeout: timeout,
		logger:  logging.OrNop(logger),
		metrics: m,
	}
}

// Generate returns a blueprint for prompt. It never fails: any LLM problem is
// logged and answered with FallbackBlueprint.
func (g *Generator) Generate(ctx context.Context, prompt string) types.Blueprint {
	if g.llm == nil {
		g.metrics.RecordBlueprint(metrics.SourceFallback, aiutils.ReasonNotConfigured)
		return FallbackBlueprint(prompt)
	}

	start := time.Now()
	bp, err := g.fromLLM(ctx, prompt)
	if err != nil {
		reason := classify(err)
		g.logger.Warn("LLM blueprint failed, using fallback",
			zap.String("backend", g.llm.Name()),
			zap.String("reason", reason),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		g.metrics.RecordBlueprint(metrics.SourceFallback, reason)
		return FallbackBlueprint(prompt)
	}

	g.logger.Debug("LLM blueprint generated",
		zap.String("backend", g.llm.Name()),
		zap.Int("sections", len(bp.Sections)),
		zap.Duration("elapsed", time.Since(start)),
	)
	g.metrics.RecordBlueprint(metrics.SourceLive, aiutils.ReasonNone)
	return bp
}

func (g *Generator) fromLLM(ctx context.Context, prompt string) (bp types.Blueprint, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("LLM backend panicked: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := g.llm.GenerateText(ctx, prompts.GetBlueprintPrompt(prompt))
	if err != nil {
		return types.Blueprint{}, err
	}
	if strings.TrimSpace(raw) == "" {
		return types.Blueprint{}, ErrEmptyResponse
	}

	return ParseBlueprint(raw)
}

// ParseBlueprint extracts and decodes a blueprint from raw model output.
func ParseBlueprint(raw string) (types.Blueprint, error) {
	jsonText, err := aiutils.ExtractJSON(raw)
	if err != nil {
		return types.Blueprint{}, err
	}

	var bp types.Blueprint
	if err := json.Unmarshal([]byte(jsonText), &bp); err != nil {
		return types.Blueprint{}, fmt.Errorf("failed to decode blueprint JSON: %w", err)
	}
	if len(bp.Sections) == 0 {
		return types.Blueprint{}, ErrEmptyBlueprint
	}
	return bp, nil
}

func classify(err error) string {
	switch {
	case errors.Is(err, ErrEmptyResponse):
		return aiutils.ReasonEmpty
	case errors.Is(err, ErrEmptyBlueprint):
		return aiutils.ReasonParse
	default:
		return aiutils.ClassifyError(err)
	}
}
