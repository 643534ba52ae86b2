package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	aiutils "site_prototype_server/internal/ai/utils"
	"site_prototype_server/internal/metrics"
)

// stubLLM returns canned output and records the prompt it was given.
type stubLLM struct {
	text     string
	err      error
	panicMsg string
	block    bool
	prompts  []string
}

func (s *stubLLM) Name() string { return "stub" }

func (s *stubLLM) GenerateText(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	if s.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return s.text, s.err
}

const validBlueprint = `{
  "siteTitle": "Crumb & Co",
  "palette": {"primary": "#111111", "accent": "#222222", "bg": "#333333"},
  "typography": {"heading": "Lora", "body": "Roboto"},
  "sections": {
    "home": {"title": "Fresh Bread", "description": "Daily loaves.", "keywords": ["bread", "oven", "flour"]},
    "services": {"title": "Catering", "description": "Events.", "keywords": "events"}
  }
}`

func newTestGenerator(t *testing.T, llm TextGenerator) (*Generator, *metrics.Metrics) {
	m := metrics.New()
	return NewGenerator(llm, time.Second, zaptest.NewLogger(t), m), m
}

func assertFallback(t *testing.T, prompt string, got interface{}) {
	t.Helper()
	assert.Equal(t, FallbackBlueprint(prompt), got)
}

func TestGenerate_NoBackendUsesFallback(t *testing.T) {
	g, m := newTestGenerator(t, nil)

	bp := g.Generate(context.Background(), "bakery")

	assertFallback(t, "bakery", bp)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BlueprintsTotal.WithLabelValues(metrics.SourceFallback, aiutils.ReasonNotConfigured)))
}

func TestGenerate_ParsesFencedOutput(t *testing.T) {
	llm := &stubLLM{text: "```json\n" + validBlueprint + "\n```"}
	g, m := newTestGenerator(t, llm)

	bp := g.Generate(context.Background(), "bakery")

	assert.Equal(t, "Crumb & Co", bp.SiteTitle)
	require.NotNil(t, bp.Palette)
	assert.Equal(t, "#111111", bp.Palette.Primary)
	require.NotNil(t, bp.Typography)
	assert.Equal(t, "Lora", bp.Typography.Heading)
	require.Len(t, bp.Sections, 2)
	assert.Equal(t, []string{"bread", "oven", "flour"}, []string(bp.Sections["home"].Keywords))
	assert.Equal(t, []string{"events"}, []string(bp.Sections["services"].Keywords))

	require.Len(t, llm.prompts, 1)
	assert.True(t, strings.HasSuffix(llm.prompts[0], "Prompt: bakery"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BlueprintsTotal.WithLabelValues(metrics.SourceLive, aiutils.ReasonNone)))
}

func TestGenerate_FailuresUseFallback(t *testing.T) {
	tests := []struct {
		name   string
		llm    *stubLLM
		reason string
	}{
		{name: "client error", llm: &stubLLM{err: errors.New("boom")}, reason: aiutils.ReasonOther},
		{name: "empty text", llm: &stubLLM{text: "   "}, reason: aiutils.ReasonEmpty},
		{name: "prose only", llm: &stubLLM{text: "I cannot help with that."}, reason: aiutils.ReasonParse},
		{name: "broken json", llm: &stubLLM{text: `{"siteTitle": "x", "sections": {`}, reason: aiutils.ReasonParse},
		{name: "wrong types", llm: &stubLLM{text: `{"siteTitle": 12, "sections": {"home": {}}}`}, reason: aiutils.ReasonParse},
		{name: "no sections", llm: &stubLLM{text: `{"siteTitle": "x", "sections": {}}`}, reason: aiutils.ReasonParse},
		{name: "panic", llm: &stubLLM{panicMsg: "nil map"}, reason: aiutils.ReasonOther},
		{name: "timeout", llm: &stubLLM{block: true}, reason: aiutils.ReasonTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := metrics.New()
			g := NewGenerator(tt.llm, 20*time.Millisecond, zaptest.NewLogger(t), m)

			bp := g.Generate(context.Background(), "bakery")

			assertFallback(t, "bakery", bp)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.BlueprintsTotal.WithLabelValues(metrics.SourceFallback, tt.reason)))
		})
	}
}

func TestGenerate_NeverFailsForOddPrompts(t *testing.T) {
	prompts := []string{"", "{", "}{", `{"sections":{}}`, strings.Repeat("long idea ", 5000)}

	for _, p := range prompts {
		llm := &stubLLM{text: "echo " + p}
		g, _ := newTestGenerator(t, llm)

		assert.NotPanics(t, func() {
			bp := g.Generate(context.Background(), p)
			assert.NotEmpty(t, bp.Sections)
		})
	}
}

func TestNewGenerator_DefaultTimeout(t *testing.T) {
	g := NewGenerator(nil, 0, nil, nil)
	assert.Equal(t, DefaultLLMTimeout, g.timeout)
	assert.NotNil(t, g.logger)

	// nil metrics must be tolerated
	assert.NotPanics(t, func() { g.Generate(context.Background(), "x") })
}

func TestParseBlueprint(t *testing.T) {
	bp, err := ParseBlueprint("Sure! Here it is:\n" + validBlueprint)
	require.NoError(t, err)
	assert.Equal(t, "Crumb & Co", bp.SiteTitle)

	_, err = ParseBlueprint(`{"sections": null}`)
	assert.ErrorIs(t, err, ErrEmptyBlueprint)

	_, err = ParseBlueprint("nothing")
	assert.ErrorIs(t, err, aiutils.ErrNoJSONObject)
}
