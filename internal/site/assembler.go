// Package site turns a blueprint into the enriched payload served to the
// browser: ordered sections with images, icons and animations.
package site

import (
	"context"
	"math/rand/v2"
	"sort"
	"strings"

	"go.uber.org/zap"

	"site_prototype_server/internal/ai"
	"site_prototype_server/internal/logging"
	"site_prototype_server/internal/types"
	"site_prototype_server/internal/utils"
)

// ImagesPerSection is the number of images requested for each section.
const ImagesPerSection = 2

// AnimationStyles are the entry animations a section may get.
var AnimationStyles = []string{"fade-up", "zoom-in", "slide-right", "slide-left", "flip-up"}

// BlueprintSource produces a blueprint for a prompt and never fails.
type BlueprintSource interface {
	Generate(ctx context.Context, prompt string) types.Blueprint
}

// ImageFetcher returns image URLs for a query and never fails.
type ImageFetcher interface {
	Fetch(ctx context.Context, query string, count int) []string
}

// Chooser returns a uniformly random int in [0, n).
type Chooser func(n int) int

// Assembler builds payloads. It holds no per-request state.
type Assembler struct {
	blueprints BlueprintSource
	images     ImageFetcher
	choose     Chooser
	logger     *zap.Logger
}

// NewAssembler wires an Assembler. A nil choose uses math/rand/v2.
func NewAssembler(blueprints BlueprintSource, images ImageFetcher, choose Chooser, logger *zap.Logger) *Assembler {
	if choose == nil {
		choose = rand.IntN
	}
	return &Assembler{
		blueprints: blueprints,
		images:     images,
		choose:     choose,
		logger:     logging.OrNop(logger),
	}
}

// Assemble generates a blueprint for prompt and enriches every section.
// Sections are processed one at a time.
func (a *Assembler) Assemble(ctx context.Context, prompt string) types.Payload {
	bp := a.blueprints.Generate(ctx, prompt)

	siteTitle := strings.TrimSpace(bp.SiteTitle)
	if siteTitle == "" {
		siteTitle = utils.TitleCase(prompt)
	}

	keys := OrderKeys(bp.Sections)
	sections := make(types.Sections, 0, len(keys))
	for _, key := range keys {
		sections = append(sections, types.NamedSection{
			Key:     key,
			Section: a.enrich(ctx, prompt, key, bp.Sections[key]),
		})
	}

	a.logger.Debug("payload assembled",
		zap.String("site_title", siteTitle),
		zap.Strings("sections", keys),
	)

	return types.Payload{
		SiteTitle:  siteTitle,
		Theme:      resolvePalette(bp.Palette),
		Typography: resolveTypography(bp.Typography),
		Sections:   sections,
	}
}

func (a *Assembler) enrich(ctx context.Context, prompt, key string, spec types.SectionSpec) types.SectionResult {
	title := spec.Title
	if title == "" {
		title = utils.TitleCase(key)
	}
	keywords := []string(spec.Keywords)
	if len(keywords) == 0 {
		keywords = []string{prompt}
	}

	query := prompt + " " + strings.Join(utils.FirstN(keywords, 2), " ")

	result := types.SectionResult{
		Title:       title,
		Description: spec.Description,
		Images:      a.images.Fetch(ctx, query, ImagesPerSection),
		Keywords:    keywords,
		Icon:        ResolveIcon(key),
		Animation:   AnimationStyles[a.choose(len(AnimationStyles))],
	}
	if utils.IsContactKey(key) {
		result.SocialIcons = ContactSocialIcons()
	}
	return result
}

// OrderKeys puts keys equal to "home" (any case) first and sorts the rest
// lexicographically.
func OrderKeys(sections map[string]types.SectionSpec) []string {
	keys := make([]string, 0, len(sections))
	for k := range sections {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		hi, hj := utils.IsHomeKey(keys[i]), utils.IsHomeKey(keys[j])
		if hi != hj {
			return hi
		}
		return keys[i] < keys[j]
	})
	return keys
}

func resolvePalette(p *types.Palette) types.Palette {
	out := ai.DefaultPalette
	if p == nil {
		return out
	}
	if p.Primary != "" {
		out.Primary = p.Primary
	}
	if p.Accent != "" {
		out.Accent = p.Accent
	}
	if p.Bg != "" {
		out.Bg = p.Bg
	}
	return out
}

func resolveTypography(t *types.Typography) types.Typography {
	out := ai.DefaultTypography
	if t == nil {
		return out
	}
	if t.Heading != "" {
		out.Heading = t.Heading
	}
	if t.Body != "" {
		out.Body = t.Body
	}
	return out
}
