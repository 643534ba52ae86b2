package images

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	aiutils "site_prototype_server/internal/ai/utils"
	"site_prototype_server/internal/logging"
	"site_prototype_server/internal/metrics"
	"site_prototype_server/internal/utils"
)

const (
	// DefaultBaseURL is the Pexels API root.
	DefaultBaseURL = "https://api.pexels.com/v1"
	// DefaultTimeout bounds a single search request.
	DefaultTimeout = 15 * time.Second
)

// FallbackImages is served whenever a live search is unavailable or fails.
var FallbackImages = []string{
	"https://images.pexels.com/photos/3184465/pexels-photo-3184465.jpeg?auto=compress&cs=tinysrgb&w=800",
}

// Options configures a PexelsClient.
type Options struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

// PexelsClient searches Pexels for landscape photos.
type PexelsClient struct {
	apiKey  string
	resty   *resty.Client
	logger  *zap.Logger
	metrics *metrics.Metrics
}

type searchResponse struct {
	Photos []photo `json:"photos"`
}

type photo struct {
	Src struct {
		Large string `json:"large"`
	} `json:"src"`
}

// New creates a PexelsClient. Without an API key every Fetch returns the
// fallback list.
func New(opts Options) *PexelsClient {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("Authorization", opts.APIKey)

	return &PexelsClient{
		apiKey:  strings.TrimSpace(opts.APIKey),
		resty:   client,
		logger:  logging.OrNop(opts.Logger),
		metrics: opts.Metrics,
	}
}

// Fetch returns up to count image URLs for query. It never fails; on any
// problem it returns the first count fallback images.
func (p *PexelsClient) Fetch(ctx context.Context, query string, count int) []string {
	if count <= 0 {
		return []string{}
	}
	if p.apiKey == "" {
		p.metrics.RecordImageFetch(metrics.SourceFallback, aiutils.ReasonNotConfigured)
		return utils.FirstN(FallbackImages, count)
	}

	urls, err := p.search(ctx, query, count)
	if err != nil {
		reason := aiutils.ClassifyError(err)
		p.logger.Warn("image search failed, using fallback images",
			zap.String("query", query),
			zap.String("reason", reason),
			zap.Error(err),
		)
		p.metrics.RecordImageFetch(metrics.SourceFallback, reason)
		return utils.FirstN(FallbackImages, count)
	}
	if len(urls) == 0 {
		p.logger.Debug("image search returned no photos", zap.String("query", query))
		p.metrics.RecordImageFetch(metrics.SourceFallback, aiutils.ReasonEmpty)
		return utils.FirstN(FallbackImages, count)
	}

	p.metrics.RecordImageFetch(metrics.SourceLive, aiutils.ReasonNone)
	return utils.FirstN(urls, count)
}

func (p *PexelsClient) search(ctx context.Context, query string, count int) ([]string, error) {
	resp, err := p.resty.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"query":       query,
			"per_page":    strconv.Itoa(count),
			"orientation": "landscape",
		}).
		Get("/search")
	if err != nil {
		return nil, fmt.Errorf("pexels search request failed: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, &aiutils.StatusError{Service: "pexels", StatusCode: resp.StatusCode()}
	}

	var decoded searchResponse
	if err := json.Unmarshal(resp.Body(), &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode pexels response: %w", err)
	}

	urls := make([]string, 0, len(decoded.Photos))
	for _, ph := range decoded.Photos {
		if ph.Src.Large != "" {
			urls = append(urls, ph.Src.Large)
		}
	}
	return urls, nil
}
