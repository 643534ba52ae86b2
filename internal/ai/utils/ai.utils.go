package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"regexp"
	"strings"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// ErrNoJSONObject is returned when model output contains no {...} span.
var ErrNoJSONObject = errors.New("no JSON object in model output")

// Fallback reasons used for logging and metric labels.
const (
	ReasonNone          = ""
	ReasonNotConfigured = "not_configured"
	ReasonTimeout       = "timeout"
	ReasonRateLimited   = "rate_limited"
	ReasonUpstream      = "upstream"
	ReasonParse         = "parse"
	ReasonEmpty         = "empty"
	ReasonOther         = "other"
)

var (
	leadingFence  = regexp.MustCompile("^```(?:json)?\\s*")
	trailingFence = regexp.MustCompile("\\s*```$")
)

// ExtractJSON strips Markdown code fences from raw model output and returns the
// outermost {...} span.
func ExtractJSON(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	text = leadingFence.ReplaceAllString(text, "")
	text = trailingFence.ReplaceAllString(text, "")

	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < start {
		return "", ErrNoJSONObject
	}
	return text[start : end+1], nil
}

// ClassifyError maps a failed LLM or image call to a fallback reason.
func ClassifyError(err error) string {
	if err == nil {
		return ReasonNone
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ReasonTimeout
	}

	var openAIErr *openai.APIError
	if errors.As(err, &openAIErr) {
		return reasonForStatus(openAIErr.HTTPStatusCode)
	}
	var openAIReqErr *openai.RequestError
	if errors.As(err, &openAIReqErr) {
		return reasonForStatus(openAIReqErr.HTTPStatusCode)
	}
	var genaiErr genai.APIError
	if errors.As(err, &genaiErr) {
		return reasonForStatus(genaiErr.Code)
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return reasonForStatus(statusErr.StatusCode)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.Is(err, ErrNoJSONObject) || errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return ReasonParse
	}

	errMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errMsg, "rate limit"):
		return ReasonRateLimited
	case strings.Contains(errMsg, "timeout"):
		return ReasonTimeout
	case strings.Contains(errMsg, "connection reset by peer"),
		strings.Contains(errMsg, "connection refused"):
		return ReasonUpstream
	}
	return ReasonOther
}

// StatusError reports a non-2xx response from an upstream HTTP API.
type StatusError struct {
	Service    string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned HTTP %d", e.Service, e.StatusCode)
}

func reasonForStatus(code int) string {
	switch {
	case code == 429:
		return ReasonRateLimited
	case code == 408 || code == 504:
		return ReasonTimeout
	default:
		return ReasonUpstream
	}
}
