package analysis

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	analyzePath  = "/analyze"
	generatePath = "/generate_and_analyze"
)

// DefaultTimeout bounds a single request when the caller does not pick one.
const DefaultTimeout = 30 * time.Second

// Sentiment is the coarse polarity reported by the classifier.
type Sentiment string

const (
	Positive Sentiment = "positive"
	Negative Sentiment = "negative"
	Neutral  Sentiment = "neutral"
)

// Distribution is the per-class breakdown returned alongside a label.
type Distribution struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// Response is a decoded classifier reply. It is immutable once returned.
type Response struct {
	Success       bool
	Sentiment     Sentiment
	Confidence    float64
	Explanation   string
	Keywords      []string
	Distribution  *Distribution
	GeneratedText string
	Error         string
}

// Config describes how to reach the classifier.
type Config struct {
	Endpoint   string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client sends text to the remote classifier. Each call is a single attempt.
type Client interface {
	Analyze(ctx context.Context, text string) (Response, error)
	Generate(ctx context.Context, prompt string) (Response, error)
	Name() string
}

// New validates the endpoint and returns an HTTP backed Client.
func New(cfg Config) (Client, error) {
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	if endpoint == "" {
		return nil, fmt.Errorf("analysis endpoint is required")
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid analysis endpoint %q: %w", endpoint, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid analysis endpoint %q: scheme must be http or https", endpoint)
	}
	return &httpClient{
		base:   endpoint,
		client: pickHTTPClient(cfg.HTTPClient, cfg.Timeout),
	}, nil
}

func pickHTTPClient(custom *http.Client, timeout time.Duration) *http.Client {
	if custom != nil {
		return custom
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
