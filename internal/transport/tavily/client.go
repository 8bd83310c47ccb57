package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/claimlens/internal/domain"
	"github.com/kailas-cloud/claimlens/internal/metrics"
)

const (
	defaultBaseURL = "https://api.tavily.com"
	defaultTimeout = 8 * time.Second

	maxErrorBodyBytes = 4096
)

// Client calls the Tavily web search REST API.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	depth      string
	timeout    time.Duration
	logger     *zap.Logger
}

// Config holds the search provider settings.
type Config struct {
	APIKey      string
	BaseURL     string
	SearchDepth string        // "basic" (default) or "advanced"
	Timeout     time.Duration // per-request timeout, default 8s
	Logger      *zap.Logger
}

// NewClient creates a Tavily search client.
func NewClient(cfg *Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		httpClient: &http.Client{},
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		depth:      cfg.SearchDepth,
		timeout:    timeout,
		logger:     cfg.Logger,
	}
}

// searchRequest is the Tavily POST /search request body.
type searchRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth,omitempty"`
	MaxResults  int    `json:"max_results,omitempty"`
}

// searchResponse is the subset of the Tavily response the pipeline consumes.
type searchResponse struct {
	Results []struct {
		Title   string  `json:"title"`
		URL     string  `json:"url"`
		Content string  `json:"content"`
		Score   float64 `json:"score"`
	} `json:"results"`
}

// Search issues the query and returns at most limit articles, in API order.
// An empty result list is a valid outcome, not an error.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(searchRequest{
		APIKey:      c.apiKey,
		Query:       query,
		SearchDepth: c.depth,
		MaxResults:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("encode search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()

	resp, err := c.httpClient.Do(req)

	duration := time.Since(start)

	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("tavily", "search", "error").Inc()
		metrics.UpstreamErrorsTotal.WithLabelValues("tavily", "search", "transport").Inc()
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamRequestsTotal.WithLabelValues("tavily", "search", "error").Inc()
		metrics.UpstreamErrorsTotal.WithLabelValues("tavily", "search", "api_error").Inc()
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, fmt.Errorf("search API error %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("tavily", "search", "error").Inc()
		metrics.UpstreamErrorsTotal.WithLabelValues("tavily", "search", "decode").Inc()
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues("tavily", "search", "success").Inc()
	metrics.UpstreamRequestDuration.WithLabelValues("tavily", "search").Observe(duration.Seconds())

	results := parsed.Results
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	articles := make([]domain.Article, len(results))
	for i, r := range results {
		articles[i] = domain.Article{
			Title:   r.Title,
			URL:     r.URL,
			Content: r.Content,
			Score:   r.Score,
		}
	}
	return articles, nil
}
