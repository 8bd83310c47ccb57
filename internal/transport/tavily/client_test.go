package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/claimlens/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterUpstreamMetrics()
	os.Exit(m.Run())
}

func newTestClient(baseURL string, timeout time.Duration) *Client {
	return NewClient(&Config{
		APIKey:      "tvly-test",
		BaseURL:     baseURL,
		SearchDepth: "basic",
		Timeout:     timeout,
		Logger:      zap.NewNop(),
	})
}

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}

		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.APIKey != "tvly-test" {
			t.Errorf("api_key = %q, want tvly-test", req.APIKey)
		}
		if req.Query != "nasa aliens" {
			t.Errorf("query = %q, want %q", req.Query, "nasa aliens")
		}
		if req.MaxResults != 5 {
			t.Errorf("max_results = %d, want 5", req.MaxResults)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"results": [
				{"title": "NASA statement", "url": "https://a", "content": "no evidence of aliens", "score": 0.92},
				{"title": "Fact check", "url": "https://b", "content": "", "score": 0.55}
			]
		}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, 0)

	articles, err := c.Search(context.Background(), "nasa aliens", 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	if got := articles[0].Source(); got != "NASA statement - no evidence of aliens" {
		t.Errorf("source[0] = %q", got)
	}
	// Missing content renders as empty string after the separator.
	if got := articles[1].Source(); got != "Fact check - " {
		t.Errorf("source[1] = %q", got)
	}
}

func TestSearch_TruncatesToLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"results": [
				{"title": "a", "content": "1"},
				{"title": "b", "content": "2"},
				{"title": "c", "content": "3"}
			]
		}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, 0)

	articles, err := c.Search(context.Background(), "q", 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles after truncation, got %d", len(articles))
	}
	if articles[1].Title != "b" {
		t.Errorf("ordering must be preserved, got %q", articles[1].Title)
	}
}

func TestSearch_EmptyResultsIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, 0)

	articles, err := c.Search(context.Background(), "q", 5)
	if err != nil {
		t.Fatalf("empty results must not be an error, got %v", err)
	}
	if len(articles) != 0 {
		t.Fatalf("expected 0 articles, got %d", len(articles))
	}
}

func TestSearch_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "invalid api key"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, 0)

	_, err := c.Search(context.Background(), "q", 5)
	if err == nil {
		t.Fatal("expected an error for non-200 response")
	}
	if !strings.Contains(err.Error(), "401") || !strings.Contains(err.Error(), "invalid api key") {
		t.Errorf("error %q must carry status and body", err.Error())
	}
}

func TestSearch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, 20*time.Millisecond)

	_, err := c.Search(context.Background(), "q", 5)
	if err == nil {
		t.Fatal("expected a timeout error")
	}
}
