package strategy

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Ag-Linings/requirement-specifications/internal/model"
)

func searchConfig(baseURL string) model.SearchConfig {
	return model.SearchConfig{
		Enabled:           true,
		BaseURL:           baseURL,
		UserAgent:         "reqspec-test/0.1",
		Timeout:           5,
		MaxBodyBytes:      1 << 20,
		RequestsPerSecond: 100,
		Burst:             10,
	}
}

func TestSearchStrategy_ExtractsFromSnippets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		if q := r.URL.Query().Get("q"); !strings.Contains(q, "software requirements") {
			t.Errorf("Expected query biased toward requirements, got %q", q)
		}
		_, _ = w.Write([]byte(`<html><body>
			<div class="result__snippet">An inventory system must track stock levels continuously.</div>
			<div class="result__snippet">Reports should be generated every night.</div>
			<div class="other">ignore this block entirely</div>
		</body></html>`))
	}))
	defer server.Close()

	s := NewSearchStrategy(searchConfig(server.URL))
	result, err := s.Attempt(context.Background(), "track inventory stock levels")
	if err != nil {
		t.Fatalf("Attempt failed: %v", err)
	}

	if len(result.Requirements) != 2 {
		t.Fatalf("Expected 2 requirements, got %d", len(result.Requirements))
	}
	if result.Source != "websearch" {
		t.Errorf("Expected source websearch, got %s", result.Source)
	}
}

func TestSearchStrategy_FetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	s := NewSearchStrategy(searchConfig(server.URL))
	if _, err := s.Attempt(context.Background(), "some input text"); err == nil {
		t.Fatal("Expected error for 502 response, got nil")
	}
}

func TestSearchStrategy_UselessPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`<html><body><p>hi</p></body></html>`))
	}))
	defer server.Close()

	s := NewSearchStrategy(searchConfig(server.URL))
	_, err := s.Attempt(context.Background(), "x. y.")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("Expected ErrMalformedResponse, got %v", err)
	}
}
