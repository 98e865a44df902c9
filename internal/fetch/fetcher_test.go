package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Ag-Linings/requirement-specifications/internal/model"
)

func testConfig(baseURL string) model.SearchConfig {
	return model.SearchConfig{
		Enabled:           true,
		BaseURL:           baseURL,
		UserAgent:         "reqspec-test/0.1",
		Timeout:           5,
		MaxBodyBytes:      1024,
		RequestsPerSecond: 100,
		Burst:             10,
	}
}

func TestFetcher_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("User-Agent") != "reqspec-test/0.1" {
			t.Errorf("Unexpected User-Agent: %s", r.Header.Get("User-Agent"))
		}
		_, _ = w.Write([]byte("<html><body>The system must work.</body></html>"))
	}))
	defer server.Close()

	f := NewFetcher(testConfig(server.URL))
	body, err := f.Fetch(context.Background(), server.URL+"/page")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if !strings.Contains(body, "The system must work.") {
		t.Errorf("Unexpected body: %q", body)
	}
}

func TestFetcher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	f := NewFetcher(testConfig(server.URL))
	if _, err := f.Fetch(context.Background(), server.URL+"/page"); err == nil {
		t.Fatal("Expected error for 503 response, got nil")
	}
}

func TestFetcher_RespectsRobots(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private\n"))
			return
		}
		_, _ = w.Write([]byte("secret"))
	}))
	defer server.Close()

	f := NewFetcher(testConfig(server.URL))
	if _, err := f.Fetch(context.Background(), server.URL+"/private/page"); err == nil {
		t.Fatal("Expected robots.txt to block the fetch")
	}
}

func TestFetcher_BodySizeLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(strings.Repeat("x", 10_000)))
	}))
	defer server.Close()

	f := NewFetcher(testConfig(server.URL))
	body, err := f.Fetch(context.Background(), server.URL+"/page")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(body) > 1024 {
		t.Errorf("Expected body capped at 1024 bytes, got %d", len(body))
	}
}
