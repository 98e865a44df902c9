// Package llm wraps remote completion providers behind a uniform interface.
// Providers are opaque capabilities: given a prompt, they return raw text or
// fail. Parsing that text into requirements happens in the strategy layer.
package llm

import (
	"context"
	"time"
)

// Provider defines the interface for LLM completion backends.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete performs a single completion call and returns the raw text
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionRequest contains the input for one completion call.
type CompletionRequest struct {
	// SystemPrompt sets the model's role and output contract
	SystemPrompt string

	// UserPrompt is the raw requirement text to analyze
	UserPrompt string

	// Model overrides the provider's configured model when non-empty
	Model string

	// MaxTokens limits the response length
	MaxTokens int

	// Temperature controls determinism; kept low for reproducible output
	Temperature float32

	// JSONOnly requests a strict-JSON response mode where supported
	JSONOnly bool
}

// Config holds LLM provider configuration.
type Config struct {
	// Provider name: "openai", "anthropic", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama, test servers)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:   30,
		MaxTokens: 2000,
	}
}

// timeoutOrDefault converts the configured timeout to a duration.
func (c Config) timeoutOrDefault() time.Duration {
	if c.Timeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}

// resolve picks the effective value between a per-request override and the
// provider's configured default.
func resolve(override, configured, fallback string) string {
	if override != "" {
		return override
	}
	if configured != "" {
		return configured
	}
	return fallback
}

func resolveTokens(override, configured int) int {
	if override > 0 {
		return override
	}
	if configured > 0 {
		return configured
	}
	return 2000
}
