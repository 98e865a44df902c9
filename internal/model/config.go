package model

import "time"

// Config holds the complete service configuration. Values are resolved by the
// CLI layer (flags > env > config file > defaults) and passed into
// constructors; core packages never read the environment themselves.
type Config struct {
	LLM    LLMConfig    `yaml:"llm" mapstructure:"llm"`
	Search SearchConfig `yaml:"search" mapstructure:"search"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
}

// LLMConfig configures the remote completion providers.
type LLMConfig struct {
	OpenAIKey        string `yaml:"openai_api_key" mapstructure:"openai_api_key"`
	OpenAIModel      string `yaml:"openai_model" mapstructure:"openai_model"`
	OpenAIBaseURL    string `yaml:"openai_base_url" mapstructure:"openai_base_url"`
	AnthropicKey     string `yaml:"anthropic_api_key" mapstructure:"anthropic_api_key"`
	AnthropicModel   string `yaml:"anthropic_model" mapstructure:"anthropic_model"`
	AnthropicBaseURL string `yaml:"anthropic_base_url" mapstructure:"anthropic_base_url"`
	OllamaBaseURL    string `yaml:"ollama_base_url" mapstructure:"ollama_base_url"`
	OllamaModel      string `yaml:"ollama_model" mapstructure:"ollama_model"`
	Timeout          int    `yaml:"timeout" mapstructure:"timeout"` // seconds, per remote attempt
	MaxTokens        int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// SearchConfig configures the scrape-based fallback strategy.
type SearchConfig struct {
	Enabled           bool    `yaml:"enabled" mapstructure:"enabled"`
	BaseURL           string  `yaml:"base_url" mapstructure:"base_url"`
	UserAgent         string  `yaml:"user_agent" mapstructure:"user_agent"`
	Timeout           int     `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxBodyBytes      int64   `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// TimeoutDuration converts the configured timeout to a duration.
func (c SearchConfig) TimeoutDuration() time.Duration {
	if c.Timeout <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}

// CacheConfig configures result caching.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// StoreConfig configures the persistence collaborator.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"` // SQLite database file; empty disables persistence
}

// ServerConfig configures the HTTP layer.
type ServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			OpenAIModel:    "gpt-4o-mini",
			AnthropicModel: "claude-3-5-haiku-20241022",
			Timeout:        30,
			MaxTokens:      2000,
		},
		Search: SearchConfig{
			Enabled:           true,
			BaseURL:           "https://html.duckduckgo.com/html/",
			UserAgent:         "reqspec/0.1 (+https://github.com/Ag-Linings/requirement-specifications)",
			Timeout:           15,
			MaxBodyBytes:      2_000_000,
			RequestsPerSecond: 1,
			Burst:             2,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Store: StoreConfig{
			Path: "",
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8000,
		},
	}
}
