package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Ag-Linings/requirement-specifications/internal/cache"
	"github.com/Ag-Linings/requirement-specifications/internal/llm"
	"github.com/Ag-Linings/requirement-specifications/internal/model"
	"github.com/Ag-Linings/requirement-specifications/internal/strategy"
)

// Service is the single operation the core exposes to its callers: given
// trimmed non-empty text and an optional credential override, produce an
// ExtractionResult. It wires the configured strategy chain into an
// orchestrator once at construction.
type Service struct {
	cfg          *model.Config
	orchestrator *Orchestrator
	base         []strategy.Strategy
	logger       *zap.Logger
}

// NewService builds the service from configuration. The chain priority is
// fixed: OpenAI with the server key, Anthropic, Ollama when configured, then
// the scrape-based search fallback. Entries whose configuration is missing
// are skipped; the local extractor inside the orchestrator terminates the
// chain regardless.
func NewService(cfg *model.Config, logger *zap.Logger, opts ...Option) *Service {
	if cfg.Cache.Enabled {
		layered := cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		opts = append(opts, WithResultCache(cache.NewResultCache(layered, cfg.Cache.MemoryTTL)))
	}
	opts = append(opts, WithAttemptTimeout(time.Duration(cfg.LLM.Timeout)*time.Second))

	return &Service{
		cfg:          cfg,
		orchestrator: NewOrchestrator(logger, opts...),
		base:         buildChain(cfg, logger),
		logger:       logger,
	}
}

// Refine runs the fallback chain. A non-empty apiKeyOverride prepends a
// caller-credentialed OpenAI strategy ahead of every configured entry.
func (s *Service) Refine(ctx context.Context, text, apiKeyOverride string) (model.ExtractionResult, error) {
	strategies := s.base
	if apiKeyOverride != "" {
		if st := s.overrideStrategy(apiKeyOverride); st != nil {
			strategies = append([]strategy.Strategy{st}, s.base...)
		}
	}
	return s.orchestrator.Refine(ctx, text, strategies)
}

// overrideStrategy builds the caller-key OpenAI entry.
func (s *Service) overrideStrategy(apiKey string) strategy.Strategy {
	provider, err := llm.NewProvider(llm.Config{
		Provider:  "openai",
		Model:     s.cfg.LLM.OpenAIModel,
		APIKey:    apiKey,
		BaseURL:   s.cfg.LLM.OpenAIBaseURL,
		Timeout:   s.cfg.LLM.Timeout,
		MaxTokens: s.cfg.LLM.MaxTokens,
	})
	if err != nil {
		s.logger.Warn("caller credential rejected", zap.Error(err))
		return nil
	}
	return strategy.NewLLMStrategy("openai-caller", provider)
}

// buildChain assembles the configured remote strategies in priority order.
func buildChain(cfg *model.Config, logger *zap.Logger) []strategy.Strategy {
	var chain []strategy.Strategy

	if cfg.LLM.OpenAIKey != "" {
		provider, err := llm.NewProvider(llm.Config{
			Provider:  "openai",
			Model:     cfg.LLM.OpenAIModel,
			APIKey:    cfg.LLM.OpenAIKey,
			BaseURL:   cfg.LLM.OpenAIBaseURL,
			Timeout:   cfg.LLM.Timeout,
			MaxTokens: cfg.LLM.MaxTokens,
		})
		if err != nil {
			logger.Warn("skipping openai strategy", zap.Error(err))
		} else {
			chain = append(chain, strategy.NewLLMStrategy("openai", provider))
		}
	}

	if cfg.LLM.AnthropicKey != "" {
		provider, err := llm.NewProvider(llm.Config{
			Provider:  "anthropic",
			Model:     cfg.LLM.AnthropicModel,
			APIKey:    cfg.LLM.AnthropicKey,
			BaseURL:   cfg.LLM.AnthropicBaseURL,
			Timeout:   cfg.LLM.Timeout,
			MaxTokens: cfg.LLM.MaxTokens,
		})
		if err != nil {
			logger.Warn("skipping anthropic strategy", zap.Error(err))
		} else {
			chain = append(chain, strategy.NewLLMStrategy("anthropic", provider))
		}
	}

	if cfg.LLM.OllamaModel != "" {
		provider, err := llm.NewProvider(llm.Config{
			Provider:  "ollama",
			Model:     cfg.LLM.OllamaModel,
			BaseURL:   cfg.LLM.OllamaBaseURL,
			Timeout:   cfg.LLM.Timeout,
			MaxTokens: cfg.LLM.MaxTokens,
		})
		if err != nil {
			logger.Warn("skipping ollama strategy", zap.Error(err))
		} else {
			chain = append(chain, strategy.NewLLMStrategy("ollama", provider))
		}
	}

	if cfg.Search.Enabled && cfg.Search.BaseURL != "" {
		chain = append(chain, strategy.NewSearchStrategy(cfg.Search))
	}

	return chain
}
