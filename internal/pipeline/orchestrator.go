// Package pipeline orchestrates the fallback-chained extraction: remote
// strategies are tried strictly in priority order, failures are logged and
// absorbed, and the local heuristic extractor terminates the chain so every
// valid request produces a well-formed result.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Ag-Linings/requirement-specifications/internal/cache"
	"github.com/Ag-Linings/requirement-specifications/internal/classify"
	"github.com/Ag-Linings/requirement-specifications/internal/extract"
	"github.com/Ag-Linings/requirement-specifications/internal/model"
	"github.com/Ag-Linings/requirement-specifications/internal/strategy"
)

// ErrInvalidInput is returned for empty or whitespace-only input. No strategy
// is attempted in that case.
var ErrInvalidInput = errors.New("input text cannot be empty")

// defaultAttemptTimeout bounds each remote strategy attempt so a hung call
// never blocks the terminal local fallback.
const defaultAttemptTimeout = 30 * time.Second

// Orchestrator runs an ordered strategy chain over input text. It holds no
// per-request state; concurrent Refine calls are independent.
type Orchestrator struct {
	local   *extract.Extractor
	results *cache.ResultCache // nil disables caching
	timeout time.Duration
	logger  *zap.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithResultCache short-circuits the chain on repeated input.
func WithResultCache(rc *cache.ResultCache) Option {
	return func(o *Orchestrator) { o.results = rc }
}

// WithAttemptTimeout bounds each remote strategy attempt.
func WithAttemptTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// NewOrchestrator creates a fallback orchestrator.
func NewOrchestrator(logger *zap.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		local:   extract.NewExtractor(),
		timeout: defaultAttemptTimeout,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Refine tries each strategy in order and returns the first successful,
// validated result; if every remote strategy fails it falls back to the local
// heuristic extractor, which cannot fail. The only error cases are invalid
// input and caller cancellation.
func (o *Orchestrator) Refine(ctx context.Context, text string, strategies []strategy.Strategy) (model.ExtractionResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.ExtractionResult{}, ErrInvalidInput
	}

	if o.results != nil {
		if result, found := o.results.Get(text); found {
			o.logger.Debug("cache hit", zap.Int("requirements", len(result.Requirements)))
			return result, nil
		}
	}

	for _, s := range strategies {
		// Cooperative cancellation between attempts.
		if err := ctx.Err(); err != nil {
			return model.ExtractionResult{}, err
		}

		result, err := o.attempt(ctx, s, text)
		if err != nil {
			o.logger.Warn("strategy failed, falling back",
				zap.String("strategy", s.Name()),
				zap.Error(err),
			)
			continue
		}

		o.logger.Info("extraction succeeded",
			zap.String("strategy", s.Name()),
			zap.Int("requirements", len(result.Requirements)),
		)
		return o.finish(text, result), nil
	}

	if err := ctx.Err(); err != nil {
		return model.ExtractionResult{}, err
	}

	o.logger.Info("all remote strategies exhausted, using local extractor")
	return o.finish(text, o.local.Extract(text)), nil
}

// attempt runs one strategy under the per-attempt timeout and validates its
// result against the contract.
func (o *Orchestrator) attempt(ctx context.Context, s strategy.Strategy, text string) (model.ExtractionResult, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	result, err := s.Attempt(attemptCtx, text)
	if err != nil {
		return model.ExtractionResult{}, err
	}

	if err := validateResult(result); err != nil {
		return model.ExtractionResult{}, fmt.Errorf("%w: %v", strategy.ErrMalformedResponse, err)
	}
	return result, nil
}

// validateResult enforces the result contract: at least one requirement, each
// with a non-empty description and a category from the fixed set.
func validateResult(result model.ExtractionResult) error {
	if len(result.Requirements) == 0 {
		return errors.New("no requirements extracted")
	}
	for i, req := range result.Requirements {
		if strings.TrimSpace(req.Description) == "" {
			return fmt.Errorf("requirement %d has empty description", i)
		}
		if !req.Category.Valid() {
			return fmt.Errorf("requirement %d has unknown category %q", i, req.Category)
		}
	}
	return nil
}

// finish backfills the summary when no strategy supplied one and records the
// result in the cache.
func (o *Orchestrator) finish(text string, result model.ExtractionResult) model.ExtractionResult {
	if result.Summary == "" {
		result.Summary = classify.SynthesizeSummary(text)
	}
	if o.results != nil {
		o.results.Set(text, result)
	}
	return result
}
