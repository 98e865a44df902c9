package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Ag-Linings/requirement-specifications/internal/extract"
	"github.com/Ag-Linings/requirement-specifications/internal/llm"
	"github.com/Ag-Linings/requirement-specifications/internal/model"
)

// systemPrompt instructs the model to extract and categorize requirements as
// strict JSON. Summaries are synthesized locally, so the model is told not to
// produce one.
const systemPrompt = `You are a requirements engineering expert. Your task is to analyze raw requirements and:
1. Extract distinct requirements from the text
2. Categorize each requirement into one of the following types:
   - functional (features and capabilities)
   - non-functional (quality attributes)
   - constraints (limitations and restrictions)
   - interface (UI/UX and external systems interaction)
   - business (organizational goals and needs)
   - security (data and system protection)
   - performance (speed, efficiency, scalability)

Format your response as valid JSON with this structure:
{
  "requirements": [
    {
      "id": "REQ-1",
      "description": "The system shall...",
      "category": "functional"
    }
  ]
}

DO NOT include a summary field in your response.`

// completionTemperature is kept low for reproducible output.
const completionTemperature = 0.2

// LLMStrategy extracts requirements through a completion provider.
type LLMStrategy struct {
	name     string
	provider llm.Provider
}

// NewLLMStrategy wraps a completion provider as an extraction strategy. The
// name distinguishes multiple slots using the same provider kind (e.g. the
// caller-key and server-key OpenAI entries).
func NewLLMStrategy(name string, provider llm.Provider) *LLMStrategy {
	return &LLMStrategy{name: name, provider: provider}
}

// Name returns the strategy name
func (s *LLMStrategy) Name() string {
	return s.name
}

// Attempt asks the provider for a JSON requirement list and decodes it,
// falling back to the shared repair step for non-JSON responses.
func (s *LLMStrategy) Attempt(ctx context.Context, text string) (model.ExtractionResult, error) {
	raw, err := s.provider.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   text,
		Temperature:  completionTemperature,
		JSONOnly:     true,
	})
	if err != nil {
		return model.ExtractionResult{}, fmt.Errorf("%s completion: %w", s.name, err)
	}

	result, err := DecodeResponse(raw, text)
	if err != nil {
		return model.ExtractionResult{}, err
	}
	result.Source = s.name
	return result, nil
}

// responsePayload is the JSON shape remote models are asked to produce.
type responsePayload struct {
	Requirements []model.Requirement `json:"requirements"`
	Summary      string              `json:"summary,omitempty"`
}

// DecodeResponse parses a remote response into an extraction result. If raw
// is not valid JSON, or parses to an unusable shape, the shared repair step
// runs against it before giving up with ErrMalformedResponse. input is the
// original request text the repair step may fall back to.
func DecodeResponse(raw, input string) (model.ExtractionResult, error) {
	if result, ok := decodeJSON(raw); ok {
		return result, nil
	}

	repaired := extract.Repair(raw, input)
	if len(repaired.Requirements) == 0 {
		return model.ExtractionResult{}, ErrMalformedResponse
	}
	return repaired, nil
}

func decodeJSON(raw string) (model.ExtractionResult, bool) {
	var payload responsePayload
	if err := json.Unmarshal([]byte(stripFences(raw)), &payload); err != nil {
		return model.ExtractionResult{}, false
	}
	if len(payload.Requirements) == 0 {
		return model.ExtractionResult{}, false
	}

	for i := range payload.Requirements {
		req := &payload.Requirements[i]
		req.Description = strings.TrimSpace(req.Description)
		if req.Description == "" || !req.Category.Valid() {
			// Out-of-set category or empty description makes the whole
			// payload malformed; the repair step decides what survives.
			return model.ExtractionResult{}, false
		}
		if req.ID == "" {
			req.ID = fmt.Sprintf("REQ-%d", i+1)
		}
	}

	return model.ExtractionResult{
		Requirements: payload.Requirements,
		Summary:      strings.TrimSpace(payload.Summary),
	}, true
}

// stripFences removes a markdown code fence wrapper some models add around
// JSON output.
func stripFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
