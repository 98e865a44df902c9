// Package extract turns raw text into structured requirements. It holds the
// local heuristic extractor used as the terminal fallback strategy and the
// repair step shared by all remote strategies.
package extract

import (
	"fmt"
	"strings"

	"github.com/Ag-Linings/requirement-specifications/internal/classify"
	"github.com/Ag-Linings/requirement-specifications/internal/model"
)

// minSegmentLen is the shortest sentence fragment treated as a requirement
// candidate by the local extractor.
const minSegmentLen = 10

// Extractor is the guaranteed-terminal extraction strategy. It is a total
// function over any input: no network access, no failure modes, bounded time
// proportional to input length.
type Extractor struct{}

// NewExtractor creates the local heuristic extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Name identifies the extractor in result metadata and logs.
func (e *Extractor) Name() string {
	return "local"
}

// Extract splits text on sentence-terminal punctuation, keeps trimmed
// segments of at least ten characters, classifies each in source order and
// synthesizes a summary from the entities in the text. Degenerate input with
// no sentence-like segments yields an empty requirement list.
func (e *Extractor) Extract(text string) model.ExtractionResult {
	var reqs []model.Requirement
	for _, segment := range strings.Split(text, ".") {
		segment = strings.TrimSpace(segment)
		if len(segment) < minSegmentLen {
			continue
		}
		reqs = append(reqs, model.Requirement{
			ID:          fmt.Sprintf("REQ-%d", len(reqs)+1),
			Description: segment,
			Category:    classify.Classify(segment),
		})
	}

	return model.ExtractionResult{
		Requirements: reqs,
		Summary:      classify.SynthesizeSummary(text),
		Source:       e.Name(),
	}
}
