package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Ag-Linings/requirement-specifications/internal/classify"
	"github.com/Ag-Linings/requirement-specifications/internal/model"
)

// modalPattern identifies requirement-like statements by modal verbs.
var modalPattern = regexp.MustCompile(`(?i)\b(shall|should|must|will|needs to|is required to|can)\b`)

// summaryPattern identifies a line describing the overall system.
var summaryPattern = regexp.MustCompile(`(?i)\b(system|application|platform|software)\b.*\b(is|provides|enables|allows)\b`)

const (
	minModalLineLen   = 16 // modal candidates must exceed 15 characters
	minSummaryLineLen = 31 // summary candidates must exceed 30 characters
)

// Repair recovers a structured result from a remote response that was not
// valid JSON. raw is the strategy's response text; input is the original
// request text, used as the fallback source when raw yields nothing.
//
// Two passes: first, lines of raw matching a modal-verb pattern become
// requirements classified by keyword. If that finds nothing, the original
// input is split into sentences and categories are assigned round-robin from
// the fixed set, guaranteeing diversity even with no lexical signal.
func Repair(raw, input string) model.ExtractionResult {
	reqs := modalRequirements(raw)
	if len(reqs) == 0 {
		reqs = roundRobinRequirements(input)
	}

	summary := summaryLine(raw)
	if summary == "" {
		summary = classify.SynthesizeSummary(input)
	}

	return model.ExtractionResult{
		Requirements: reqs,
		Summary:      summary,
	}
}

func modalRequirements(raw string) []model.Requirement {
	var reqs []model.Requirement
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < minModalLineLen || !modalPattern.MatchString(line) {
			continue
		}
		reqs = append(reqs, model.Requirement{
			ID:          fmt.Sprintf("REQ-%d", len(reqs)+1),
			Description: line,
			Category:    classify.Classify(line),
		})
	}
	return reqs
}

func roundRobinRequirements(input string) []model.Requirement {
	categories := model.Categories()
	var reqs []model.Requirement
	for _, segment := range strings.Split(input, ".") {
		segment = strings.TrimSpace(segment)
		if len(segment) <= minSegmentLen {
			continue
		}
		reqs = append(reqs, model.Requirement{
			ID:          fmt.Sprintf("REQ-%d", len(reqs)+1),
			Description: segment,
			Category:    categories[len(reqs)%len(categories)],
		})
	}
	return reqs
}

func summaryLine(raw string) string {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if len(line) >= minSummaryLineLen && summaryPattern.MatchString(line) {
			return line
		}
	}
	return ""
}
