package strategy

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/Ag-Linings/requirement-specifications/internal/extract"
	"github.com/Ag-Linings/requirement-specifications/internal/fetch"
	"github.com/Ag-Linings/requirement-specifications/internal/model"
)

// maxQueryWords caps how much of the input becomes the search query.
const maxQueryWords = 12

// SearchStrategy scrapes a search result page and recovers requirements from
// its visible text through the shared repair step. It is the lowest-priority
// remote strategy: cheap, keyless, and tolerant of messy output.
type SearchStrategy struct {
	fetcher *fetch.Fetcher
	baseURL string
}

// NewSearchStrategy creates a scrape-based strategy against the configured
// search endpoint.
func NewSearchStrategy(cfg model.SearchConfig) *SearchStrategy {
	return &SearchStrategy{
		fetcher: fetch.NewFetcher(cfg),
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/") + "/",
	}
}

// Name returns the strategy name
func (s *SearchStrategy) Name() string {
	return "websearch"
}

// Attempt searches for the leading words of the input, extracts the visible
// text blocks of the result page, and repairs them into requirements.
func (s *SearchStrategy) Attempt(ctx context.Context, text string) (model.ExtractionResult, error) {
	searchURL := s.baseURL + "?q=" + url.QueryEscape(buildQuery(text))

	page, err := s.fetcher.Fetch(ctx, searchURL)
	if err != nil {
		return model.ExtractionResult{}, fmt.Errorf("search fetch: %w", err)
	}

	blocks, err := answerBlocks(page)
	if err != nil {
		return model.ExtractionResult{}, fmt.Errorf("parse result page: %w", err)
	}

	repaired := extract.Repair(strings.Join(blocks, "\n"), text)
	if len(repaired.Requirements) == 0 {
		return model.ExtractionResult{}, ErrMalformedResponse
	}
	repaired.Source = s.Name()
	return repaired, nil
}

// buildQuery takes the first words of the input and biases the search toward
// requirement-style results.
func buildQuery(text string) string {
	words := strings.Fields(text)
	if len(words) > maxQueryWords {
		words = words[:maxQueryWords]
	}
	return strings.Join(words, " ") + " software requirements"
}

// answerBlocks extracts natural-language lines from the result page: snippet
// elements when present, otherwise all visible text split into lines.
func answerBlocks(page string) ([]string, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil, err
	}

	snippets := snippetText(doc)
	if len(snippets) > 0 {
		return snippets, nil
	}

	return strings.Split(visibleText(doc), ". "), nil
}

// snippetText collects the text of result-snippet nodes.
func snippetText(doc *html.Node) []string {
	var blocks []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, "result__snippet") {
			if text := strings.TrimSpace(visibleText(n)); text != "" {
				blocks = append(blocks, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return blocks
}

// visibleText extracts text nodes, skipping scripts/styles
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return strings.TrimSpace(buf.String())
}

// hasClass checks if a node carries a CSS class.
func hasClass(n *html.Node, className string) bool {
	for _, attr := range n.Attr {
		if attr.Key == "class" {
			for _, class := range strings.Fields(attr.Val) {
				if class == className {
					return true
				}
			}
		}
	}
	return false
}
