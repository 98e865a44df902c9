package classify

import (
	"regexp"
	"strings"
)

// entityPattern matches a capitalized word: capital letter, lowercase letters,
// optional trailing plural "s".
var entityPattern = regexp.MustCompile(`\b[A-Z][a-z]+s?\b`)

// stopWords are determiners and pronouns that look like entities but carry no
// domain meaning.
var stopWords = map[string]bool{
	"The": true, "A": true, "An": true, "This": true, "That": true,
	"These": true, "Those": true, "It": true, "System": true,
}

const maxEntities = 5

// ExtractEntities returns up to five capitalized noun-like tokens from text,
// in order of appearance. Duplicates are kept; only stop-words are dropped.
func ExtractEntities(text string) []string {
	var entities []string
	for _, match := range entityPattern.FindAllString(text, -1) {
		if stopWords[match] {
			continue
		}
		entities = append(entities, match)
		if len(entities) == maxEntities {
			break
		}
	}
	return entities
}

// genericSummary is used when the text yields no entities at all.
const genericSummary = "A software system based on the provided requirements."

// SynthesizeSummary builds a one-line system description from the entities
// found in text. Used whenever no strategy supplied its own summary.
func SynthesizeSummary(text string) string {
	entities := ExtractEntities(text)
	if len(entities) == 0 {
		return genericSummary
	}
	if len(entities) == 1 {
		return "A system for managing " + entities[0] + "."
	}
	head := strings.Join(entities[:len(entities)-1], ", ")
	return "A system for managing " + head + " and " + entities[len(entities)-1] + "."
}
