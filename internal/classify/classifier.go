// Package classify assigns requirement categories and extracts entity names
// using deterministic lexical heuristics. It has no dependencies beyond the
// data model and never performs I/O.
package classify

import (
	"strings"

	"github.com/Ag-Linings/requirement-specifications/internal/model"
)

// rule pairs a cue-word set with the category it signals.
type rule struct {
	cues     []string
	category model.Category
}

// rules is evaluated in order; the first rule with any cue present wins.
// The order is fixed and significant: functional cues are checked before all
// others, so a sentence like "must encrypt passwords" classifies as
// functional, not security.
var rules = []rule{
	{[]string{"must", "should", "shall", "allow", "support", "perform", "manage"}, model.CategoryFunctional},
	{[]string{"response time", "throughput", "latency", "speed", "scalability"}, model.CategoryPerformance},
	{[]string{"encrypt", "authentication", "authorization", "secure", "privacy"}, model.CategorySecurity},
	{[]string{"interface", "api", "ui", "ux", "integration"}, model.CategoryInterface},
	{[]string{"legal", "budget", "timeframe", "deadline", "limit", "constraint"}, model.CategoryConstraints},
	{[]string{"business", "stakeholder", "goal", "objective", "profit", "target"}, model.CategoryBusiness},
	{[]string{"uptime", "availability", "reliability", "quality", "maintenance"}, model.CategoryNonFunctional},
}

// Classify maps a requirement sentence to a category by ordered keyword
// matching. Matching is case-insensitive substring containment. Sentences
// matching no rule default to functional.
func Classify(sentence string) model.Category {
	lower := strings.ToLower(sentence)
	for _, r := range rules {
		for _, cue := range r.cues {
			if strings.Contains(lower, cue) {
				return r.category
			}
		}
	}
	return model.CategoryFunctional
}
