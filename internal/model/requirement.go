package model

// Category classifies a single requirement statement.
type Category string

const (
	CategoryFunctional    Category = "functional"
	CategoryNonFunctional Category = "non-functional"
	CategoryConstraints   Category = "constraints"
	CategoryInterface     Category = "interface"
	CategoryBusiness      Category = "business"
	CategorySecurity      Category = "security"
	CategoryPerformance   Category = "performance"
)

// Categories returns the closed set of valid categories. The order is fixed
// and used for round-robin assignment during response repair.
func Categories() []Category {
	return []Category{
		CategoryFunctional,
		CategoryNonFunctional,
		CategoryConstraints,
		CategoryInterface,
		CategoryBusiness,
		CategorySecurity,
		CategoryPerformance,
	}
}

// Valid reports whether c is a member of the fixed category set.
func (c Category) Valid() bool {
	switch c {
	case CategoryFunctional, CategoryNonFunctional, CategoryConstraints,
		CategoryInterface, CategoryBusiness, CategorySecurity, CategoryPerformance:
		return true
	}
	return false
}

// Requirement is one atomic requirement statement extracted from raw text.
type Requirement struct {
	ID          string   `json:"id"`          // Provisional until the store assigns a final id
	Description string   `json:"description"` // Trimmed, non-empty statement text
	Category    Category `json:"category"`    // Member of the fixed 7-category set
}

// ExtractionResult is the structured output of one refinement request.
// Requirements preserve source order; Summary is always populated before the
// result is returned to a caller.
type ExtractionResult struct {
	Requirements []Requirement `json:"requirements"`
	Summary      string        `json:"summary,omitempty"`
	Source       string        `json:"source,omitempty"` // Strategy that produced the result
}
