package extract

import (
	"strings"
	"testing"

	"github.com/Ag-Linings/requirement-specifications/internal/model"
)

func TestRepair_ModalLine(t *testing.T) {
	raw := "The system must validate user credentials securely."
	result := Repair(raw, "original input text here")

	if len(result.Requirements) != 1 {
		t.Fatalf("Expected 1 requirement, got %d", len(result.Requirements))
	}
	req := result.Requirements[0]
	if req.ID != "REQ-1" {
		t.Errorf("Expected REQ-1, got %s", req.ID)
	}
	if req.Description != raw {
		t.Errorf("Unexpected description: %q", req.Description)
	}
	if req.Category != model.CategoryFunctional {
		t.Errorf("Expected functional, got %s", req.Category)
	}
}

func TestRepair_MultipleModalLines(t *testing.T) {
	raw := strings.Join([]string{
		"Here is my analysis of the requirements:",
		"The application shall track inventory levels in real time.",
		"Administrators should receive alerts on low stock.",
		"ok",
	}, "\n")

	result := Repair(raw, "track inventory")
	if len(result.Requirements) != 2 {
		t.Fatalf("Expected 2 requirements, got %d", len(result.Requirements))
	}
	if result.Requirements[0].ID != "REQ-1" || result.Requirements[1].ID != "REQ-2" {
		t.Errorf("Unexpected ids: %s, %s", result.Requirements[0].ID, result.Requirements[1].ID)
	}
}

func TestRepair_ShortModalLinesSkipped(t *testing.T) {
	// Matches the modal pattern but is 15 characters or less.
	result := Repair("It must work", "some longer fallback input. another sentence here.")
	for _, req := range result.Requirements {
		if req.Description == "It must work" {
			t.Error("Short modal line should not become a requirement")
		}
	}
}

func TestRepair_RoundRobinFallback(t *testing.T) {
	input := "first sentence of input here. second sentence of input here. third sentence of input here. fourth sentence of input here. fifth sentence of input here. sixth sentence of input here. seventh sentence of input here. eighth sentence of input here."
	result := Repair("no requirement statements at all", input)

	if len(result.Requirements) != 8 {
		t.Fatalf("Expected 8 requirements, got %d", len(result.Requirements))
	}

	categories := model.Categories()
	for i, req := range result.Requirements {
		want := categories[i%len(categories)]
		if req.Category != want {
			t.Errorf("Requirement %d: expected %s, got %s", i, want, req.Category)
		}
	}
	// Index 7 wraps back to the first category.
	if result.Requirements[7].Category != categories[0] {
		t.Errorf("Expected wraparound to %s, got %s", categories[0], result.Requirements[7].Category)
	}
}

func TestRepair_SummaryFromSystemLine(t *testing.T) {
	raw := "The platform provides real-time inventory tracking for retailers.\nThe system must track stock."
	result := Repair(raw, "input")

	if result.Summary != "The platform provides real-time inventory tracking for retailers." {
		t.Errorf("Unexpected summary: %q", result.Summary)
	}
}

func TestRepair_SummaryFallsBackToEntities(t *testing.T) {
	result := Repair("The system must manage Warehouses.", "A tool for Warehouses and Couriers.")

	want := "A system for managing Warehouses and Couriers."
	if result.Summary != want {
		t.Errorf("Summary = %q, want %q", result.Summary, want)
	}
}
