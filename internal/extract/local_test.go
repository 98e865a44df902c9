package extract

import (
	"testing"

	"github.com/Ag-Linings/requirement-specifications/internal/model"
)

func TestExtractor_ThreeSentences(t *testing.T) {
	e := NewExtractor()
	result := e.Extract("Users must log in. Passwords must be encrypted. The UI shall be responsive.")

	if len(result.Requirements) != 3 {
		t.Fatalf("Expected 3 requirements, got %d", len(result.Requirements))
	}

	wantIDs := []string{"REQ-1", "REQ-2", "REQ-3"}
	for i, req := range result.Requirements {
		if req.ID != wantIDs[i] {
			t.Errorf("Requirement %d: expected id %s, got %s", i, wantIDs[i], req.ID)
		}
		// Every sentence carries a modal functional cue, and functional rules
		// are checked first, so all three classify as functional even though
		// "encrypted" and "UI" would otherwise hit later rules.
		if req.Category != model.CategoryFunctional {
			t.Errorf("Requirement %s: expected functional, got %s", req.ID, req.Category)
		}
	}
}

func TestExtractor_PreservesOrder(t *testing.T) {
	e := NewExtractor()
	result := e.Extract("Orders can be placed online. Invoices should be emailed.")

	if len(result.Requirements) != 2 {
		t.Fatalf("Expected 2 requirements, got %d", len(result.Requirements))
	}
	if result.Requirements[0].Description != "Orders can be placed online" {
		t.Errorf("Unexpected first requirement: %q", result.Requirements[0].Description)
	}
	if result.Requirements[1].Description != "Invoices should be emailed" {
		t.Errorf("Unexpected second requirement: %q", result.Requirements[1].Description)
	}
}

func TestExtractor_DropsShortSegments(t *testing.T) {
	e := NewExtractor()
	result := e.Extract("Yes. No. The system must send notifications by email.")

	if len(result.Requirements) != 1 {
		t.Fatalf("Expected 1 requirement, got %d", len(result.Requirements))
	}
	if result.Requirements[0].ID != "REQ-1" {
		t.Errorf("Expected REQ-1, got %s", result.Requirements[0].ID)
	}
}

func TestExtractor_DegenerateInput(t *testing.T) {
	e := NewExtractor()

	for _, input := range []string{"", "ok. no. hi.", "short"} {
		result := e.Extract(input)
		if len(result.Requirements) != 0 {
			t.Errorf("Extract(%q): expected no requirements, got %d", input, len(result.Requirements))
		}
		if result.Summary == "" {
			t.Errorf("Extract(%q): summary must still be populated", input)
		}
	}
}

func TestExtractor_SummaryFromEntities(t *testing.T) {
	e := NewExtractor()
	result := e.Extract("A Library manages Books and Members.")

	want := "A system for managing Library, Books and Members."
	if result.Summary != want {
		t.Errorf("Summary = %q, want %q", result.Summary, want)
	}
}
