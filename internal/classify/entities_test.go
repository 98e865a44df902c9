package classify

import (
	"reflect"
	"testing"
)

func TestExtractEntities_Basic(t *testing.T) {
	got := ExtractEntities("A Library manages Books and Members.")
	want := []string{"Library", "Books", "Members"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractEntities = %v, want %v", got, want)
	}
}

func TestExtractEntities_StopWordsExcluded(t *testing.T) {
	got := ExtractEntities("The System shows This to Those Users.")
	want := []string{"Users"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractEntities = %v, want %v", got, want)
	}
}

func TestExtractEntities_LimitFive(t *testing.T) {
	got := ExtractEntities("Alpha Bravo Charlie Delta Echo Foxtrot Golf")
	if len(got) != 5 {
		t.Fatalf("Expected 5 entities, got %d: %v", len(got), got)
	}
	if got[0] != "Alpha" || got[4] != "Echo" {
		t.Errorf("Expected first five in order, got %v", got)
	}
}

func TestExtractEntities_DuplicatesTolerated(t *testing.T) {
	got := ExtractEntities("Orders reference Orders.")
	want := []string{"Orders", "Orders"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractEntities = %v, want %v", got, want)
	}
}

func TestSynthesizeSummary(t *testing.T) {
	got := SynthesizeSummary("A Library manages Books and Members.")
	want := "A system for managing Library, Books and Members."
	if got != want {
		t.Errorf("SynthesizeSummary = %q, want %q", got, want)
	}
}

func TestSynthesizeSummary_SingleEntity(t *testing.T) {
	got := SynthesizeSummary("track every Shipment carefully")
	want := "A system for managing Shipment."
	if got != want {
		t.Errorf("SynthesizeSummary = %q, want %q", got, want)
	}
}

func TestSynthesizeSummary_NoEntities(t *testing.T) {
	got := SynthesizeSummary("all lowercase text with no names")
	if got != genericSummary {
		t.Errorf("Expected generic summary, got %q", got)
	}
}
