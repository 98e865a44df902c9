package pipeline

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Ag-Linings/requirement-specifications/internal/extract"
	"github.com/Ag-Linings/requirement-specifications/internal/model"
	"github.com/Ag-Linings/requirement-specifications/internal/strategy"
)

// fakeStrategy records attempts and returns a canned result or error.
type fakeStrategy struct {
	name     string
	result   model.ExtractionResult
	err      error
	attempts int
}

func (f *fakeStrategy) Name() string { return f.name }

func (f *fakeStrategy) Attempt(ctx context.Context, text string) (model.ExtractionResult, error) {
	f.attempts++
	return f.result, f.err
}

func goodResult() model.ExtractionResult {
	return model.ExtractionResult{
		Requirements: []model.Requirement{
			{ID: "REQ-1", Description: "The system must do X", Category: model.CategoryFunctional},
		},
		Summary: "A system for X.",
		Source:  "remote",
	}
}

func TestRefine_EmptyInput(t *testing.T) {
	o := NewOrchestrator(zap.NewNop())
	s := &fakeStrategy{name: "remote", result: goodResult()}

	for _, input := range []string{"", "   ", "\n\t "} {
		_, err := o.Refine(context.Background(), input, []strategy.Strategy{s})
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Refine(%q): expected ErrInvalidInput, got %v", input, err)
		}
	}

	if s.attempts != 0 {
		t.Errorf("Expected no strategy attempts for invalid input, got %d", s.attempts)
	}
}

func TestRefine_FirstSuccessWins(t *testing.T) {
	first := &fakeStrategy{name: "first", result: goodResult()}
	second := &fakeStrategy{name: "second", result: goodResult()}

	o := NewOrchestrator(zap.NewNop())
	result, err := o.Refine(context.Background(), "The system must do X.", []strategy.Strategy{first, second})
	if err != nil {
		t.Fatalf("Refine failed: %v", err)
	}

	if first.attempts != 1 {
		t.Errorf("Expected first strategy attempted once, got %d", first.attempts)
	}
	if second.attempts != 0 {
		t.Errorf("Expected second strategy untouched, got %d attempts", second.attempts)
	}
	if result.Source != "remote" {
		t.Errorf("Unexpected source: %s", result.Source)
	}
}

func TestRefine_FallsThroughFailures(t *testing.T) {
	failing := &fakeStrategy{name: "down", err: errors.New("connection refused")}
	working := &fakeStrategy{name: "up", result: goodResult()}

	o := NewOrchestrator(zap.NewNop())
	result, err := o.Refine(context.Background(), "The system must do X.", []strategy.Strategy{failing, working})
	if err != nil {
		t.Fatalf("Refine failed: %v", err)
	}
	if failing.attempts != 1 || working.attempts != 1 {
		t.Errorf("Expected both strategies attempted once, got %d and %d", failing.attempts, working.attempts)
	}
	if len(result.Requirements) != 1 {
		t.Errorf("Expected 1 requirement, got %d", len(result.Requirements))
	}
}

func TestRefine_AllRemotesFailMatchesLocal(t *testing.T) {
	input := "Users must log in. Passwords must be encrypted. The UI shall be responsive."

	failing := []strategy.Strategy{
		&fakeStrategy{name: "a", err: errors.New("timeout")},
		&fakeStrategy{name: "b", err: errors.New("bad gateway")},
	}

	o := NewOrchestrator(zap.NewNop())
	got, err := o.Refine(context.Background(), input, failing)
	if err != nil {
		t.Fatalf("Refine failed: %v", err)
	}

	want := extract.NewExtractor().Extract(input)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Result differs from standalone local extraction:\n got %+v\nwant %+v", got, want)
	}
}

func TestRefine_RejectsInvalidCategory(t *testing.T) {
	bad := &fakeStrategy{name: "bad", result: model.ExtractionResult{
		Requirements: []model.Requirement{
			{ID: "REQ-1", Description: "something", Category: "mystery"},
		},
	}}

	o := NewOrchestrator(zap.NewNop())
	result, err := o.Refine(context.Background(), "The system must do X.", []strategy.Strategy{bad})
	if err != nil {
		t.Fatalf("Refine failed: %v", err)
	}

	// The malformed remote result is discarded; local extraction takes over.
	for _, req := range result.Requirements {
		if !req.Category.Valid() {
			t.Errorf("Invalid category leaked through: %s", req.Category)
		}
	}
	if result.Source != "local" {
		t.Errorf("Expected local fallback, got source %s", result.Source)
	}
}

func TestRefine_BackfillsSummary(t *testing.T) {
	noSummary := goodResult()
	noSummary.Summary = ""
	s := &fakeStrategy{name: "remote", result: noSummary}

	o := NewOrchestrator(zap.NewNop())
	result, err := o.Refine(context.Background(), "A Registry tracks Vendors.", []strategy.Strategy{s})
	if err != nil {
		t.Fatalf("Refine failed: %v", err)
	}
	if result.Summary == "" {
		t.Fatal("Summary must always be populated")
	}
}

func TestRefine_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &fakeStrategy{name: "remote", result: goodResult()}
	o := NewOrchestrator(zap.NewNop())

	_, err := o.Refine(ctx, "The system must do X.", []strategy.Strategy{s})
	if err == nil {
		t.Fatal("Expected error for cancelled context")
	}
	if s.attempts != 0 {
		t.Errorf("Expected no attempts after cancellation, got %d", s.attempts)
	}
}

func TestRefine_AttemptTimeout(t *testing.T) {
	slow := &slowStrategy{delay: 200 * time.Millisecond}
	o := NewOrchestrator(zap.NewNop(), WithAttemptTimeout(20*time.Millisecond))

	start := time.Now()
	result, err := o.Refine(context.Background(), "The system must do X.", []strategy.Strategy{slow})
	if err != nil {
		t.Fatalf("Refine failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 150*time.Millisecond {
		t.Errorf("Timeout did not bound the attempt; took %v", elapsed)
	}
	if result.Source != "local" {
		t.Errorf("Expected local fallback after timeout, got %s", result.Source)
	}
}

// slowStrategy blocks until its context expires.
type slowStrategy struct {
	delay time.Duration
}

func (s *slowStrategy) Name() string { return "slow" }

func (s *slowStrategy) Attempt(ctx context.Context, text string) (model.ExtractionResult, error) {
	select {
	case <-ctx.Done():
		return model.ExtractionResult{}, ctx.Err()
	case <-time.After(s.delay):
		return goodResult(), nil
	}
}
