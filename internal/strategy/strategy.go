// Package strategy defines the pluggable extraction strategies tried by the
// fallback orchestrator. Each strategy wraps one external capability and
// either returns a structured result or fails; failures are recovered by the
// orchestrator, never surfaced to callers.
package strategy

import (
	"context"
	"errors"

	"github.com/Ag-Linings/requirement-specifications/internal/model"
)

// ErrMalformedResponse indicates the remote call succeeded transport-wise but
// its payload could not be turned into requirements even after repair.
var ErrMalformedResponse = errors.New("malformed remote response")

// Strategy is one concrete method of turning raw text into an extraction
// result. Remote strategies may perform network I/O and must honor ctx.
type Strategy interface {
	// Name identifies the strategy in logs and result metadata
	Name() string

	// Attempt extracts requirements from text or fails
	Attempt(ctx context.Context, text string) (model.ExtractionResult, error)
}
