// Package store is the persistence collaborator: it accepts extraction
// results, assigns authoritative ids, and answers read-back queries. The
// extraction core treats the returned ids as final and overwrites its own
// provisional REQ-n ids before responding to the caller.
package store

import (
	"context"
	"errors"

	"github.com/Ag-Linings/requirement-specifications/internal/model"
)

// ErrStore wraps persistence failures so callers can distinguish them from
// extraction failures: the result was computed, only storage went wrong.
var ErrStore = errors.New("persistence failure")

// Store persists extraction results.
type Store interface {
	// Save stores the result under an optional user identifier and returns it
	// with store-assigned ids replacing the provisional ones.
	Save(ctx context.Context, result model.ExtractionResult, userID string) (model.ExtractionResult, error)

	// ListByUser returns previously saved requirements, newest refinement
	// first. An empty userID lists requirements saved without one.
	ListByUser(ctx context.Context, userID string) ([]model.Requirement, error)

	Close() error
}
