// Package cache provides the shared analysis-result store keyed by exact
// product page URL. Entries carry the verbatim scoring service response,
// have no TTL, and are only ever overwritten, never deleted.
package cache

import (
	"context"

	"github.com/theopenlane/ecolens/internal/scoring"
)

// Store is the asynchronous key-value boundary between the analysis
// orchestrator (sole writer) and the search result annotator (read-only
// consumer). Implementations must tolerate interleaved reads and writes;
// no transactional guarantee is offered across callers.
type Store interface {
	// Get returns the entries present for the given URLs. Missing keys are
	// simply absent from the returned map, not an error.
	Get(ctx context.Context, keys ...string) (map[string]scoring.AnalysisResult, error)
	// Set stores the given entries, overwriting any existing values
	Set(ctx context.Context, entries map[string]scoring.AnalysisResult) error
}
