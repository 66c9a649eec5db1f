// Package engine drives the per-page analysis pipeline: classify the
// settled URL, walk the overlay through its loading/success/error
// lifecycle, call the scoring service, and persist successful results to
// the shared cache.
package engine

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/theopenlane/ecolens/internal/cache"
	"github.com/theopenlane/ecolens/internal/classify"
	"github.com/theopenlane/ecolens/internal/page"
	"github.com/theopenlane/ecolens/internal/scoring"
	"github.com/theopenlane/ecolens/internal/widget"
)

// Analyzer requests an environmental assessment for a product URL
type Analyzer interface {
	Analyze(ctx context.Context, url string) (scoring.AnalysisResult, error)
}

// ResultFunc is invoked after a successful analysis has been rendered,
// letting the embedding surface wire interaction handlers (find
// alternatives, view details) to the result the overlay is showing.
type ResultFunc func(url string, result scoring.AnalysisResult)

// Orchestrator is the per-page analysis state machine. Every trigger
// stamps its work with the URL it was issued for and a monotonically
// increasing epoch; a response whose stamp has been superseded is
// discarded without touching the overlay or the cache. In-flight requests
// are never cancelled, only disowned.
type Orchestrator struct {
	doc      page.Page
	analyzer Analyzer
	store    cache.Store
	onResult ResultFunc

	// mu guards the epoch stamp and every overlay swap
	mu      sync.Mutex
	epoch   uint64
	trigURL string
}

// Option configures the Orchestrator
type Option func(*Orchestrator)

// WithResultFunc registers the interaction wiring callback
func WithResultFunc(fn ResultFunc) Option {
	return func(o *Orchestrator) {
		o.onResult = fn
	}
}

// New creates an orchestrator bound to a page, an analyzer, and a cache
func New(doc page.Page, analyzer Analyzer, store cache.Store, opts ...Option) (*Orchestrator, error) {
	if doc == nil {
		return nil, ErrMissingPage
	}

	if analyzer == nil {
		return nil, ErrMissingAnalyzer
	}

	if store == nil {
		return nil, ErrMissingStore
	}

	o := &Orchestrator{
		doc:      doc,
		analyzer: analyzer,
		store:    store,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o, nil
}

// Trigger runs the analysis pipeline for a settled navigation. The URL is
// the one observed at settle time and is never re-read from the page. Any
// failure is contained to the overlay lifecycle; Trigger never panics or
// propagates errors to the surrounding page context.
func (o *Orchestrator) Trigger(ctx context.Context, url string) {
	if classify.Classify(url) != classify.PageTypeProduct {
		// Not a product page: leave whatever overlay exists untouched.
		log.Debug().Str("url", url).Msg("skipping non-product page")
		return
	}

	if !o.doc.HasInsertionPoint() {
		log.Debug().Str("url", url).Msg("no overlay insertion point in page layout")
		return
	}

	stamp := o.begin(url)

	result, err := o.analyzer.Analyze(ctx, url)

	o.mu.Lock()
	defer o.mu.Unlock()

	if stamp != o.epoch || url != o.trigURL {
		// A newer trigger owns the overlay now; this response is stale.
		log.Debug().Str("url", url).Uint64("stamp", stamp).Msg("discarding stale analysis response")
		return
	}

	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("analysis failed")
		o.doc.ReplaceWidget(widget.Error())

		return
	}

	o.doc.ReplaceWidget(widget.Success(widget.Derive(result)))

	if err := o.store.Set(ctx, map[string]scoring.AnalysisResult{url: result}); err != nil {
		// Cache trouble degrades silently: the overlay already shows the
		// result, only the annotator read path misses out.
		log.Warn().Err(err).Str("url", url).Msg("failed to cache analysis result")
	}

	if o.onResult != nil {
		o.onResult(url, result)
	}
}

// begin claims a new epoch for the given URL, disowning any in-flight
// work, and swaps in the loading overlay within the same critical section
// so a disowned request can never interleave its own loading state over a
// newer trigger's overlay.
func (o *Orchestrator) begin(url string) uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.epoch++
	o.trigURL = url
	o.doc.ReplaceWidget(widget.Loading())

	return o.epoch
}
