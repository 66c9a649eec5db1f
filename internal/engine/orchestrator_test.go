package engine

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theopenlane/ecolens/internal/cache"
	"github.com/theopenlane/ecolens/internal/page"
	"github.com/theopenlane/ecolens/internal/scoring"
	"github.com/theopenlane/ecolens/internal/widget"
)

const productURL = "https://www.example.com/dp/B000123"

// analyzerFunc adapts a function to the Analyzer interface
type analyzerFunc func(ctx context.Context, url string) (scoring.AnalysisResult, error)

func (f analyzerFunc) Analyze(ctx context.Context, url string) (scoring.AnalysisResult, error) {
	return f(ctx, url)
}

// countingAnalyzer records issued requests and answers with a fixed result
type countingAnalyzer struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (a *countingAnalyzer) Analyze(_ context.Context, url string) (scoring.AnalysisResult, error) {
	a.mu.Lock()
	a.calls = append(a.calls, url)
	a.mu.Unlock()

	if a.err != nil {
		return scoring.AnalysisResult{}, a.err
	}

	return resultFor(url, 85), nil
}

func (a *countingAnalyzer) callCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.calls)
}

func resultFor(url string, score float64) scoring.AnalysisResult {
	return scoring.AnalysisResult{
		ProductName: "Product for " + url,
		EnvironmentalScore: scoring.EnvironmentalScore{
			CO2TotalKg:         12.3,
			WaterUsageLiters:   40,
			RecyclabilityScore: 60,
			OverallEcoScore:    score,
			ConfidenceLevel:    90,
		},
		Recommendations: []string{"Buy refurbished"},
		Timestamp:       "2026-08-30T12:00:00Z",
	}
}

func TestTrigger_SuccessLifecycle(t *testing.T) {
	doc := page.NewSimPage(productURL)
	analyzer := &countingAnalyzer{}
	store := cache.NewMemoryStore()

	var (
		wiredURL    string
		wiredResult scoring.AnalysisResult
	)

	o, err := New(doc, analyzer, store, WithResultFunc(func(url string, result scoring.AnalysisResult) {
		wiredURL = url
		wiredResult = result
	}))
	require.NoError(t, err)

	o.Trigger(context.Background(), productURL)

	state := doc.Widget()
	require.Equal(t, widget.KindSuccess, state.Kind)
	assert.Equal(t, 85, state.Display.OverallEcoScore)
	assert.Equal(t, widget.TierGood, state.Display.Tier)
	assert.Len(t, state.Display.Recommendations, 1)

	// exactly one request, for the settled URL
	require.Equal(t, 1, analyzer.callCount())
	assert.Equal(t, productURL, analyzer.calls[0])

	// cache holds the verbatim result keyed by exact URL
	found, err := store.Get(context.Background(), productURL)
	require.NoError(t, err)
	require.Contains(t, found, productURL)
	assert.Equal(t, resultFor(productURL, 85), found[productURL])

	// interaction wiring got the same result
	assert.Equal(t, productURL, wiredURL)
	assert.Equal(t, resultFor(productURL, 85), wiredResult)
}

func TestTrigger_NonProductPageIsNoOp(t *testing.T) {
	doc := page.NewSimPage("https://www.example.com/s?k=bottle")
	analyzer := &countingAnalyzer{}
	store := cache.NewMemoryStore()

	// a widget from an earlier page context must be left as-is
	doc.ReplaceWidget(widget.Error())

	o, err := New(doc, analyzer, store)
	require.NoError(t, err)

	o.Trigger(context.Background(), "https://www.example.com/s?k=bottle")

	assert.Equal(t, widget.KindError, doc.Widget().Kind)
	assert.Zero(t, analyzer.callCount())
	assert.Zero(t, store.Len())
}

func TestTrigger_NoInsertionPointAbortsSilently(t *testing.T) {
	doc := page.NewSimPage(productURL, page.WithoutInsertionPoint())
	analyzer := &countingAnalyzer{}
	store := cache.NewMemoryStore()

	o, err := New(doc, analyzer, store)
	require.NoError(t, err)

	o.Trigger(context.Background(), productURL)

	assert.False(t, page.HasWidget(doc))
	assert.Zero(t, analyzer.callCount())
}

func TestTrigger_FailureShowsGenericErrorAndSkipsCache(t *testing.T) {
	doc := page.NewSimPage(productURL)
	analyzer := &countingAnalyzer{err: fmt.Errorf("%w: status 500", scoring.ErrUnexpectedStatus)}
	store := cache.NewMemoryStore()

	o, err := New(doc, analyzer, store)
	require.NoError(t, err)

	o.Trigger(context.Background(), productURL)

	state := doc.Widget()
	require.Equal(t, widget.KindError, state.Kind)
	assert.Equal(t, widget.ErrorMessage, state.Message)
	assert.Zero(t, store.Len())
}

func TestTrigger_StaleResponseIsDiscarded(t *testing.T) {
	urlA := "https://www.example.com/dp/A0000001"
	urlB := "https://www.example.com/dp/B0000002"

	doc := page.NewSimPage(urlA)
	store := cache.NewMemoryStore()

	release := make(chan struct{})
	started := make(chan struct{})

	analyzer := analyzerFunc(func(_ context.Context, url string) (scoring.AnalysisResult, error) {
		if url == urlA {
			close(started)
			<-release // hold A's response until B has fully landed
		}

		return resultFor(url, 55), nil
	})

	o, err := New(doc, analyzer, store)
	require.NoError(t, err)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		o.Trigger(context.Background(), urlA)
	}()

	<-started

	// the page moves on to B while A's request is still in flight
	doc.Navigate(urlB)
	o.Trigger(context.Background(), urlB)
	require.Equal(t, widget.KindSuccess, doc.Widget().Kind)

	// now A's stale response arrives
	close(release)
	wg.Wait()

	// the overlay still shows B's result, untouched by A
	state := doc.Widget()
	require.Equal(t, widget.KindSuccess, state.Kind)
	assert.Equal(t, "Product for "+urlB, state.Display.ProductName)

	// the stale response also never reached the cache
	found, err := store.Get(context.Background(), urlA, urlB)
	require.NoError(t, err)
	assert.NotContains(t, found, urlA)
	assert.Contains(t, found, urlB)
}

func TestTrigger_RapidRetriggersKeepLatest(t *testing.T) {
	doc := page.NewSimPage(productURL)
	store := cache.NewMemoryStore()

	var calls int

	analyzer := analyzerFunc(func(_ context.Context, url string) (scoring.AnalysisResult, error) {
		calls++
		// keep responses slow enough that re-triggers overlap in real use;
		// here each Trigger is synchronous so ordering is deterministic
		time.Sleep(time.Millisecond)

		return resultFor(url, 72), nil
	})

	o, err := New(doc, analyzer, store)
	require.NoError(t, err)

	for range 3 {
		o.Trigger(context.Background(), productURL)
	}

	assert.Equal(t, 3, calls)
	assert.Equal(t, widget.KindSuccess, doc.Widget().Kind)
}

func TestNew_Validation(t *testing.T) {
	doc := page.NewSimPage(productURL)
	analyzer := &countingAnalyzer{}
	store := cache.NewMemoryStore()

	_, err := New(nil, analyzer, store)
	assert.ErrorIs(t, err, ErrMissingPage)

	_, err = New(doc, nil, store)
	assert.ErrorIs(t, err, ErrMissingAnalyzer)

	_, err = New(doc, analyzer, nil)
	assert.ErrorIs(t, err, ErrMissingStore)
}
