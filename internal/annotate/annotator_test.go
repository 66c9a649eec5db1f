package annotate

import (
	"context"
	"errors"
	"testing"

	"github.com/theopenlane/ecolens/internal/cache"
	"github.com/theopenlane/ecolens/internal/page"
	"github.com/theopenlane/ecolens/internal/scoring"
	"github.com/theopenlane/ecolens/internal/widget"
)

const searchURL = "https://www.example.com/s?k=water+bottle"

func cachedResult(score float64) scoring.AnalysisResult {
	return scoring.AnalysisResult{
		ProductName: "Cached Product",
		EnvironmentalScore: scoring.EnvironmentalScore{
			OverallEcoScore: score,
		},
	}
}

// failingStore always errors on reads
type failingStore struct{}

func (failingStore) Get(context.Context, ...string) (map[string]scoring.AnalysisResult, error) {
	return nil, errors.New("storage backend offline")
}

func (failingStore) Set(context.Context, map[string]scoring.AnalysisResult) error {
	return errors.New("storage backend offline")
}

func TestAnnotate_CacheHitAndMiss(t *testing.T) {
	store := cache.NewMemoryStore()

	cachedURL := "https://www.example.com/dp/B0000CACHED"
	if err := store.Set(context.Background(), map[string]scoring.AnalysisResult{
		cachedURL: cachedResult(55),
	}); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}

	doc := page.NewSimPage(searchURL)
	hit := doc.AddListing("/dp/B0000CACHED")
	miss := doc.AddListing("/dp/B0000FRESH")

	a, err := New(store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a.Annotate(context.Background(), doc)

	text, ok := hit.Indicator()
	if !ok {
		t.Fatal("expected an indicator on the cached listing")
	}

	if text != "55/100" {
		t.Errorf("expected indicator 55/100, got %q", text)
	}

	text, ok = miss.Indicator()
	if !ok {
		t.Fatal("expected a placeholder on the uncached listing")
	}

	if text != placeholderText {
		t.Errorf("expected placeholder text, got %q", text)
	}
}

func TestAnnotate_RoundsScoreToInteger(t *testing.T) {
	store := cache.NewMemoryStore()

	cachedURL := "https://www.example.com/dp/B0000ROUND"
	if err := store.Set(context.Background(), map[string]scoring.AnalysisResult{
		cachedURL: cachedResult(54.6),
	}); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}

	doc := page.NewSimPage(searchURL)
	listing := doc.AddListing("https://www.example.com/dp/B0000ROUND")

	a, err := New(store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a.Annotate(context.Background(), doc)

	if text, _ := listing.Indicator(); text != "55/100" {
		t.Errorf("expected rounded indicator 55/100, got %q", text)
	}
}

func TestAnnotate_NonSearchPageUntouched(t *testing.T) {
	doc := page.NewSimPage("https://www.example.com/dp/B000123")
	listing := doc.AddListing("/dp/B0000OTHER")

	a, err := New(cache.NewMemoryStore())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a.Annotate(context.Background(), doc)

	if _, ok := listing.Indicator(); ok {
		t.Error("expected no indicators outside search results pages")
	}
}

func TestAnnotate_CacheFailureHidesIndicators(t *testing.T) {
	doc := page.NewSimPage(searchURL)
	listing := doc.AddListing("/dp/B000123")

	a, err := New(failingStore{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a.Annotate(context.Background(), doc)

	if _, ok := listing.Indicator(); ok {
		t.Error("expected indicators hidden on cache failure")
	}
}

func TestAnnotate_SkipsOffSiteAndNonProductLinks(t *testing.T) {
	doc := page.NewSimPage(searchURL)
	offsite := doc.AddListing("https://tracker.adnetwork.net/click?to=/dp/B000123")
	category := doc.AddListing("/b?node=123")
	empty := doc.AddListing("")

	a, err := New(cache.NewMemoryStore())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a.Annotate(context.Background(), doc)

	for name, listing := range map[string]*page.SimListing{
		"off-site":    offsite,
		"non-product": category,
		"empty href":  empty,
	} {
		if _, ok := listing.Indicator(); ok {
			t.Errorf("expected %s listing to be skipped", name)
		}
	}
}

// valueListing is a Listing passed by value; its slice field makes the
// dynamic type unusable as a map key
type valueListing struct {
	href     string
	keywords []string
	got      *[]string
}

func (l valueListing) Href() string { return l.href }

func (l valueListing) SetIndicator(text string) {
	*l.got = append(*l.got, text)
}

// valuePage serves value-typed listings
type valuePage struct {
	url      string
	listings []page.Listing
}

func (p *valuePage) URL() string                { return p.url }
func (p *valuePage) HasInsertionPoint() bool    { return true }
func (p *valuePage) ReplaceWidget(widget.State) {}
func (p *valuePage) Widget() widget.State       { return widget.Absent() }
func (p *valuePage) Listings() []page.Listing   { return p.listings }

func TestAnnotate_ValueTypedListings(t *testing.T) {
	store := cache.NewMemoryStore()

	cachedURL := "https://www.example.com/dp/B0000VALUE"
	if err := store.Set(context.Background(), map[string]scoring.AnalysisResult{
		cachedURL: cachedResult(80),
	}); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}

	var got []string

	doc := &valuePage{
		url: searchURL,
		listings: []page.Listing{
			valueListing{href: "/dp/B0000VALUE", keywords: []string{"steel"}, got: &got},
		},
	}

	a, err := New(store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a.Annotate(context.Background(), doc)

	if len(got) != 1 || got[0] != "80/100" {
		t.Errorf("expected one 80/100 indicator, got %v", got)
	}
}

func TestNew_MissingStore(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrMissingStore) {
		t.Errorf("expected ErrMissingStore, got %v", err)
	}
}
