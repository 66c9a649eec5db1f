// Package annotate decorates search result listings with cached eco
// scores. It is a read-only consumer of the shared cache: listings without
// a cached analysis get an invitation placeholder, never a remote call.
// Bulk listing pages stay cheap; the cache fills only when a product page
// is actually opened.
package annotate

import (
	"context"
	"fmt"
	"math"
	"net/url"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/theopenlane/ecolens/internal/cache"
	"github.com/theopenlane/ecolens/internal/classify"
	"github.com/theopenlane/ecolens/internal/page"
)

// placeholderText invites the user to open the product page, which is the
// only path that populates the cache
const placeholderText = "Eco score: tap to reveal"

// Annotator renders inline eco indicators on search results pages
type Annotator struct {
	store cache.Store
}

// New creates an annotator reading from the given cache
func New(store cache.Store) (*Annotator, error) {
	if store == nil {
		return nil, ErrMissingStore
	}

	return &Annotator{store: store}, nil
}

// Annotate decorates every product listing on the given page with a cache
// hit indicator or a placeholder. Pages that are not search results are
// left untouched. A cache read failure hides the indicators entirely
// rather than showing broken UI.
func (a *Annotator) Annotate(ctx context.Context, doc page.Page) {
	pageURL := doc.URL()

	if classify.Classify(pageURL) != classify.PageTypeSearchResults {
		return
	}

	listings := doc.Listings()
	if len(listings) == 0 {
		return
	}

	targets := make([]target, 0, len(listings))

	for _, listing := range listings {
		absolute := resolveListingURL(pageURL, listing.Href())
		if absolute == "" {
			continue
		}

		targets = append(targets, target{listing: listing, url: absolute})
	}

	if len(targets) == 0 {
		return
	}

	keys := lo.Uniq(lo.Map(targets, func(t target, _ int) string {
		return t.url
	}))

	found, err := a.store.Get(ctx, keys...)
	if err != nil {
		log.Warn().Err(err).Str("url", pageURL).Msg("cache read failed, hiding eco indicators")
		return
	}

	for _, t := range targets {
		entry, ok := found[t.url]
		if !ok {
			t.listing.SetIndicator(placeholderText)
			continue
		}

		score := int(math.Round(entry.EnvironmentalScore.OverallEcoScore))
		t.listing.SetIndicator(fmt.Sprintf("%d/100", score))
	}
}

// target pairs a listing with its resolved absolute product URL
type target struct {
	listing page.Listing
	url     string
}

// resolveListingURL turns a listing href into an absolute product URL on
// the same site as the hosting page. Off-site links and non-product links
// are not annotation candidates.
func resolveListingURL(pageURL, href string) string {
	if href == "" {
		return ""
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}

	absolute := base.ResolveReference(ref).String()

	if !classify.SameSite(pageURL, absolute) {
		return ""
	}

	if classify.Classify(absolute) != classify.PageTypeProduct {
		return ""
	}

	return absolute
}
