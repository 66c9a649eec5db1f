// Package page abstracts the live document the companion acts on. The
// orchestrator and annotator only ever see these interfaces; the concrete
// document (a rendered DOM, a simulation, a test double) is injected.
package page

import "github.com/theopenlane/ecolens/internal/widget"

// Page is a single live page context. Implementations must guarantee that
// ReplaceWidget is atomic: no observer can see zero or two widgets during
// a replacement.
type Page interface {
	// URL returns the page URL at the time of the call
	URL() string
	// HasInsertionPoint reports whether a known overlay anchor exists in
	// the current layout
	HasInsertionPoint() bool
	// ReplaceWidget removes any existing overlay and installs the given
	// state in one step
	ReplaceWidget(state widget.State)
	// Widget returns the currently installed overlay state
	Widget() widget.State
	// Listings returns the product listings visible on a search results
	// page, empty on other page types
	Listings() []Listing
}

// Listing is one product entry on a search results page
type Listing interface {
	// Href returns the listing's link target, possibly relative
	Href() string
	// SetIndicator renders the inline eco indicator text for this listing
	SetIndicator(text string)
}

// HasWidget reports whether a page currently shows an overlay
func HasWidget(p Page) bool {
	return p.Widget().Present()
}
