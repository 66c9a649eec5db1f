package page

import (
	"sync"

	"github.com/theopenlane/ecolens/internal/widget"
)

// SimPage is a concurrency-safe in-memory Page. The watch command uses it
// to mirror the live page it is fed URLs for, and tests use it to observe
// orchestrator behavior.
type SimPage struct {
	mu             sync.RWMutex
	url            string
	insertionPoint bool
	state          widget.State
	listings       []*SimListing
	presenter      widget.Presenter
}

// SimOption configures a SimPage
type SimOption func(*SimPage)

// WithPresenter forwards every widget replacement to the given presenter
func WithPresenter(p widget.Presenter) SimOption {
	return func(s *SimPage) {
		s.presenter = p
	}
}

// WithoutInsertionPoint simulates a page layout with no known overlay anchor
func WithoutInsertionPoint() SimOption {
	return func(s *SimPage) {
		s.insertionPoint = false
	}
}

// NewSimPage creates a simulated page at the given URL
func NewSimPage(url string, opts ...SimOption) *SimPage {
	s := &SimPage{
		url:            url,
		insertionPoint: true,
		state:          widget.Absent(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// URL returns the current page URL
func (s *SimPage) URL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.url
}

// Navigate moves the simulated page to a new URL, discarding the overlay
// and listings exactly as an SPA route change tears down its view.
func (s *SimPage) Navigate(url string) {
	s.mu.Lock()
	s.url = url
	s.state = widget.Absent()
	s.listings = nil
	s.mu.Unlock()
}

// HasInsertionPoint reports whether an overlay anchor exists
func (s *SimPage) HasInsertionPoint() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.insertionPoint
}

// ReplaceWidget atomically swaps the overlay state
func (s *SimPage) ReplaceWidget(state widget.State) {
	s.mu.Lock()
	s.state = state
	presenter := s.presenter
	s.mu.Unlock()

	if presenter != nil {
		presenter.Render(state)
	}
}

// Widget returns the current overlay state
func (s *SimPage) Widget() widget.State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// AddListing attaches a product listing to the simulated page and returns
// it so callers can observe the indicator it receives
func (s *SimPage) AddListing(href string) *SimListing {
	listing := &SimListing{href: href}

	s.mu.Lock()
	s.listings = append(s.listings, listing)
	s.mu.Unlock()

	return listing
}

// Listings returns the attached listings
func (s *SimPage) Listings() []Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Listing, 0, len(s.listings))
	for _, l := range s.listings {
		out = append(out, l)
	}

	return out
}

// SimListing is a single simulated search result entry
type SimListing struct {
	mu        sync.RWMutex
	href      string
	indicator string
	set       bool
}

// Href returns the listing link target
func (l *SimListing) Href() string {
	return l.href
}

// SetIndicator records the rendered indicator text
func (l *SimListing) SetIndicator(text string) {
	l.mu.Lock()
	l.indicator = text
	l.set = true
	l.mu.Unlock()
}

// Indicator returns the rendered indicator text and whether one was set
func (l *SimListing) Indicator() (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.indicator, l.set
}
