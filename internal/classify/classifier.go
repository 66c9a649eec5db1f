// Package classify maps product-listing site URLs to page types. The
// classifier is pure and total: any input yields a type, never an error.
package classify

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// PageType identifies the kind of page a URL points at
type PageType string

const (
	// PageTypeProduct identifies a single product detail page
	PageTypeProduct PageType = "product"
	// PageTypeSearchResults identifies a search results listing page
	PageTypeSearchResults PageType = "search_results"
	// PageTypeOther identifies every page this system does not act on
	PageTypeOther PageType = "other"
)

// productPathPatterns match the product-detail marker segments. Both the
// short /dp/ form and the long /gp/product/ form are in live use.
var productPathPatterns = compileAll(
	`(?i)/dp/[a-z0-9]+`,
	`(?i)/gp/product/[a-z0-9]+`,
)

// searchPathPattern matches the search listing path
var searchPathPattern = regexp.MustCompile(`(?i)^/s(/|$)`)

// productIDPattern extracts the product identifier from a product path
var productIDPattern = regexp.MustCompile(`(?i)/(?:dp|gp/product)/([a-z0-9]+)`)

// Classify determines the page type for the given URL. Product detection
// wins over search detection when a URL somehow carries both markers.
func Classify(rawURL string) PageType {
	u, err := url.Parse(rawURL)
	if err != nil {
		return PageTypeOther
	}

	if matchesAny(productPathPatterns, u.Path) {
		return PageTypeProduct
	}

	if isSearchListing(u) {
		return PageTypeSearchResults
	}

	return PageTypeOther
}

// ProductID extracts the product identifier segment from a product page URL.
// Returns empty string for anything that is not a product page.
func ProductID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	match := productIDPattern.FindStringSubmatch(u.Path)
	if len(match) < 2 {
		return ""
	}

	return strings.ToUpper(match[1])
}

// SameSite reports whether two URLs belong to the same registrable domain
// (eTLD+1), treating subdomains like www. or smile. as the same site.
// Listings pointing off-site (sponsored redirects, external sellers) are
// not annotation candidates.
func SameSite(rawA, rawB string) bool {
	hostA := registrableDomain(rawA)
	hostB := registrableDomain(rawB)

	return hostA != "" && hostA == hostB
}

// isSearchListing reports whether the URL path/query indicates a search
// results page
func isSearchListing(u *url.URL) bool {
	if searchPathPattern.MatchString(u.Path) {
		return true
	}

	query := u.Query()

	return query.Get("k") != "" || query.Get("field-keywords") != ""
}

// registrableDomain returns the eTLD+1 for a URL's host, or empty string
// when it cannot be determined
func registrableDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return ""
	}

	etld1, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return ""
	}

	return etld1
}

// compileAll compiles multiple regex patterns, panicking on invalid patterns
func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))

	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}

	return compiled
}

// matchesAny returns true if the input matches any of the compiled patterns
func matchesAny(patterns []*regexp.Regexp, input string) bool {
	for _, p := range patterns {
		if p.MatchString(input) {
			return true
		}
	}

	return false
}
