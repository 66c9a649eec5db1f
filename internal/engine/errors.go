package engine

import "errors"

var (
	// ErrMissingPage is returned when no page is provided
	ErrMissingPage = errors.New("missing page")
	// ErrMissingAnalyzer is returned when no analyzer is provided
	ErrMissingAnalyzer = errors.New("missing analyzer")
	// ErrMissingStore is returned when no cache store is provided
	ErrMissingStore = errors.New("missing cache store")
)
