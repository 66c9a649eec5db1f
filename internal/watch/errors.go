package watch

import "errors"

var (
	// ErrMissingSource is returned when no URL source is provided
	ErrMissingSource = errors.New("missing URL source")
	// ErrMissingSettleFunc is returned when no settle callback is provided
	ErrMissingSettleFunc = errors.New("missing settle callback")
)
