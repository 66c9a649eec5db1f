package annotate

import "errors"

// ErrMissingStore is returned when no cache store is provided
var ErrMissingStore = errors.New("missing cache store")
