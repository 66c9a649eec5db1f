package cmd

import "errors"

// errUnknownCacheKind is returned when the configured cache backend is unrecognized
var errUnknownCacheKind = errors.New("unknown cache kind")
