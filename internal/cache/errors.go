package cache

import "errors"

// ErrOpenFailed is returned when the backing database cannot be opened
var ErrOpenFailed = errors.New("failed to open cache store")
