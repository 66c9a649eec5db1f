package extmsg

import "errors"

// ErrMissingPage is returned when no page is provided
var ErrMissingPage = errors.New("missing page")
