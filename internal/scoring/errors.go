package scoring

import "errors"

var (
	// ErrMissingBaseURL is returned when the client is created without a service URL
	ErrMissingBaseURL = errors.New("missing scoring service base URL")
	// ErrRequestFailed is returned when the analyze request cannot be completed
	ErrRequestFailed = errors.New("scoring request failed")
	// ErrUnexpectedStatus is returned when the service responds with a non-2xx status
	ErrUnexpectedStatus = errors.New("unexpected scoring service status")
)
