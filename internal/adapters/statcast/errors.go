package statcast

import "errors"

// Sentinel kinds for tracking client errors. Identity and empty-sample
// failures wrap the model sentinels so callers need only one set.
var (
	ErrUpstream    = errors.New("tracking upstream error")
	ErrBadResponse = errors.New("malformed tracking response")
)
