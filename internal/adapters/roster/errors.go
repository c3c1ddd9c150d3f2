package roster

import "errors"

// Sentinel kinds for roster errors.
var (
	ErrUpstream = errors.New("roster upstream error")
	ErrNoTable  = errors.New("roster page has no table")
)
