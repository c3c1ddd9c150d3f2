package model

import "errors"

// Sentinel kinds for the tracking path. Any of them sends a pitcher to the
// scouting fallback.
var (
	ErrNoIdentityMatch   = errors.New("no tracking identity match")
	ErrEmptySample       = errors.New("empty tracking sample")
	ErrNoScorablePitches = errors.New("no scorable pitches in sample")
)
