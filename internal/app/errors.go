package service

import "errors"

// Sentinel kinds for service errors. Tracking failures surface the model
// sentinels (ErrNoIdentityMatch, ErrEmptySample, ErrNoScorablePitches).
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotConfigured = errors.New("collaborator not configured")
	ErrNoRoster      = errors.New("roster has no pitchers")
)
