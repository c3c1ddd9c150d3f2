package config

import "errors"

var (
	// ErrInvalidConfig marks values rejected by Validate.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrInvalidDate marks a date key that is not YYYY-MM-DD. It is always
	// reported together with ErrInvalidConfig.
	ErrInvalidDate = errors.New("date must be YYYY-MM-DD")
	// ErrLoadConfig marks failures in the file or environment layers.
	ErrLoadConfig = errors.New("load config failed")
)
