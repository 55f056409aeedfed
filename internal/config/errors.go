package config

import "errors"

// Configuration validation errors returned by Config.Validate and
// Config.FromEnv.
var (
	// ErrInvalidPort is returned when the port is not a number in 0-65535.
	ErrInvalidPort = errors.New("invalid port: must be a number between 0 and 65535")

	// ErrInvalidTimeout is returned when a server timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxBodySize is returned when the body limit is not positive.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be positive")
)
