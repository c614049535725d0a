package config

import "errors"

// Sentinel kinds for configuration errors. Load wraps provider and
// validation failures with these so callers can errors.Is them.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
