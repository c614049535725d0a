package crosseval

import "errors"

// Sentinel kinds for matrix builder errors.
var (
	ErrInvalidWeights = errors.New("invalid weights")
)
