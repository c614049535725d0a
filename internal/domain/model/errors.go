package model

import "errors"

// Sentinel kinds for evaluation input errors. These allow errors.Is from
// callers across layer boundaries.
var (
	ErrInvalidSelection = errors.New("invalid selection")
	ErrInvalidPrompt    = errors.New("invalid prompt")
)
