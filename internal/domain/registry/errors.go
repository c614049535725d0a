package registry

import "errors"

// Sentinel kinds for catalog errors. These allow errors.Is/As from callers.
var (
	ErrParseCatalog   = errors.New("parse catalog failed")
	ErrInvalidCatalog = errors.New("invalid catalog")
)
