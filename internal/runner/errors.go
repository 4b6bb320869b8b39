package runner

import "errors"

var (
	ErrNilCatalog  = errors.New("runner needs a level catalog")
	ErrInvalidTime = errors.New("simulated time limit must be positive")
)
